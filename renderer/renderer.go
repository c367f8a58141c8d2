// Package renderer renders ledger views as markdown, ready for terminal
// display or plain output.
package renderer

import (
	"embed"
	"fmt"
	"math"
	"sort"
	"strings"
	"text/template"

	"github.com/Rhymond/go-money"

	"github.com/coredump-ch/gitcash"
)

//go:embed *.md
var templates embed.FS

// AccountRow is one line of the accounts listing.
type AccountRow struct {
	Name string
	Type string
}

// BalanceRow is one line of the balances listing.
type BalanceRow struct {
	Name    string
	Type    string
	Balance string
}

// TransactionRow is one line of the transaction log.
type TransactionRow struct {
	Summary     string
	Description string
}

// Accounts holds the data for the accounts template.
type Accounts struct {
	Ledger string
	Rows   []AccountRow
}

// Balances holds the data for the balances template.
type Balances struct {
	Ledger   string
	Currency string
	Rows     []BalanceRow
}

// Transactions holds the data for the transaction log template.
type Transactions struct {
	Ledger string
	Rows   []TransactionRow
}

// AccountsMarkdown renders the account listing of a ledger.
func AccountsMarkdown(l *gitcash.Ledger) string {
	view := Accounts{Ledger: l.Config().Name}
	for _, account := range l.Accounts() {
		view.Rows = append(view.Rows, AccountRow{Name: account.Name, Type: account.Type.String()})
	}
	return renderTemplate("accounts", "accounts.md", view)
}

// BalancesMarkdown renders the balance table of a ledger, one row per
// account, sorted like the account listing.
func BalancesMarkdown(l *gitcash.Ledger) string {
	cfg := l.Config()
	balances := l.Balances()
	view := Balances{Ledger: cfg.Name, Currency: cfg.Currency.Code}
	accounts := make([]gitcash.Account, 0, len(balances))
	for account := range balances {
		accounts = append(accounts, account)
	}
	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].Type != accounts[j].Type {
			return accounts[i].Type < accounts[j].Type
		}
		return accounts[i].Name < accounts[j].Name
	})
	for _, account := range accounts {
		view.Rows = append(view.Rows, BalanceRow{
			Name:    account.Name,
			Type:    account.Type.String(),
			Balance: FormatAmount(cfg, balances[account]),
		})
	}
	return renderTemplate("balances", "balances.md", view)
}

// TransactionsMarkdown renders the chronological transaction log.
func TransactionsMarkdown(l *gitcash.Ledger) string {
	view := Transactions{Ledger: l.Config().Name}
	for _, tx := range l.Transactions() {
		view.Rows = append(view.Rows, TransactionRow{
			Summary:     tx.Summary(l.Config()),
			Description: tx.Description,
		})
	}
	return renderTemplate("transactions", "transactions.md", view)
}

// FormatAmount formats a minor-unit amount for display. When the
// configured currency is a known ISO currency whose fraction matches the
// configured divisor, the locale-aware go-money formatter is used;
// otherwise the amount falls back to a plain two-decimal rendering with
// the currency code.
func FormatAmount(cfg *gitcash.Config, minor int32) string {
	if cur := money.GetCurrency(cfg.Currency.Code); cur != nil {
		if uint(math.Pow10(cur.Fraction)) == cfg.Currency.Divisor {
			return money.New(int64(minor), cfg.Currency.Code).Display()
		}
	}
	return cfg.DisplayAmount(minor) + " " + cfg.Currency.Code
}

func renderTemplate(name, file string, data any) string {
	content, err := templates.ReadFile(file)
	if err != nil {
		return fmt.Sprintf("template %q not found: %v", file, err)
	}
	t, err := template.New(name).Parse(string(content))
	if err != nil {
		return fmt.Sprintf("template %q is invalid: %v", file, err)
	}
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return fmt.Sprintf("template %q failed: %v", file, err)
	}
	return b.String()
}
