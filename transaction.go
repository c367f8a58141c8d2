package gitcash

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TransactionMeta carries free-form tagging for point-of-sale line items.
// Both fields are optional.
type TransactionMeta struct {
	Class string
	EAN   uint64
}

// Transaction is a single value movement between two accounts, expressed
// in the ledger currency's minor unit. Once written, a transaction is
// read-only history; its identity is the commit that carries it.
type Transaction struct {
	From        Account
	To          Account
	Amount      int32
	Description string
	Meta        *TransactionMeta
}

// IsAccountCreation reports whether this transaction only registers a new
// user account: a zero amount paid to a user moves no value.
func (t Transaction) IsAccountCreation() bool {
	return t.Amount == 0 && t.To.Type == User
}

// Equal reports whether two transactions carry the same data.
func (t Transaction) Equal(o Transaction) bool {
	if t.From != o.From || t.To != o.To || t.Amount != o.Amount || t.Description != o.Description {
		return false
	}
	if (t.Meta == nil) != (o.Meta == nil) {
		return false
	}
	return t.Meta == nil || *t.Meta == *o.Meta
}

// Validate checks a transaction against the model invariants before it is
// written. Accounts decoded from history are trusted as-is; this guards
// the write path only.
func (t Transaction) Validate() error {
	if err := ValidateAccountName(t.From.Name); err != nil {
		return err
	}
	if err := ValidateAccountName(t.To.Name); err != nil {
		return err
	}
	if t.From.Type == PointOfSale {
		return &ValidationError{Msg: fmt.Sprintf("point of sale account %q cannot send money", t.From.Name)}
	}
	return nil
}

// Summary renders the human-readable first line of the commit message,
// using the repository configuration for the display amount.
func (t Transaction) Summary(cfg *Config) string {
	if t.IsAccountCreation() {
		return fmt.Sprintf("new user %s", t.To.Name)
	}
	return fmt.Sprintf("%s %s pays %s %s to %s %s",
		t.From.Type, t.From.Name,
		cfg.DisplayAmount(t.Amount), cfg.Currency.Code,
		t.To.Type, t.To.Name)
}

// DisplayAmount formats a minor-unit amount as a display value with two
// decimals (e.g. 1350 with divisor 100 renders as "13.50").
func (c *Config) DisplayAmount(amount int32) string {
	divisor := decimal.NewFromInt(int64(c.Currency.Divisor))
	return decimal.NewFromInt(int64(amount)).Div(divisor).StringFixed(2)
}

// ConvertAmount converts a human-entered display amount into minor units,
// rounding to the nearest unit. It is only used at the write-path
// boundary; all ledger arithmetic is integer.
func (c *Config) ConvertAmount(displayAmount float64) int32 {
	divisor := decimal.NewFromInt(int64(c.Currency.Divisor))
	minor := decimal.NewFromFloat(displayAmount).Mul(divisor).Round(0)
	return int32(minor.IntPart())
}
