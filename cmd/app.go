// Package cmd implements the CLI application around the gitcash ledger.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/spf13/viper"

	"github.com/coredump-ch/gitcash"
)

// Register the subcommands.
// A main package calls Register() and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&accountsCmd{}, "ledger")
	c.Register(&balancesCmd{}, "ledger")
	c.Register(&txCmd{}, "ledger")

	c.Register(&payCmd{}, "transactions")
	c.Register(&depositCmd{}, "transactions")
	c.Register(&addUserCmd{}, "transactions")

	c.Register(&topicCmd{}, "documentation")
}

// As a CLI application with a very short lifecycle, global flags are fine.

var repoPath = flag.String("repo-path", "", "Path to the gitcash repository (overrides the config file)")
var verbose = flag.Bool("v", false, "Enable debug logging on stderr")
var raw = flag.Bool("raw", false, "Print raw markdown without terminal styling")

// AppConfig is the CLI configuration: where the ledger lives, which
// point-of-sale account this instance collects for, and the git identity
// to record on new commits.
type AppConfig struct {
	RepoPath string
	Account  string
	GitName  string
	GitEmail string
}

// LoadAppConfig reads the `gitcash` config file (TOML) from the current
// directory or $HOME/.config/gitcash. Every key can also be set through
// a GITCASH_* environment variable; a missing config file is fine.
func LoadAppConfig() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("gitcash")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/gitcash")
	v.SetEnvPrefix("gitcash")
	v.AutomaticEnv()
	v.SetDefault("repo_path", ".")
	v.SetDefault("git_name", "gitcash")
	v.SetDefault("git_email", "gitcash@localhost")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("could not read CLI config: %w", err)
		}
	}

	cfg := &AppConfig{
		RepoPath: v.GetString("repo_path"),
		Account:  v.GetString("account"),
		GitName:  v.GetString("git_name"),
		GitEmail: v.GetString("git_email"),
	}
	if *repoPath != "" {
		cfg.RepoPath = *repoPath
	}
	return cfg, nil
}

// PointOfSale returns the configured point-of-sale account. Collecting
// payments into anything but a pos account is a configuration error.
func (c *AppConfig) PointOfSale() (gitcash.Account, error) {
	if c.Account == "" {
		return gitcash.Account{}, errors.New("no account configured, set `account` in the gitcash config file")
	}
	account, err := gitcash.ParseAccount(c.Account)
	if err != nil {
		return gitcash.Account{}, err
	}
	if account.Type != gitcash.PointOfSale {
		return gitcash.Account{}, fmt.Errorf("configured account must be a pos account, got %q", c.Account)
	}
	return account, nil
}

// OpenLedger opens the configured ledger with the configured identity.
func OpenLedger() (*gitcash.Ledger, *AppConfig, error) {
	app, err := LoadAppConfig()
	if err != nil {
		return nil, nil, err
	}
	opts := []gitcash.Option{gitcash.WithIdentity(app.GitName, app.GitEmail)}
	if *verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, gitcash.WithLogger(logger))
	}
	ledger, err := gitcash.Open(app.RepoPath, opts...)
	if err != nil {
		return nil, nil, err
	}
	return ledger, app, nil
}

// printMarkdown renders markdown for the terminal, falling back to the
// raw text when styling is unavailable or disabled.
func printMarkdown(md string) {
	if *raw {
		fmt.Print(md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
