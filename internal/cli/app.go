// Package cli implements ledgerctl, the command line front end of the client ledger.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"debtledger/internal/config"
	"debtledger/internal/database"
	"debtledger/internal/domain/client"
)

// Commands lists every ledgerctl subcommand; main registers them all.
var Commands = []subcommands.Command{
	&addCmd{},
	&getCmd{},
	&listCmd{},
	&statusCmd{name: "paid", status: client.StatusPaid},
	&statusCmd{name: "unpaid", status: client.StatusUnpaid},
	&editCmd{},
	&payCmd{},
	&rmCmd{},
	&boardCmd{},
	&pruneCmd{},
	&hashPasswordCmd{},
	&tokenCmd{},
}

// ledgerctl is short lived, package level flags are fine.

var databaseURL = flag.String("db", "", "Ledger database DSN (defaults to DATABASE_URL)")

var stdout io.Writer = os.Stdout

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if *databaseURL != "" {
		cfg.DatabaseURL = *databaseURL
	}
	return cfg, nil
}

// withService opens the store, runs fn and closes the store again.
func withService(ctx context.Context, fn func(ctx context.Context, cfg *config.Config, svc *client.Service) error) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return subcommands.ExitFailure
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger %q: %v\n", cfg.DatabaseURL, err)
		return subcommands.ExitFailure
	}
	store := client.NewStore(db)
	defer store.Close()

	svc := client.NewService(store, client.Options{
		Location:      cfg.Location,
		DateLayout:    cfg.DateLayout,
		StrictAmounts: cfg.StrictAmounts,
		Companies:     cfg.Companies,
	})

	if err := fn(ctx, cfg, svc); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, client.ErrInvalidAmount) || errors.Is(err, client.ErrUnknownCompany) || errors.Is(err, client.ErrEmptyName) {
			return subcommands.ExitUsageError
		}
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func printClient(c *client.Client) {
	fmt.Fprintf(stdout, "%s\t%s\t%s\t%s\t%s\n", c.Name, c.Debt, c.Status, c.Company, c.Date)
}

// args checks that exactly n positional arguments were given.
func args(f *flag.FlagSet, n int, usage string) ([]string, bool) {
	if f.NArg() != n {
		fmt.Fprintf(os.Stderr, "Error: expected %s\n", usage)
		return nil, false
	}
	return f.Args(), true
}
