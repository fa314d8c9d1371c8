package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"debtledger/internal/config"
	"debtledger/internal/domain/client"
)

type addCmd struct {
	name    string
	debt    string
	company string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a client, replacing any client with the same name" }
func (*addCmd) Usage() string {
	return `add -name <name> -debt <amount> -company <company>

  Stores a new Unpaid client dated now. An existing client with the same
  name is overwritten, payment history included.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Client name (required)")
	f.StringVar(&c.debt, "debt", "", "Amount owed (required)")
	f.StringVar(&c.company, "company", "", "Company the sale belongs to (required)")
}

func (c *addCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" || c.debt == "" || c.company == "" {
		fmt.Fprintln(os.Stderr, "Error: -name, -debt and -company are required.")
		return subcommands.ExitUsageError
	}
	return withService(ctx, func(ctx context.Context, _ *config.Config, svc *client.Service) error {
		cl, err := svc.AddClient(ctx, c.name, c.debt, c.company)
		if err != nil {
			return err
		}
		printClient(cl)
		return nil
	})
}

type getCmd struct{}

func (*getCmd) Name() string             { return "get" }
func (*getCmd) Synopsis() string         { return "show one client and its payments" }
func (*getCmd) Usage() string            { return "get <name>\n" }
func (*getCmd) SetFlags(_ *flag.FlagSet) {}

func (*getCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ok := args(f, 1, "get <name>")
	if !ok {
		return subcommands.ExitUsageError
	}
	return withService(ctx, func(ctx context.Context, _ *config.Config, svc *client.Service) error {
		cl, err := svc.Get(ctx, a[0])
		if err != nil {
			return err
		}
		printClient(cl)
		for _, p := range cl.Payments {
			fmt.Fprintf(stdout, "  paid %s on %s\n", p.Amount, p.Date)
		}
		return nil
	})
}

type listCmd struct {
	company string
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list clients, optionally of one company" }
func (*listCmd) Usage() string    { return "list [-company <company>]\n" }

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.company, "company", "", "Only list clients of this company")
}

func (c *listCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withService(ctx, func(ctx context.Context, _ *config.Config, svc *client.Service) error {
		clients, err := svc.List(ctx, c.company)
		if err != nil {
			return err
		}
		for _, cl := range clients {
			printClient(cl)
		}
		return nil
	})
}

// statusCmd backs both "paid" and "unpaid".
type statusCmd struct {
	name   string
	status client.Status
}

func (c *statusCmd) Name() string             { return c.name }
func (c *statusCmd) Synopsis() string         { return fmt.Sprintf("mark a client as %s", c.status) }
func (c *statusCmd) Usage() string            { return c.name + " <name>\n" }
func (*statusCmd) SetFlags(_ *flag.FlagSet) {}

func (c *statusCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ok := args(f, 1, c.Usage())
	if !ok {
		return subcommands.ExitUsageError
	}
	return withService(ctx, func(ctx context.Context, _ *config.Config, svc *client.Service) error {
		var (
			cl  *client.Client
			err error
		)
		if c.status == client.StatusPaid {
			cl, err = svc.MarkPaid(ctx, a[0])
		} else {
			cl, err = svc.MarkUnpaid(ctx, a[0])
		}
		if err != nil {
			return err
		}
		printClient(cl)
		return nil
	})
}

type editCmd struct{}

func (*editCmd) Name() string             { return "edit" }
func (*editCmd) Synopsis() string         { return "replace a client's debt, keeping its status" }
func (*editCmd) Usage() string            { return "edit <name> <debt>\n" }
func (*editCmd) SetFlags(_ *flag.FlagSet) {}

func (*editCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ok := args(f, 2, "edit <name> <debt>")
	if !ok {
		return subcommands.ExitUsageError
	}
	return withService(ctx, func(ctx context.Context, _ *config.Config, svc *client.Service) error {
		cl, err := svc.EditDebt(ctx, a[0], a[1])
		if err != nil {
			return err
		}
		printClient(cl)
		return nil
	})
}

type payCmd struct{}

func (*payCmd) Name() string     { return "pay" }
func (*payCmd) Synopsis() string { return "record a partial payment" }
func (*payCmd) Usage() string {
	return `pay <name> <amount>

  Subtracts amount from the client's debt. When nothing is left the debt
  becomes 0 and the client is marked Paid.
`
}
func (*payCmd) SetFlags(_ *flag.FlagSet) {}

func (*payCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ok := args(f, 2, "pay <name> <amount>")
	if !ok {
		return subcommands.ExitUsageError
	}
	return withService(ctx, func(ctx context.Context, _ *config.Config, svc *client.Service) error {
		cl, err := svc.RecordPayment(ctx, a[0], a[1])
		if err != nil {
			return err
		}
		printClient(cl)
		return nil
	})
}

type rmCmd struct{}

func (*rmCmd) Name() string             { return "rm" }
func (*rmCmd) Synopsis() string         { return "remove a client and its payments" }
func (*rmCmd) Usage() string            { return "rm <name>\n" }
func (*rmCmd) SetFlags(_ *flag.FlagSet) {}

func (*rmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ok := args(f, 1, "rm <name>")
	if !ok {
		return subcommands.ExitUsageError
	}
	return withService(ctx, func(ctx context.Context, _ *config.Config, svc *client.Service) error {
		return svc.Remove(ctx, a[0])
	})
}
