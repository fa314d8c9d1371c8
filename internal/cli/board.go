package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"debtledger/internal/config"
	"debtledger/internal/domain/board"
	"debtledger/internal/domain/client"
)

type boardCmd struct{}

func (*boardCmd) Name() string             { return "board" }
func (*boardCmd) Synopsis() string         { return "print the per-company summaries, sales and payments" }
func (*boardCmd) Usage() string            { return "board\n" }
func (*boardCmd) SetFlags(_ *flag.FlagSet) {}

func (*boardCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withService(ctx, func(ctx context.Context, cfg *config.Config, svc *client.Service) error {
		b, err := board.NewBuilder(svc.Store(), cfg.Companies, cfg.Currency).Build(ctx)
		if err != nil {
			return err
		}

		for _, g := range b.Groups {
			fmt.Fprintf(stdout, "== %s (outstanding %s)\n", g.Company, g.Outstanding)
			for _, l := range g.Lines {
				mark := " "
				if l.Paid {
					mark = "x"
				}
				fmt.Fprintf(stdout, "[%s] %s\n", mark, l.Text)
			}
		}

		fmt.Fprintln(stdout, "== sales")
		for _, s := range b.Sales {
			fmt.Fprintln(stdout, s)
		}

		if len(b.Payments) > 0 {
			fmt.Fprintln(stdout, "== payments")
			for _, p := range b.Payments {
				fmt.Fprintf(stdout, "%s - %s - %s\n", p.Client, p.Amount, p.Date)
			}
		}
		return nil
	})
}
