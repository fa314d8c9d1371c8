package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"debtledger/internal/config"
	"debtledger/internal/domain/auth"
	"debtledger/internal/domain/client"
	"debtledger/internal/pkg/jwt"
)

type pruneCmd struct{}

func (*pruneCmd) Name() string             { return "prune" }
func (*pruneCmd) Synopsis() string         { return "delete payments whose client no longer exists" }
func (*pruneCmd) Usage() string            { return "prune\n" }
func (*pruneCmd) SetFlags(_ *flag.FlagSet) {}

func (*pruneCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withService(ctx, func(ctx context.Context, _ *config.Config, svc *client.Service) error {
		n, err := svc.Store().PruneOrphanPayments(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "prune completed: client_payments=%d\n", n)
		return nil
	})
}

type hashPasswordCmd struct{}

func (*hashPasswordCmd) Name() string { return "hash-password" }
func (*hashPasswordCmd) Synopsis() string {
	return "print the bcrypt hash to put in OWNER_PASSWORD_HASH"
}
func (*hashPasswordCmd) Usage() string            { return "hash-password <password>\n" }
func (*hashPasswordCmd) SetFlags(_ *flag.FlagSet) {}

func (*hashPasswordCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, ok := args(f, 1, "hash-password <password>")
	if !ok {
		return subcommands.ExitUsageError
	}
	hash, err := auth.HashPassword(a[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing password: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(stdout, hash)
	return subcommands.ExitSuccess
}

type tokenCmd struct{}

func (*tokenCmd) Name() string             { return "token" }
func (*tokenCmd) Synopsis() string         { return "issue an owner access token signed with JWT_SECRET" }
func (*tokenCmd) Usage() string            { return "token\n" }
func (*tokenCmd) SetFlags(_ *flag.FlagSet) {}

func (*tokenCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return subcommands.ExitFailure
	}
	token, err := jwt.New(cfg.JWTSecret, cfg.JWTAccessTTL).GenerateToken(auth.OwnerSubject, jwt.RoleOwner)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error signing token: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(stdout, token)
	return subcommands.ExitSuccess
}
