package main

import (
	"fmt"

	"github.com/spf13/cobra"

	goStudio "github.com/MrEthical07/goStudio"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQL migrations (no-op for the redis driver)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := openBackend(cmd.Context(), a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer b.close()
			return b.migrate(cmd.Context(), a.logger)
		},
	}
}

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the demo admin, member and teachers if missing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, _, closeAll, err := a.engine(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer closeAll()

			report, err := goStudio.Seed(cmd.Context(), engine, goStudio.DefaultSeed())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "users created: %d, teachers created: %d\n", report.UsersCreated, report.TeachersCreated)
			return nil
		},
	}
}

func newUserCmd(a *app) *cobra.Command {
	user := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}

	var req goStudio.RegisterRequest
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an account, optionally with administrator rights",
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, _, closeAll, err := a.engine(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer closeAll()

			rec, err := engine.CreateUser(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %d (%s) admin=%t\n", rec.ID, rec.Identifier, rec.Admin)
			return nil
		},
	}
	create.Flags().StringVar(&req.Identifier, "email", "", "account email")
	create.Flags().StringVar(&req.Password, "password", "", "account password")
	create.Flags().StringVar(&req.FirstName, "first-name", "", "first name")
	create.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	create.Flags().BoolVar(&req.Admin, "admin", false, "grant administrator rights")
	for _, name := range []string{"email", "password", "first-name", "last-name"} {
		_ = create.MarkFlagRequired(name)
	}

	user.AddCommand(create)
	return user
}

func newTokenCmd(a *app) *cobra.Command {
	token := &cobra.Command{
		Use:   "token",
		Short: "Token utilities",
	}

	var email string
	issue := &cobra.Command{
		Use:   "issue",
		Short: "Print a bearer token for an existing account without its password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, _, closeAll, err := a.engine(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer closeAll()

			tok, err := engine.IssueToken(cmd.Context(), email)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	issue.Flags().StringVar(&email, "email", "", "account email")
	_ = issue.MarkFlagRequired("email")

	token.AddCommand(issue)
	return token
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		// Overrides the root hook: printing the version needs no environment.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
