package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"gym-backend-go/internal/config"
	"gym-backend-go/internal/db"
	"gym-backend-go/internal/migrations"
	"gym-backend-go/internal/services"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "gymctl",
		Short:        "Maintenance commands for the gym backend",
		SilenceUsage: true,
	}
	root.AddCommand(newMigrateCmd(), newSeedCmd(), newUsersCmd())
	return root
}

func openDatabase() (*sqlx.DB, config.Config, error) {
	_ = godotenv.Load()
	cfg := config.Load()
	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, cfg, fmt.Errorf("open database: %w", err)
	}
	return database, cfg, nil
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer database.Close()
			applied, err := migrations.Apply(database, migrations.Embedded())
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			}
			for _, name := range applied {
				fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", name)
			}
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	var adminName, userName string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create or reset the admin and user accounts",
		Long: "Create or reset the admin and user accounts. Passwords come from " +
			"SEED_ADMIN_PASSWORD and SEED_USER_PASSWORD.",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, cfg, err := openDatabase()
			if err != nil {
				return err
			}
			defer database.Close()
			tokens := services.TokenService{
				Secret: []byte(cfg.SessionSecret),
				Issuer: cfg.SessionIssuer,
				TTL:    time.Duration(cfg.SessionTTLSeconds) * time.Second,
			}
			accounts := []struct{ username, password, role string }{
				{adminName, envOr("SEED_ADMIN_PASSWORD", "1234"), services.RoleAdmin},
				{userName, envOr("SEED_USER_PASSWORD", "4321"), services.RoleUser},
			}
			for _, account := range accounts {
				id, err := services.SeedUser(cmd.Context(), database, tokens, account.username, account.password, account.role)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "seeded %s (id %d, role %s)\n", account.username, id, account.role)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&adminName, "admin", "admin", "username of the admin account")
	cmd.Flags().StringVar(&userName, "user", "user", "username of the regular account")
	return cmd
}

func newUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer database.Close()
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			users, err := services.ListUsers(ctx, database)
			if err != nil {
				return err
			}
			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"ID", "Username", "Role"})
			for _, user := range users {
				t.AppendRow(table.Row{user.ID, user.Username, user.Role})
			}
			t.AppendFooter(table.Row{"", "Total", len(users)})
			t.Render()
			return nil
		},
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
