/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/msgsystec/backoffice/config"
	"github.com/msgsystec/backoffice/internal/auth"
	"github.com/msgsystec/backoffice/internal/db"
	"github.com/msgsystec/backoffice/types"
	"github.com/spf13/cobra"
)

const (
	defaultAdminEmail    = "admin@msgsystec.com"
	defaultAdminPassword = "admin123"
	defaultAdminName     = "Administrador"
)

// seedCmd creates the default admin account if it does not exist yet.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the default admin user",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		email := envOr("ADMIN_EMAIL", defaultAdminEmail)
		password := envOr("ADMIN_PASSWORD", defaultAdminPassword)

		hash, err := auth.HashPassword(password)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}

		conn, err := db.Open(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer func() {
			_ = conn.Close()
		}()

		const query = `
			INSERT INTO users (id, email, password_hash, name, role, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, now(), now())
			ON CONFLICT (email) DO NOTHING`
		if _, err := conn.ExecContext(cmd.Context(), query,
			uuid.NewString(), email, hash, defaultAdminName, types.RoleAdmin,
		); err != nil {
			return fmt.Errorf("seed admin user: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "admin user ready: %s\n", email)
		return nil
	},
}

func envOr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
