/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "backoffice",
	Short: "msgsystec back-office API server",
	Long: `backoffice is the REST API behind the msgsystec dashboard:
cookie-based authentication, user administration, a read-only
Google Sheets mirror and the (not yet available) WAHA gateway.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
