package main

import (
	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Apply, roll back and inspect schema migrations",
	Long: `Apply, roll back and inspect the arxiv-cache schema migrations.

Every subcommand connects with DATABASE_URL.`,
	Args: cobra.NoArgs,
	RunE: requireSubcommand,
}

func init() {
	rootCmd.AddCommand(dbCmd)
}
