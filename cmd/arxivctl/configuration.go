package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var configurationCmd = &cobra.Command{
	Use:     "configuration",
	Aliases: []string{"config"},
	Short:   "Inspect arxiv-cache configuration",
	Long:    `Inspect the configuration the server and paper commands would load from
the config file and ARXIV_CACHE_* environment variables.`,
	Args: cobra.NoArgs,
	RunE: requireSubcommand,
}

func init() {
	rootCmd.AddCommand(configurationCmd)
}

// requireSubcommand is the RunE of parent commands that do nothing on
// their own.
func requireSubcommand(cmd *cobra.Command, _ []string) error {
	names := make([]string, 0, len(cmd.Commands()))
	for _, c := range cmd.Commands() {
		if c.IsAvailableCommand() {
			names = append(names, c.Name())
		}
	}
	return fmt.Errorf("%q requires a subcommand (%s)", cmd.CommandPath(), strings.Join(names, ", "))
}
