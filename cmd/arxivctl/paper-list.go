package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// paperListCmd represents the paper list command
var paperListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached papers",
	Long: `List every cached paper with its authors, ordered by id.

Example:
  arxivctl paper list
  arxivctl paper list --output json`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")

		a, err := newApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer a.Close()

		papers, err := a.Papers.ListPapers(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list papers: %v\n", err)
			os.Exit(1)
		}
		if err := printPapers(cmd.OutOrStdout(), output, papers); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	paperCmd.AddCommand(paperListCmd)
}
