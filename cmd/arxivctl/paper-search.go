package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// paperSearchCmd represents the paper search command
var paperSearchCmd = &cobra.Command{
	Use:   "search <author name>",
	Short: "Search cached papers by author name",
	Long: `Search cached papers for authors whose "keyname forenames" contains the
given text, ignoring case.

Example:
  arxivctl paper search "Smith J"`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")

		a, err := newApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer a.Close()

		papers, err := a.Papers.SearchByAuthorName(context.Background(), args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to search papers: %v\n", err)
			os.Exit(1)
		}
		if err := printPapers(cmd.OutOrStdout(), output, papers); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	paperCmd.AddCommand(paperSearchCmd)
}
