package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/arxiv-cache/pkg/server/endpoints"
	"github.com/doodlesbykumbi/arxiv-cache/pkg/server/store"
)

// paperCmd represents the paper command
var paperCmd = &cobra.Command{
	Use:   "paper",
	Short: "Fetch and query cached papers",
	Long:  `Fetch papers into the cache and query the cached papers directly against the database.`,
	Args:  cobra.NoArgs,
	RunE:  requireSubcommand,
}

func init() {
	rootCmd.AddCommand(paperCmd)
	paperCmd.PersistentFlags().StringP("output", "o", "text", "Output format (text or json)")
}

// printPapers writes papers as a table or as a JSON array.
func printPapers(w io.Writer, output string, papers []store.Paper) error {
	if output == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(endpoints.ToPaperResponses(papers))
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tIDENTIFIER\tTITLE\tAUTHORS")
	for _, p := range papers {
		names := make([]string, 0, len(p.Authors))
		for _, a := range p.Authors {
			names = append(names, strings.TrimSpace(a.Keyname+" "+a.Forenames))
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.ID, p.Identifier, truncate(p.Title, 60), strings.Join(names, "; "))
	}
	return tw.Flush()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// readIDs returns the arXiv ids listed in r, one per line. Blank lines and
// lines starting with # are skipped; duplicates are dropped.
func readIDs(r io.Reader) ([]string, error) {
	var ids []string
	seen := map[string]bool{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if seen[line] {
			continue
		}
		seen[line] = true
		ids = append(ids, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
