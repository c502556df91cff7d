package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/doodlesbykumbi/arxiv-cache/pkg/server/store"
)

// paperResolver is the part of the resolver the paper commands use.
type paperResolver interface {
	Resolve(ctx context.Context, externalID string) (*store.Paper, error)
}

// fetchResult is the outcome of resolving one id.
type fetchResult struct {
	ID    string
	Paper *store.Paper
	Err   error
}

// paperFetchCmd represents the paper fetch command
var paperFetchCmd = &cobra.Command{
	Use:   "fetch <id>...",
	Short: "Fetch papers into the cache",
	Long: `Resolve one or more arXiv ids through the cache, fetching from arXiv on a miss.

Ids may also be read from a file with --file (one per line, # starts a comment).

Example:
  arxivctl paper fetch 2101.00001 hep-th/9901001
  arxivctl paper fetch --file ids.txt --concurrency 8 --output json`,
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")
		file, _ := cmd.Flags().GetString("file")
		concurrency, _ := cmd.Flags().GetInt("concurrency")

		ids := args
		if file != "" {
			fromFile, err := readIDsFromFile(file)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to read ids: %v\n", err)
				os.Exit(1)
			}
			ids = append(ids, fromFile...)
		}
		if len(ids) == 0 {
			fmt.Fprintln(os.Stderr, "error: at least one id is required")
			os.Exit(1)
		}

		a, err := newApp()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		results := resolveAll(ctx, a.Resolver, ids, concurrency)

		var papers []store.Paper
		failed := 0
		for _, r := range results {
			if r.Err != nil {
				failed++
				fmt.Fprintf(os.Stderr, "%s: %v\n", r.ID, r.Err)
				continue
			}
			papers = append(papers, *r.Paper)
		}
		if err := printPapers(cmd.OutOrStdout(), output, papers); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if failed > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	paperCmd.AddCommand(paperFetchCmd)
	paperFetchCmd.Flags().StringP("file", "f", "", "Read ids from a file")
	paperFetchCmd.Flags().IntP("concurrency", "c", 4, "Maximum concurrent fetches")
}

func readIDsFromFile(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return readIDs(f)
}

// resolveAll resolves ids with at most concurrency in flight. Results keep
// the order of ids; one failure does not stop the others.
func resolveAll(ctx context.Context, r paperResolver, ids []string, concurrency int) []fetchResult {
	if concurrency < 1 {
		concurrency = 1
	}
	results := make([]fetchResult, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			p, err := r.Resolve(gctx, id)
			results[i] = fetchResult{ID: id, Paper: p, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}
