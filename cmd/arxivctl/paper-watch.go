package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// paperWatchCmd represents the paper watch command
var paperWatchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Watch a file of ids and fetch them into the cache when it changes",
	Long: `Watch a file listing arXiv ids and resolve every id in it each time the
file is written. Ids already cached are cheap no-ops, so appending a line
fetches just the new paper.

The file holds one id per line; blank lines and lines starting with # are
ignored.

Example:
  arxivctl paper watch /var/lib/arxiv-cache/prefetch.txt`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		concurrency, _ := cmd.Flags().GetInt("concurrency")

		if err := watchIDs(args[0], concurrency); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to watch ids: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	paperCmd.AddCommand(paperWatchCmd)
	paperWatchCmd.Flags().IntP("concurrency", "c", 4, "Maximum concurrent fetches")
}

func watchIDs(filename string, concurrency int) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filename); err != nil {
		return fmt.Errorf("failed to watch file %s: %w", filename, err)
	}

	fmt.Printf("Watching %s for ids to fetch\n", filename)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fetchFile(ctx, a.Resolver, filename, concurrency)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				fmt.Printf("[%s] File modified, fetching ids...\n", time.Now().Format(time.RFC3339))
				fetchFile(ctx, a.Resolver, filename, concurrency)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
		case <-ctx.Done():
			fmt.Println("\nShutting down...")
			return nil
		}
	}
}

func fetchFile(ctx context.Context, r paperResolver, filename string, concurrency int) {
	ids, err := readIDsFromFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		return
	}

	for _, res := range resolveAll(ctx, r, ids, concurrency) {
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", res.ID, res.Err)
			continue
		}
		fmt.Printf("%s -> %s\n", res.ID, res.Paper.Identifier)
	}
}
