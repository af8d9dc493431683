// Command triego indexes a JSON-lines file and runs trie searches
// against it.
//
//	triego --file spells.jsonl --id id --key name --key tags.#.label fire ball
package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/triego"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		file         string
		idPath       string
		keyPaths     []string
		limit        int
		minKeyLength int
		exact        bool
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:           "triego [flags] QUERY...",
		Short:         "Search JSON-lines documents with a trie index",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []triego.Option{
				triego.WithMinKeyLength(minKeyLength),
			}
			if verbose {
				opts = append(opts, triego.WithLogLevel(slog.LevelDebug))
			}

			ts, err := triego.New(
				triego.JSONPath(idPath),
				triego.JSONKeys(keyPaths...),
				opts...,
			)
			if err != nil {
				return err
			}

			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			var skipped int
			scanner := bufio.NewScanner(f)
			scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if err := ts.Add(line); err != nil {
					skipped++
				}
			}
			if err := scanner.Err(); err != nil {
				return err
			}
			if skipped > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped %d documents without indexable keys\n", skipped)
			}

			hits, err := ts.Search(strings.Join(args, " "), func(o *triego.SearchOptions[string]) {
				o.Limit = limit
				o.Exact = exact
			})
			if err != nil {
				return err
			}

			for _, h := range hits {
				fmt.Fprintln(cmd.OutOrStdout(), h.Item)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d documents matched\n", len(hits), ts.Len())
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON-lines input file")
	cmd.Flags().StringVar(&idPath, "id", "id", "gjson path of the document identity")
	cmd.Flags().StringArrayVarP(&keyPaths, "key", "k", []string{"name"}, "gjson path(s) to index")
	cmd.Flags().IntVarP(&limit, "limit", "n", triego.NoLimit, "maximum number of results")
	cmd.Flags().IntVar(&minKeyLength, "min-key-length", 1, "minimum indexed suffix length")
	cmd.Flags().BoolVar(&exact, "exact", false, "disable prefix expansion")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log index and search operations")
	cmd.MarkFlagRequired("file")

	return cmd
}
