package cmd

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/string-analyzer/internal/analyzer"
	"github.com/ziadkadry99/string-analyzer/internal/filter"
	"github.com/ziadkadry99/string-analyzer/internal/records"
)

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Query stored strings in plain English or with structured filters",
	Long: `Runs a natural language query such as "single word palindromic strings"
against the local database. With --filter, structured filters are applied
instead, e.g. --filter is_palindrome=true --filter min_length=5.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringArray("filter", nil, "structured filter as key=value (repeatable)")
	queryCmd.Flags().Bool("json", false, "output the full response as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	filters, _ := cmd.Flags().GetStringArray("filter")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if len(args) == 0 && len(filters) == 0 {
		return errors.New("either a query or at least one --filter is required")
	}
	if len(args) == 1 && len(filters) > 0 {
		return errors.New("a query and --filter cannot be combined")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	svc, database, err := openService(cfg, log, nil)
	if err != nil {
		return err
	}
	defer database.Close()

	var (
		resp any
		data []analyzer.Record
	)
	if len(args) == 1 {
		nl, err := svc.Interpret(ctx, args[0])
		if err != nil {
			return err
		}
		resp, data = nl, nl.Data
	} else {
		fs, err := parseFilterFlags(filters)
		if err != nil {
			return err
		}
		fr, err := svc.Filter(ctx, fs)
		if err != nil {
			return err
		}
		resp, data = fr, fr.Data
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, resp)
	}
	printRecordsTable(out, data)
	return nil
}

// parseFilterFlags turns key=value pairs into a filter set using the same
// rules as the HTTP query string.
func parseFilterFlags(pairs []string) (filter.FilterSet, error) {
	q := url.Values{}
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return filter.FilterSet{}, errors.Newf("invalid --filter %q, expected key=value", p)
		}
		q.Set(key, value)
	}
	return records.ParseFilterParams(q)
}

func printRecordsTable(w io.Writer, recs []analyzer.Record) {
	if len(recs) == 0 {
		fmt.Fprintln(w, "No strings matched.")
		return
	}
	fmt.Fprintf(w, "Found %d strings:\n\n", len(recs))
	for i, r := range recs {
		fmt.Fprintf(w, "  %d. %q\n", i+1, truncate(r.Value, 80))
		fmt.Fprintf(w, "     length=%d words=%d unique=%d palindrome=%t\n",
			r.Properties.Length, r.Properties.WordCount, r.Properties.UniqueCharacters, r.Properties.IsPalindrome)
		fmt.Fprintf(w, "     id=%s\n\n", r.ID)
	}
}

// truncate shortens s to at most max runes, adding "..." if truncated.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
