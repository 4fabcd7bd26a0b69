package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"fieldkit-hq/fieldkit/pkg/cli"
	"fieldkit-hq/fieldkit/pkg/config"
	"fieldkit-hq/fieldkit/pkg/history"
)

var historyFlags struct {
	kind   string
	limit  int
	format string
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded invocations",
	Long: `Inspect the invocation history recorded by calc, convert, finance
and passwd.

Subcommands:
  list    - show recent entries
  search  - search entries by text
  clear   - delete entries

Examples:
  # Show the 20 most recent entries
  fieldkit history list

  # Show recent calculator entries only
  fieldkit history list --kind calc

  # Find past evaluations mentioning sqrt
  fieldkit history search sqrt

  # Export recent entries as CSV
  fieldkit history list --format csv

  # Delete everything
  fieldkit history clear`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show recent history entries",
	RunE:  runHistoryList,
}

var historySearchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search history entries by text",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistorySearch,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete history entries",
	Long:  `Delete history entries. With --kind only that kind is cleared.`,
	RunE:  runHistoryClear,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historySearchCmd, historyClearCmd)

	historyListCmd.Flags().StringVar(&historyFlags.kind, "kind", "", "filter by kind (calc, convert, finance, passwd)")
	historyListCmd.Flags().IntVar(&historyFlags.limit, "limit", 20, "max entries")
	historyListCmd.Flags().StringVar(&historyFlags.format, "format", "text", "output format: text, json, csv")

	historySearchCmd.Flags().IntVar(&historyFlags.limit, "limit", 20, "max entries")
	historySearchCmd.Flags().StringVar(&historyFlags.format, "format", "text", "output format: text, json, csv")

	historyClearCmd.Flags().StringVar(&historyFlags.kind, "kind", "", "clear only this kind")
}

// openHistoryStore opens the configured history database, applying
// the default location when none is set.
func openHistoryStore(cfg *config.Config) (*history.Store, error) {
	path := cfg.History.Path
	if path == "" {
		path = config.DefaultHistoryPath()
	}
	return history.Open(path)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openHistoryStore(cfg)
	if err != nil {
		return cli.NewCommandError("history", err)
	}
	defer store.Close()

	entries, err := store.Recent(context.Background(), historyFlags.kind, historyFlags.limit)
	if err != nil {
		return cli.NewCommandError("history", err)
	}

	return printHistoryEntries(entries)
}

func runHistorySearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openHistoryStore(cfg)
	if err != nil {
		return cli.NewCommandError("history", err)
	}
	defer store.Close()

	entries, err := store.Search(context.Background(), args[0], historyFlags.limit)
	if err != nil {
		return cli.NewCommandError("history", err)
	}

	return printHistoryEntries(entries)
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openHistoryStore(cfg)
	if err != nil {
		return cli.NewCommandError("history", err)
	}
	defer store.Close()

	deleted, err := store.Clear(context.Background(), historyFlags.kind)
	if err != nil {
		return cli.NewCommandError("history", err)
	}

	fmt.Printf("Deleted %d entries\n", deleted)
	return nil
}

// historyEntries adapts query results to the output formatters: it
// satisfies fmt.Stringer for text and cli.Tabular for CSV.
type historyEntries []history.Entry

func (e historyEntries) String() string {
	if len(e) == 0 {
		return "No entries found."
	}
	var sb strings.Builder
	for i, entry := range e {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s  [%s]  %s = %s",
			entry.CreatedAt.Format(time.DateTime),
			entry.Kind, entry.Input, entry.Result)
	}
	return sb.String()
}

func (e historyEntries) CSVHeader() []string {
	return []string{"created_at", "kind", "input", "result"}
}

func (e historyEntries) CSVRows() [][]string {
	rows := make([][]string, 0, len(e))
	for _, entry := range e {
		rows = append(rows, []string{
			entry.CreatedAt.Format(time.RFC3339),
			entry.Kind, entry.Input, entry.Result,
		})
	}
	return rows
}

func printHistoryEntries(entries []history.Entry) error {
	formatter := cli.NewFormatter(cli.OutputFormat(historyFlags.format))
	return formatter.FormatTo(os.Stdout, historyEntries(entries))
}
