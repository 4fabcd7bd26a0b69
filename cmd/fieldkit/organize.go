package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"fieldkit-hq/fieldkit/pkg/cli"
	"fieldkit-hq/fieldkit/pkg/config"
	"fieldkit-hq/fieldkit/pkg/organize"
)

var organizeFlags struct {
	dest      string
	dryRun    bool
	preview   bool
	stats     bool
	noJournal bool
	journal   string
	batch     string
	debounce  time.Duration
	rescan    string
	metrics   string
}

var organizeCmd = &cobra.Command{
	Use:   "organize <directory>",
	Short: "Sort a directory into category subdirectories",
	Long: `Sort the files of a directory into category subdirectories (images,
videos, audio, documents, archives, code, data, apps, fonts, others)
based on file extension.

Moves are recorded in a journal database so a run can be undone with
"organize undo". Name collisions are resolved by appending a numeric
suffix.

Examples:
  # Organize the downloads directory in place
  fieldkit organize ~/Downloads

  # See what would happen first
  fieldkit organize ~/Downloads --dry-run

  # Group into a separate directory
  fieldkit organize ~/Downloads --dest ~/Sorted

  # Show a categorized preview without moving anything
  fieldkit organize ~/Downloads --preview

  # Show directory statistics
  fieldkit organize ~/Downloads --stats`,
	Args: cobra.ExactArgs(1),
	RunE: runOrganize,
}

var organizeUndoCmd = &cobra.Command{
	Use:   "undo <directory>",
	Short: "Undo the most recent organize run",
	Long: `Undo an organize run by moving files back to their recorded source
paths. Without --batch the most recent run is undone.`,
	Args: cobra.ExactArgs(1),
	RunE: runOrganizeUndo,
}

var organizeWatchCmd = &cobra.Command{
	Use:   "watch <directory>",
	Short: "Keep a directory organized continuously",
	Long: `Watch a directory and organize it whenever files arrive. Filesystem
events are debounced so bursts of downloads trigger a single run. An
optional cron schedule forces periodic full rescans, and an optional
Prometheus endpoint exposes run counters.

Stops gracefully on SIGINT or SIGTERM.

Examples:
  # Watch with defaults
  fieldkit organize watch ~/Downloads

  # Longer quiet period, hourly forced rescan
  fieldkit organize watch ~/Downloads --debounce 10s --rescan "0 * * * *"

  # Expose metrics
  fieldkit organize watch ~/Downloads --metrics 127.0.0.1:9090`,
	Args: cobra.ExactArgs(1),
	RunE: runOrganizeWatch,
}

func init() {
	rootCmd.AddCommand(organizeCmd)
	organizeCmd.AddCommand(organizeUndoCmd, organizeWatchCmd)

	organizeCmd.Flags().StringVarP(&organizeFlags.dest, "dest", "d", "", "destination directory (default: organize in place)")
	organizeCmd.Flags().BoolVar(&organizeFlags.dryRun, "dry-run", false, "report planned moves without moving")
	organizeCmd.Flags().BoolVar(&organizeFlags.preview, "preview", false, "show files grouped by category and exit")
	organizeCmd.Flags().BoolVar(&organizeFlags.stats, "stats", false, "show directory statistics and exit")
	organizeCmd.Flags().BoolVar(&organizeFlags.noJournal, "no-journal", false, "skip the move journal (run cannot be undone)")
	organizeCmd.Flags().StringVar(&organizeFlags.journal, "journal", "", "journal database path (default: from config)")

	organizeUndoCmd.Flags().StringVar(&organizeFlags.batch, "batch", "", "batch ID to undo (default: most recent)")
	organizeUndoCmd.Flags().StringVar(&organizeFlags.journal, "journal", "", "journal database path (default: from config)")

	organizeWatchCmd.Flags().DurationVar(&organizeFlags.debounce, "debounce", 0, "quiet period before a triggered run (default: from config)")
	organizeWatchCmd.Flags().StringVar(&organizeFlags.rescan, "rescan", "", "cron expression for periodic full rescans")
	organizeWatchCmd.Flags().StringVar(&organizeFlags.metrics, "metrics", "", "listen address for the Prometheus endpoint")
	organizeWatchCmd.Flags().BoolVar(&organizeFlags.dryRun, "dry-run", false, "report planned moves without moving")
	organizeWatchCmd.Flags().StringVarP(&organizeFlags.dest, "dest", "d", "", "destination directory (default: organize in place)")
	organizeWatchCmd.Flags().BoolVar(&organizeFlags.noJournal, "no-journal", false, "skip the move journal")
	organizeWatchCmd.Flags().StringVar(&organizeFlags.journal, "journal", "", "journal database path (default: from config)")
}

// journalPath resolves the move journal location: flag, then config,
// then a hidden database inside the destination directory.
func journalPath(cfg *config.Config, dest string) string {
	if organizeFlags.journal != "" {
		return organizeFlags.journal
	}
	if cfg.Organize.JournalPath != "" {
		return cfg.Organize.JournalPath
	}
	return filepath.Join(dest, config.DefaultJournalFilename)
}

func buildOrganizer(cfg *config.Config, source string, onProgress func(done, total int)) (*organize.Organizer, *organize.Journal, error) {
	var journal *organize.Journal
	if !organizeFlags.noJournal {
		dest := organizeFlags.dest
		if dest == "" {
			dest = source
		}
		var err error
		journal, err = organize.OpenJournal(journalPath(cfg, dest))
		if err != nil {
			return nil, nil, fmt.Errorf("open journal: %w", err)
		}
	}

	organizer, err := organize.NewOrganizer(organize.Config{
		Source:     source,
		Dest:       organizeFlags.dest,
		Journal:    journal,
		OnProgress: onProgress,
	})
	if err != nil {
		if journal != nil {
			journal.Close()
		}
		return nil, nil, err
	}
	return organizer, journal, nil
}

func runOrganize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if organizeFlags.preview || organizeFlags.stats {
		// Read-only modes never need the journal.
		organizeFlags.noJournal = true
	}

	progress := cli.NewProgressReporter(nil)
	started := false
	onProgress := func(done, total int) {
		if !started {
			progress.Start(int64(total))
			started = true
		}
		progress.Update(int64(done))
	}

	organizer, journal, err := buildOrganizer(cfg, args[0], onProgress)
	if err != nil {
		return cli.NewCommandError("organize", err)
	}
	if journal != nil {
		defer journal.Close()
	}

	switch {
	case organizeFlags.preview:
		return printOrganizePreview(organizer)
	case organizeFlags.stats:
		return printOrganizeStats(organizer)
	}

	result, err := organizer.Organize(organizeFlags.dryRun)
	if started {
		progress.Finish()
	}
	if err != nil {
		return cli.NewCommandError("organize", err)
	}

	verb := "Moved"
	if organizeFlags.dryRun {
		verb = "Would move"
	}
	fmt.Printf("%s %d of %d files (%d skipped)\n", verb, result.MovedFiles, result.TotalFiles, result.SkippedFiles)
	for _, category := range sortedKeys(result.CategoryCounts) {
		fmt.Printf("  %-10s %d\n", category, result.CategoryCounts[category])
	}
	for _, msg := range result.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "error: %s\n", msg)
	}
	if result.Batch != "" && !organizeFlags.dryRun {
		fmt.Printf("Batch: %s (undo with: fieldkit organize undo %s)\n", result.Batch, args[0])
	}
	if len(result.Errors) > 0 {
		return cli.NewCommandError("organize", fmt.Errorf("%d files failed to move", len(result.Errors)))
	}
	return nil
}

func printOrganizePreview(organizer *organize.Organizer) error {
	preview, err := organizer.Preview()
	if err != nil {
		return cli.NewCommandError("organize", err)
	}
	if len(preview) == 0 {
		fmt.Println("Nothing to organize.")
		return nil
	}

	categories := make([]string, 0, len(preview))
	for category := range preview {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		files := preview[category]
		fmt.Printf("%s (%d):\n", category, len(files))
		for _, file := range files {
			fmt.Printf("  %s (%s)\n", file.Name, organize.FormatSize(file.Size))
		}
	}
	return nil
}

func printOrganizeStats(organizer *organize.Organizer) error {
	stats, err := organizer.Stats()
	if err != nil {
		return cli.NewCommandError("organize", err)
	}

	fmt.Printf("Files: %d\n", stats.TotalFiles)
	fmt.Printf("Total size: %s\n", organize.FormatSize(stats.TotalSize))
	fmt.Println()
	fmt.Println("By category:")
	for _, category := range sortedKeys(stats.CategoryCounts) {
		fmt.Printf("  %-10s %4d  %s\n", category,
			stats.CategoryCounts[category],
			organize.FormatSize(stats.CategorySizes[category]))
	}
	if len(stats.LargestFiles) > 0 {
		fmt.Println()
		fmt.Println("Largest files:")
		for _, file := range stats.LargestFiles {
			fmt.Printf("  %-10s %s\n", organize.FormatSize(file.Size), file.Name)
		}
	}
	if len(stats.OldestFiles) > 0 {
		fmt.Println()
		fmt.Println("Oldest files:")
		for _, file := range stats.OldestFiles {
			fmt.Printf("  %s  %s\n", file.Modified.Format(time.DateOnly), file.Name)
		}
	}
	return nil
}

func runOrganizeUndo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dest := organizeFlags.dest
	if dest == "" {
		dest = args[0]
	}
	journal, err := organize.OpenJournal(journalPath(cfg, dest))
	if err != nil {
		return cli.NewCommandError("organize", err)
	}
	defer journal.Close()

	restored, err := journal.Undo(organizeFlags.batch)
	if err != nil {
		return cli.NewCommandError("organize", err)
	}

	fmt.Printf("Restored %d files\n", restored)
	return nil
}

func runOrganizeWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	organizer, journal, err := buildOrganizer(cfg, args[0], nil)
	if err != nil {
		return cli.NewCommandError("organize", err)
	}
	if journal != nil {
		defer journal.Close()
	}

	debounce := cfg.Organize.Debounce
	if organizeFlags.debounce > 0 {
		debounce = organizeFlags.debounce
	}
	rescan := cfg.Organize.RescanSchedule
	if organizeFlags.rescan != "" {
		rescan = organizeFlags.rescan
	}
	metricsAddr := cfg.Organize.MetricsAddress
	if organizeFlags.metrics != "" {
		metricsAddr = organizeFlags.metrics
	}

	watcher, err := organize.NewWatcher(organizer, organize.WatcherConfig{
		Debounce:       debounce,
		RescanSchedule: rescan,
		DryRun:         organizeFlags.dryRun,
	})
	if err != nil {
		return cli.NewCommandError("organize", err)
	}

	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsServer := &http.Server{Addr: metricsAddr, Handler: mux}
		go func() {
			slog.Info("metrics endpoint listening", "address", metricsAddr)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics endpoint failed", "error", err)
			}
		}()
		defer metricsServer.Close()
	}

	ctx, cancel := cli.SetupSignalHandler()
	defer cancel()

	fmt.Printf("Watching %s (Ctrl+C to stop)\n", organizer.Source())
	if err := watcher.Watch(ctx); err != nil {
		return cli.NewCommandError("organize", err)
	}
	fmt.Println("Stopped.")
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
