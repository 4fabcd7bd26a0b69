package organize

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Category directory names files are sorted into.
const (
	CategoryImages    = "images"
	CategoryVideos    = "videos"
	CategoryAudio     = "audio"
	CategoryDocuments = "documents"
	CategoryArchives  = "archives"
	CategoryCode      = "code"
	CategoryData      = "data"
	CategoryApps      = "apps"
	CategoryFonts     = "fonts"
	CategoryOthers    = "others"
)

// categoryExtensions maps each category to the extensions it claims.
var categoryExtensions = map[string][]string{
	CategoryImages:    {".jpg", ".jpeg", ".png", ".gif", ".bmp", ".svg", ".webp", ".ico", ".tiff"},
	CategoryVideos:    {".mp4", ".avi", ".mkv", ".mov", ".wmv", ".flv", ".webm", ".m4v"},
	CategoryAudio:     {".mp3", ".wav", ".flac", ".aac", ".ogg", ".wma", ".m4a"},
	CategoryDocuments: {".pdf", ".doc", ".docx", ".txt", ".rtf", ".odt", ".xls", ".xlsx", ".ppt", ".pptx"},
	CategoryArchives:  {".zip", ".rar", ".7z", ".tar", ".gz", ".bz2", ".xz"},
	CategoryCode:      {".py", ".js", ".ts", ".html", ".css", ".java", ".cpp", ".c", ".go", ".rs", ".rb", ".php"},
	CategoryData:      {".json", ".xml", ".csv", ".yaml", ".yml", ".sql", ".db", ".sqlite"},
	CategoryApps:      {".exe", ".msi", ".dmg", ".app", ".deb", ".rpm"},
	CategoryFonts:     {".ttf", ".otf", ".woff", ".woff2", ".eot"},
}

// extToCategory is the inverted lookup, built once at init.
var extToCategory = func() map[string]string {
	m := make(map[string]string)
	for category, exts := range categoryExtensions {
		for _, ext := range exts {
			m[ext] = category
		}
	}
	return m
}()

// Categorize maps a file extension to its category directory.
func Categorize(ext string) string {
	if c, ok := extToCategory[strings.ToLower(ext)]; ok {
		return c
	}
	return CategoryOthers
}

// Categories returns every known category name, others last.
func Categories() []string {
	names := make([]string, 0, len(categoryExtensions)+1)
	for c := range categoryExtensions {
		names = append(names, c)
	}
	sort.Strings(names)
	return append(names, CategoryOthers)
}

// FileInfo describes one candidate file in the source directory.
type FileInfo struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Size     int64     `json:"size"`
	Ext      string    `json:"ext"`
	Modified time.Time `json:"modified"`
	Category string    `json:"category"`
}

// Result summarizes one organize run.
type Result struct {
	Batch          string         `json:"batch,omitempty"`
	TotalFiles     int            `json:"total_files"`
	MovedFiles     int            `json:"moved_files"`
	SkippedFiles   int            `json:"skipped_files"`
	Errors         []string       `json:"errors,omitempty"`
	CategoryCounts map[string]int `json:"category_counts"`
}

// Config controls an Organizer.
type Config struct {
	// Source is the directory to organize.
	Source string
	// Dest receives the category directories. Empty means organize
	// in place.
	Dest string
	// Journal enables the move journal so runs can be undone.
	Journal *Journal
	// OnProgress, when set, is called after each processed file
	// with the number of files handled so far and the total.
	OnProgress func(done, total int)
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Organizer sorts the files of a single directory into category
// subdirectories. Scanning is non-recursive: files already inside
// category directories are left alone.
type Organizer struct {
	source     string
	dest       string
	journal    *Journal
	onProgress func(done, total int)
	logger     *slog.Logger
}

// NewOrganizer validates the source directory and builds an
// Organizer.
func NewOrganizer(cfg Config) (*Organizer, error) {
	source, err := filepath.Abs(cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("resolve source: %w", err)
	}
	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("source directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source %s is not a directory", source)
	}

	dest := source
	if cfg.Dest != "" {
		if dest, err = filepath.Abs(cfg.Dest); err != nil {
			return nil, fmt.Errorf("resolve dest: %w", err)
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Organizer{
		source:     source,
		dest:       dest,
		journal:    cfg.Journal,
		onProgress: cfg.OnProgress,
		logger:     logger.With("component", "organize"),
	}, nil
}

// Source returns the resolved source directory.
func (o *Organizer) Source() string { return o.source }

// Dest returns the resolved destination directory.
func (o *Organizer) Dest() string { return o.dest }

// Scan lists the regular files directly inside the source directory.
// Hidden files and subdirectories are skipped.
func (o *Organizer) Scan() ([]FileInfo, error) {
	entries, err := os.ReadDir(o.source)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", o.source, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		files = append(files, FileInfo{
			Name:     entry.Name(),
			Path:     filepath.Join(o.source, entry.Name()),
			Size:     info.Size(),
			Ext:      ext,
			Modified: info.ModTime(),
			Category: Categorize(ext),
		})
	}
	return files, nil
}

// Preview groups the scan result by category without moving anything.
func (o *Organizer) Preview() (map[string][]FileInfo, error) {
	files, err := o.Scan()
	if err != nil {
		return nil, err
	}
	grouped := make(map[string][]FileInfo)
	for _, f := range files {
		grouped[f.Category] = append(grouped[f.Category], f)
	}
	return grouped, nil
}

// Organize moves every scanned file into its category directory
// under dest. With dryRun the result is computed but nothing moves.
// Name collisions resolve by appending a counter (report_1.pdf).
func (o *Organizer) Organize(dryRun bool) (Result, error) {
	files, err := o.Scan()
	if err != nil {
		return Result{}, err
	}

	result := Result{
		TotalFiles:     len(files),
		CategoryCounts: make(map[string]int),
	}

	var batch string
	if !dryRun && o.journal != nil {
		if batch, err = o.journal.BeginBatch(); err != nil {
			return Result{}, err
		}
		result.Batch = batch
	}

	for i, f := range files {
		categoryDir := filepath.Join(o.dest, f.Category)
		destPath := filepath.Join(categoryDir, f.Name)

		if !dryRun {
			if err := os.MkdirAll(categoryDir, 0o755); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", f.Name, err))
				result.SkippedFiles++
				o.reportProgress(i+1, len(files))
				continue
			}
			destPath = uniquePath(destPath)
			if err := os.Rename(f.Path, destPath); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", f.Name, err))
				result.SkippedFiles++
				o.reportProgress(i+1, len(files))
				continue
			}
			if o.journal != nil {
				if err := o.journal.RecordMove(batch, f.Path, destPath); err != nil {
					o.logger.Warn("journal write failed", "file", f.Name, "error", err)
				}
			}
			o.logger.Debug("moved file", "from", f.Path, "to", destPath)
			metrics().movedFiles.WithLabelValues(f.Category).Inc()
		}

		result.MovedFiles++
		result.CategoryCounts[f.Category]++
		o.reportProgress(i+1, len(files))
	}

	metrics().organizeRuns.WithLabelValues(runLabel(dryRun)).Inc()
	o.logger.Info("organize finished",
		"dry_run", dryRun,
		"total", result.TotalFiles,
		"moved", result.MovedFiles,
		"skipped", result.SkippedFiles,
	)
	return result, nil
}

func (o *Organizer) reportProgress(done, total int) {
	if o.onProgress != nil {
		o.onProgress(done, total)
	}
}

func runLabel(dryRun bool) string {
	if dryRun {
		return "dry_run"
	}
	return "apply"
}

// uniquePath returns path itself when free, otherwise the first
// name_N.ext variant that does not exist yet.
func uniquePath(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", base, i, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// Stats describes the current contents of the source directory.
type Stats struct {
	TotalFiles     int              `json:"total_files"`
	TotalSize      int64            `json:"total_size"`
	CategoryCounts map[string]int   `json:"category_counts"`
	CategorySizes  map[string]int64 `json:"category_sizes"`
	LargestFiles   []FileInfo       `json:"largest_files"`
	OldestFiles    []FileInfo       `json:"oldest_files"`
}

// Stats scans the source directory and summarizes it: totals,
// per-category counts and sizes, and the five largest and oldest
// files.
func (o *Organizer) Stats() (Stats, error) {
	files, err := o.Scan()
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{
		TotalFiles:     len(files),
		CategoryCounts: make(map[string]int),
		CategorySizes:  make(map[string]int64),
	}
	for _, f := range files {
		stats.TotalSize += f.Size
		stats.CategoryCounts[f.Category]++
		stats.CategorySizes[f.Category] += f.Size
	}

	bySize := append([]FileInfo(nil), files...)
	sort.Slice(bySize, func(i, j int) bool { return bySize[i].Size > bySize[j].Size })
	stats.LargestFiles = topN(bySize, 5)

	byAge := append([]FileInfo(nil), files...)
	sort.Slice(byAge, func(i, j int) bool { return byAge[i].Modified.Before(byAge[j].Modified) })
	stats.OldestFiles = topN(byAge, 5)

	return stats, nil
}

func topN(files []FileInfo, n int) []FileInfo {
	if len(files) > n {
		files = files[:n]
	}
	return files
}

// FormatSize renders a byte count in human units.
func FormatSize(size int64) string {
	if size < 1024 {
		return fmt.Sprintf("%d B", size)
	}
	value := float64(size)
	for _, unit := range []string{"KB", "MB", "GB", "TB"} {
		value /= 1024
		if value < 1024 {
			return fmt.Sprintf("%.1f %s", value, unit)
		}
	}
	return fmt.Sprintf("%.1f PB", value/1024)
}
