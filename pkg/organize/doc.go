// Package organize sorts the files of a directory into category
// subdirectories (images, documents, archives and so on) chosen by
// file extension.
//
// # Basic Usage
//
//	o, err := organize.NewOrganizer(organize.Config{Source: "~/Downloads"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := o.Organize(false)
//
// Scanning is non-recursive, so files already sorted into category
// directories stay where they are, and name collisions at the
// destination resolve with a numeric suffix instead of overwriting.
//
// A SQLite Journal records every applied move grouped by run, which
// makes runs reversible through Undo. A Watcher keeps a directory
// continuously organized: fsnotify events debounce into runs, and an
// optional cron schedule adds periodic full rescans. Run counters
// are exported as Prometheus metrics for long-lived watch mode.
package organize
