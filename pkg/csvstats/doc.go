// Package csvstats analyzes delimited text files without loading
// anything heavier than encoding/csv.
//
// A Dataset keeps every cell as a string; operations that need
// numbers parse cells on the fly and ignore the ones that do not
// parse. A column counts as numeric when more than 80% of its cells
// parse, which tolerates stray annotations in otherwise numeric data.
//
// # Basic Usage
//
//	ds, err := csvstats.Load("sales.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, _ := ds.Describe()
//	fmt.Println(out)
//
// Beyond per-column statistics the package offers row filtering with
// comparison operators, group-by with numeric aggregates, Pearson
// correlation, value frequency counts, and text rendering helpers
// (aligned tables and histograms) for terminal output.
package csvstats
