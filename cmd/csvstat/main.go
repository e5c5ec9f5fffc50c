// Command csvstat loads a comma-delimited data file and prints summary
// statistics: record count, min/max/avg of the "amount" field, and the
// distinct values of the "category" field.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/vinodismyname/mcpcsv/internal/dataset"
)

func main() {
	zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: csvstat <datafile.csv>")
		os.Exit(1)
	}

	path := os.Args[1]
	ds, err := dataset.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(ds) == 0 {
		fmt.Fprintln(os.Stderr, "No data loaded")
		os.Exit(1)
	}

	fmt.Printf("Loaded %d records\n", len(ds))

	if ds[0].Has("amount") {
		min, max, avg := dataset.Statistics(ds, "amount")
		fmt.Println("\nAmount Statistics:")
		fmt.Printf("  Min: %.2f\n", min)
		fmt.Printf("  Max: %.2f\n", max)
		fmt.Printf("  Avg: %.2f\n", avg)
	}

	if ds[0].Has("category") {
		categories := dataset.DistinctValues(ds, "category")
		fmt.Printf("\nCategories found: %s\n", strings.Join(categories, ", "))
	}
}
