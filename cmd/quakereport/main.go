// Command quakereport prints the analysis of a previously downloaded USGS
// feed file to the terminal: date span, per-feature statistics, the
// strongest event, and the daily count series.
//
// Usage:
//
//	go run ./cmd/quakereport -file usgs_earthquakes_week_20140327.0915.csv [-min-mag 5.0]
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/couchcryptid/quake-feed-analytics/internal/adapter/csvfeed"
	"github.com/couchcryptid/quake-feed-analytics/internal/domain"
)

func main() {
	file := flag.String("file", "", "path of a downloaded USGS summary CSV")
	minMag := flag.Float64("min-mag", 5.0, "magnitude threshold for the significant event listing")
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*file, *minMag); code != 0 {
		os.Exit(code)
	}
}

func run(path string, minMag float64) int {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not access %q: %v\n", path, err)
		return 2
	}
	defer f.Close()

	batch, skipped, err := csvfeed.Parse(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse %q: %v\n", path, err)
		return 2
	}
	for _, row := range skipped {
		fmt.Fprintf(os.Stderr, "skipped row %d: %v\n", row.Line, row.Err)
	}

	report, err := domain.Analyze(batch)
	if err != nil {
		fmt.Fprintf(os.Stderr, "analyze: %v\n", err)
		return 2
	}

	fmt.Printf("The data set includes %d USGS earthquake records from %s to %s.\n\n",
		report.RecordCount,
		report.DateMin.Format(domain.TimestampLayout),
		report.DateMax.Format(domain.TimestampLayout),
	)

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "Feature\tMinimum\tMaximum\tMean\tStandard Deviation")
	fmt.Fprintf(w, "Depth (km)\t%.1f\t%.1f\t%.1f\t%.1f\n",
		report.Depth.Min, report.Depth.Max, report.Depth.Mean, report.Depth.Std)
	fmt.Fprintf(w, "Magnitude\t%.1f\t%.1f\t%.1f\t%.1f\n",
		report.Magnitude.Min, report.Magnitude.Max, report.Magnitude.Mean, report.Magnitude.Std)
	w.Flush()

	s := report.Strongest
	fmt.Printf("\nStrongest event: M%.1f at %s (%.4f, %.4f), depth %.1f km [%s]\n",
		s.Magnitude, s.Time.Format(domain.TimestampLayout),
		s.Latitude, s.Longitude, s.Depth, domain.TierForDepth(s.Depth),
	)

	fmt.Println("\nDaily counts:")
	for _, dc := range report.DailyCounts {
		fmt.Printf("  %s  %d\n", dc.Date.Format("2006-01-02"), dc.Count)
	}

	significant := domain.Classify(domain.FilterByMagnitude(batch, minMag))
	fmt.Printf("\nEvents with magnitude >= %.1f: %d\n", minMag, len(significant))
	for _, ev := range significant {
		fmt.Printf("  M%.1f  %s  (%.4f, %.4f)  %s  marker %.2f\n",
			ev.Magnitude, ev.Time.Format("2006-01-02 15:04:05"),
			ev.Latitude, ev.Longitude, ev.Tier, ev.MarkerWeight,
		)
	}

	return 0
}
