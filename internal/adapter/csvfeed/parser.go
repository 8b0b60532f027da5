// Package csvfeed parses USGS earthquake summary CSVs into domain batches.
//
// The feed carries many more columns than this service uses (place, net,
// nst, gap, ...); the parser resolves the five required columns by header
// name and ignores the rest, so column reordering upstream is harmless.
//
// Rows that cannot be parsed — malformed timestamp or a non-numeric value in
// a required column — are skipped and reported per row rather than failing
// the whole batch; the caller decides how loudly to surface them.
package csvfeed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/couchcryptid/quake-feed-analytics/internal/domain"
)

// requiredColumns are the feed header names the parser must find.
var requiredColumns = []string{"time", "latitude", "longitude", "depth", "mag"}

// Parse reads a USGS summary CSV with header row and returns the record
// batch plus a report of skipped rows. A missing or unreadable header, or a
// header lacking a required column, fails the whole parse.
func Parse(r io.Reader) (domain.Batch, []domain.SkippedRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // feed rows occasionally vary in width
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Batch{}, nil, errors.New("empty feed: no header row")
		}
		return domain.Batch{}, nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := resolveColumns(header)
	if err != nil {
		return domain.Batch{}, nil, err
	}

	var (
		records []domain.QuakeRecord
		skipped []domain.SkippedRow
		line    = 1 // header consumed
	)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			skipped = append(skipped, domain.SkippedRow{Line: line, Err: fmt.Errorf("read row: %w", err)})
			continue
		}

		rec, err := parseRow(row, cols)
		if err != nil {
			skipped = append(skipped, domain.SkippedRow{Line: line, Err: err})
			continue
		}
		records = append(records, rec)
	}

	return domain.NewBatch(records), skipped, nil
}

// columnIndexes holds the position of each required column in the header.
type columnIndexes struct {
	time, latitude, longitude, depth, mag int
}

func resolveColumns(header []string) (columnIndexes, error) {
	byName := make(map[string]int, len(header))
	for i, name := range header {
		byName[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := byName[name]; !ok {
			return columnIndexes{}, fmt.Errorf("feed header missing column %q", name)
		}
	}
	return columnIndexes{
		time:      byName["time"],
		latitude:  byName["latitude"],
		longitude: byName["longitude"],
		depth:     byName["depth"],
		mag:       byName["mag"],
	}, nil
}

func parseRow(row []string, cols columnIndexes) (domain.QuakeRecord, error) {
	width := max(cols.time, cols.latitude, cols.longitude, cols.depth, cols.mag)
	if len(row) <= width {
		return domain.QuakeRecord{}, fmt.Errorf("row has %d fields, need at least %d", len(row), width+1)
	}

	ts, err := domain.ParseTimestamp(row[cols.time])
	if err != nil {
		return domain.QuakeRecord{}, err
	}
	lat, err := parseField("latitude", row[cols.latitude])
	if err != nil {
		return domain.QuakeRecord{}, err
	}
	lon, err := parseField("longitude", row[cols.longitude])
	if err != nil {
		return domain.QuakeRecord{}, err
	}
	depth, err := parseField("depth", row[cols.depth])
	if err != nil {
		return domain.QuakeRecord{}, err
	}
	mag, err := parseField("mag", row[cols.mag])
	if err != nil {
		return domain.QuakeRecord{}, err
	}

	return domain.QuakeRecord{
		Time:      ts,
		Latitude:  lat,
		Longitude: lon,
		Depth:     depth,
		Magnitude: mag,
	}, nil
}

func parseField(name, value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", name, value, err)
	}
	return v, nil
}
