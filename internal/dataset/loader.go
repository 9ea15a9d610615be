package dataset

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/bikeshare/internal/model"
	"github.com/verte-zerg/bikeshare/internal/source"
)

// Column names in the dataset header.
const (
	ColStartTime    = "Start Time"
	ColStartStation = "Start Station"
	ColEndStation   = "End Station"
	ColTripDuration = "Trip Duration"
	ColUserType     = "User Type"
	ColGender       = "Gender"
	ColBirthYear    = "Birth Year"
)

var requiredColumns = []string{ColStartTime, ColStartStation, ColEndStation, ColTripDuration, ColUserType}

var timeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"01/02/2006 15:04:05",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
}

// ReadFunc reads a raw table from a dataset source.
type ReadFunc func(ctx context.Context, path string) (source.Table, error)

// Loader loads and filters city datasets.
type Loader struct {
	registry *Registry
	read     ReadFunc
}

// NewLoader returns a Loader reading sources with source.Read.
func NewLoader(registry *Registry) *Loader {
	return &Loader{registry: registry, read: source.Read}
}

// Registry returns the registry owned by the loader.
func (l *Loader) Registry() *Registry {
	return l.registry
}

// Load reads the city's dataset, derives month and weekday per row, and keeps
// the rows matching filter in source order. Any failure aborts the whole load.
func (l *Loader) Load(ctx context.Context, city string, filter model.Filter) (*model.RowSet, error) {
	path, err := l.registry.Source(city)
	if err != nil {
		return nil, err
	}
	table, err := l.read(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
	}
	rs, err := BuildRowSet(normalize(city), table)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return ApplyFilter(rs, filter)
}

// BuildRowSet converts a raw table into trips. Optional columns are detected
// once from the header.
func BuildRowSet(city string, table source.Table) (*model.RowSet, error) {
	idx := make(map[string]int, len(requiredColumns))
	for _, name := range requiredColumns {
		i := table.Index(name)
		if i < 0 {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
		idx[name] = i
	}
	genderIdx := table.Index(ColGender)
	birthIdx := table.Index(ColBirthYear)

	rs := &model.RowSet{
		City:         city,
		Filter:       model.Filter{Month: model.FilterAll, Day: model.FilterAll},
		Trips:        make([]model.Trip, 0, len(table.Rows)),
		HasGender:    genderIdx >= 0,
		HasBirthYear: birthIdx >= 0,
	}
	for i, row := range table.Rows {
		line := i + 2
		start, err := parseTime(cell(row, idx[ColStartTime]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrUnparsableTimestamp, line, err)
		}
		duration, err := parseDuration(cell(row, idx[ColTripDuration]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %s: %v", ErrInvalidValue, line, ColTripDuration, err)
		}
		trip := model.Trip{
			StartTime:    start,
			StartStation: optional(cell(row, idx[ColStartStation])),
			EndStation:   optional(cell(row, idx[ColEndStation])),
			Duration:     duration,
			UserType:     optional(cell(row, idx[ColUserType])),
			Month:        start.Month(),
			Weekday:      start.Weekday(),
		}
		if genderIdx >= 0 {
			trip.Gender = optional(cell(row, genderIdx))
		}
		if birthIdx >= 0 {
			year, ok, err := parseYear(cell(row, birthIdx))
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %s: %v", ErrInvalidValue, line, ColBirthYear, err)
			}
			trip.BirthYear = year
			trip.HasBirthYear = ok
		}
		rs.Trips = append(rs.Trips, trip)
	}
	return rs, nil
}

// ApplyFilter returns a new row-set holding the trips of rs that match filter,
// in their original order. Filtering is idempotent.
func ApplyFilter(rs *model.RowSet, filter model.Filter) (*model.RowSet, error) {
	f, err := NewFilter(defaultAll(filter.Month), defaultAll(filter.Day))
	if err != nil {
		return nil, err
	}
	month, byMonth := monthNumber(f.Month)
	day := weekdayName(f.Day)
	byDay := f.Day != model.FilterAll

	out := &model.RowSet{
		City:         rs.City,
		Filter:       f,
		Trips:        make([]model.Trip, 0, len(rs.Trips)),
		HasGender:    rs.HasGender,
		HasBirthYear: rs.HasBirthYear,
	}
	for _, trip := range rs.Trips {
		if byMonth && trip.Month != month {
			continue
		}
		if byDay && trip.Weekday.String() != day {
			continue
		}
		out.Trips = append(out.Trips, trip)
	}
	return out, nil
}

func defaultAll(s string) string {
	if strings.TrimSpace(s) == "" {
		return model.FilterAll
	}
	return s
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// optional maps missing-value markers to "".
func optional(s string) string {
	s = strings.TrimSpace(s)
	switch s {
	case "NaN", "NA", "<nil>":
		return ""
	}
	return s
}

func parseTime(raw string) (time.Time, error) {
	value := optional(raw)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty value")
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%q matches no known layout", raw)
}

func parseDuration(raw string) (float64, error) {
	value := optional(raw)
	if value == "" {
		return 0, fmt.Errorf("empty value")
	}
	d, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return 0, fmt.Errorf("%q is not a non-negative duration", raw)
	}
	return d, nil
}

func parseYear(raw string) (int, bool, error) {
	value := optional(raw)
	if value == "" {
		return 0, false, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false, fmt.Errorf("%q is not a year", raw)
	}
	return int(f), true, nil
}
