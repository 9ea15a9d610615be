package stats

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/verte-zerg/bikeshare/internal/model"
)

const (
	sparkChars       = " .:-=+*#%@"
	defaultRuleWidth = 40
)

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderReport prints every section of the report.
func RenderReport(w io.Writer, r Report) error {
	return RenderReportWithWidth(w, r, defaultRuleWidth)
}

// RenderReportWithWidth prints every section with separators of the given width.
func RenderReportWithWidth(w io.Writer, r Report, width int) error {
	if width <= 0 {
		width = defaultRuleWidth
	}
	rule := strings.Repeat("-", width)
	lines := []string{
		fmt.Sprintf("City: %s  month: %s  day: %s  trips: %d", titleCase(r.City), r.Filter.Month, r.Filter.Day, r.Trips),
		rule,
	}
	sections := [][]string{
		section("Calculating The Most Frequent Times of Travel...", r.Time.Err, r.Time.Elapsed, func() []string {
			return timeLines(r.Time.Value)
		}),
		section("Calculating The Most Popular Stations and Trip...", r.Stations.Err, r.Stations.Elapsed, func() []string {
			return stationLines(r.Stations.Value)
		}),
		section("Calculating Trip Duration...", r.Duration.Err, r.Duration.Elapsed, func() []string {
			return durationLines(r.Duration.Value)
		}),
		section("Calculating User Stats...", r.Users.Err, r.Users.Elapsed, func() []string {
			return userLines(r.Users.Value)
		}),
	}
	for _, s := range sections {
		lines = append(lines, s...)
		lines = append(lines, rule)
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func section(title string, err error, elapsed time.Duration, body func() []string) []string {
	lines := []string{"", title, ""}
	switch {
	case errors.Is(err, ErrNoData):
		lines = append(lines, "No matching trips.")
	case err != nil:
		lines = append(lines, fmt.Sprintf("Failed to compute: %v", err))
	default:
		lines = append(lines, body()...)
	}
	lines = append(lines, "", fmt.Sprintf("This took %.6f seconds.", elapsed.Seconds()))
	return lines
}

func timeLines(s model.TimeStats) []string {
	hours := make([]float64, len(s.HourCounts))
	for i, n := range s.HourCounts {
		hours[i] = float64(n)
	}
	return []string{
		fmt.Sprintf("Most common month: %s (%d trips)", s.PopularMonth, s.PopularMonthCount),
		fmt.Sprintf("Most common day of week: %s (%d trips)", s.PopularWeekday, s.PopularWeekdayCount),
		fmt.Sprintf("Most common start hour: %d (%d trips)", s.PopularHour, s.PopularHourCount),
		fmt.Sprintf("Start hours 0-23: [%s]", Sparkline(hours)),
	}
}

func stationLines(s model.StationStats) []string {
	return []string{
		fmt.Sprintf("Most commonly used start station: %s (%d trips)", s.PopularStart, s.PopularStartCount),
		fmt.Sprintf("Most commonly used end station: %s (%d trips)", s.PopularEnd, s.PopularEndCount),
		fmt.Sprintf("Most frequent trip: %s (%d trips)", s.PopularRoute, s.PopularRouteCount),
	}
}

func durationLines(s model.DurationStats) []string {
	return []string{
		fmt.Sprintf("Total travel time: %.2f seconds (%s)", s.TotalSeconds, humanDuration(s.TotalSeconds)),
		fmt.Sprintf("Mean travel time: %.2f seconds (%s)", s.MeanSeconds, humanDuration(s.MeanSeconds)),
	}
}

func userLines(s model.UserStats) []string {
	lines := countTable("User Type", s.TypeCounts)
	lines = append(lines, "")
	if s.Gender == nil {
		lines = append(lines, "Gender: not available for this dataset.")
	} else {
		lines = append(lines, countTable("Gender", s.Gender.Counts)...)
	}
	lines = append(lines, "")
	if s.BirthYear == nil {
		lines = append(lines, "Birth year: not available for this dataset.")
	} else {
		by := s.BirthYear
		lines = append(lines,
			fmt.Sprintf("Earliest birth year: %d", by.Earliest),
			fmt.Sprintf("Most recent birth year: %d", by.MostRecent),
			fmt.Sprintf("Most common birth year: %d (%d riders)", by.MostCommon, by.MostCommonCount),
		)
	}
	return lines
}

func countTable(header string, counts []model.ValueCount) []string {
	if len(counts) == 0 {
		return []string{fmt.Sprintf("%s: no values recorded.", header)}
	}
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{c.Value, fmt.Sprintf("%d", c.Count)})
	}
	return formatTable([]string{header, "Count"}, rows, map[int]bool{1: true})
}

func humanDuration(seconds float64) string {
	return time.Duration(seconds * float64(time.Second)).Round(time.Second).String()
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		r, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(r)) + word[size:]
	}
	return strings.Join(words, " ")
}
