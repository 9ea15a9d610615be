package dataset

import (
	"fmt"
	"strings"
	"time"

	"github.com/verte-zerg/bikeshare/internal/model"
)

// Month filtering is limited to January through June.
var months = []string{model.FilterAll, "january", "february", "march", "april", "may", "june"}

var days = []string{model.FilterAll, "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// Months returns the ordered month vocabulary, starting with "all".
func Months() []string {
	return append([]string(nil), months...)
}

// Days returns the ordered day vocabulary, starting with "all".
func Days() []string {
	return append([]string(nil), days...)
}

// ParseMonth validates raw user text against the month vocabulary.
func ParseMonth(input string) (string, error) {
	return parseVocab("month", input, months)
}

// ParseDay validates raw user text against the day vocabulary.
func ParseDay(input string) (string, error) {
	return parseVocab("day", input, days)
}

// NewFilter validates both selectors and returns a filter.
func NewFilter(month, day string) (model.Filter, error) {
	m, err := ParseMonth(month)
	if err != nil {
		return model.Filter{}, err
	}
	d, err := ParseDay(day)
	if err != nil {
		return model.Filter{}, err
	}
	return model.Filter{Month: m, Day: d}, nil
}

func parseVocab(kind, input string, vocab []string) (string, error) {
	key := normalize(input)
	for _, v := range vocab {
		if v == key {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %s %q (choose from %s)", ErrInvalidFilter, kind, input, strings.Join(vocab, ", "))
}

// monthNumber maps a month selector to its calendar month. "all" has no month.
func monthNumber(month string) (time.Month, bool) {
	for i, v := range months {
		if i > 0 && v == month {
			return time.Month(i), true
		}
	}
	return 0, false
}

// weekdayName returns the canonical capitalized weekday for a day selector.
func weekdayName(day string) string {
	if day == "" {
		return ""
	}
	return strings.ToUpper(day[:1]) + day[1:]
}
