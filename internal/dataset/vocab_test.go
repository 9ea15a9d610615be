package dataset

import (
	"errors"
	"testing"
	"time"
)

func TestParseMonth(t *testing.T) {
	got, err := ParseMonth("  March ")
	if err != nil || got != "march" {
		t.Fatalf("expected march, got %q (%v)", got, err)
	}
	if _, err := ParseMonth("july"); !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("expected july to be rejected, got %v", err)
	}
}

func TestParseDay(t *testing.T) {
	got, err := ParseDay("SUNDAY")
	if err != nil || got != "sunday" {
		t.Fatalf("expected sunday, got %q (%v)", got, err)
	}
	if _, err := ParseDay("someday"); !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("expected someday to be rejected, got %v", err)
	}
}

func TestVocabularies(t *testing.T) {
	months := Months()
	if len(months) != 7 || months[0] != "all" || months[6] != "june" {
		t.Fatalf("unexpected months: %v", months)
	}
	days := Days()
	if len(days) != 8 || days[0] != "all" || days[7] != "sunday" {
		t.Fatalf("unexpected days: %v", days)
	}
	months[1] = "mutated"
	if Months()[1] != "january" {
		t.Fatalf("vocabulary must not be mutable through the returned slice")
	}
}

func TestMonthNumber(t *testing.T) {
	if m, ok := monthNumber("june"); !ok || m != time.June {
		t.Fatalf("expected June, got %v %v", m, ok)
	}
	if _, ok := monthNumber("all"); ok {
		t.Fatalf("all must not map to a month")
	}
	if weekdayName("wednesday") != time.Wednesday.String() {
		t.Fatalf("unexpected weekday name %q", weekdayName("wednesday"))
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry("data", map[string]string{
		"Washington":    "washington.csv",
		"chicago":       "/abs/chicago.csv",
		"New York City": "new_york_city.csv",
	})
	cities := reg.Cities()
	want := []string{"chicago", "new york city", "washington"}
	for i := range want {
		if cities[i] != want[i] {
			t.Fatalf("unexpected city order: %v", cities)
		}
	}
	src, err := reg.Source("CHICAGO")
	if err != nil || src != "/abs/chicago.csv" {
		t.Fatalf("unexpected source %q (%v)", src, err)
	}
	if _, err := reg.Source("boston"); !errors.Is(err, ErrUnknownCity) {
		t.Fatalf("expected ErrUnknownCity, got %v", err)
	}
	if city, err := reg.ParseCity(" new york city "); err != nil || city != "new york city" {
		t.Fatalf("unexpected ParseCity result %q (%v)", city, err)
	}
}

func TestRegistryCollidingKeysDeterministic(t *testing.T) {
	entries := map[string]string{
		"chicago":  "/lower.csv",
		"Chicago":  "/upper.csv",
		" CHICAGO": "/padded.csv",
	}
	for i := 0; i < 20; i++ {
		reg := NewRegistry("", entries)
		src, err := reg.Source("chicago")
		if err != nil {
			t.Fatalf("Source failed: %v", err)
		}
		if src != "/padded.csv" {
			t.Fatalf("expected first sorted key to win, got %q", src)
		}
		if cities := reg.Cities(); len(cities) != 1 {
			t.Fatalf("expected one city, got %v", cities)
		}
	}
}
