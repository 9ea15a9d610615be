// Package model defines shared data structures.
package model

import "time"

// FilterAll is the sentinel meaning "no filter" for month and day selectors.
const FilterAll = "all"

// Filter narrows a row-set by month and weekday.
type Filter struct {
	Month string
	Day   string
}

// Trip is a single trip record with its derived calendar fields.
// Month and Weekday are derived from StartTime at load time.
type Trip struct {
	StartTime    time.Time
	StartStation string
	EndStation   string
	Duration     float64
	UserType     string
	Gender       string
	BirthYear    int
	HasBirthYear bool

	Month   time.Month
	Weekday time.Weekday
}

// RowSet is an ordered collection of trips plus the optional-column schema flags.
type RowSet struct {
	City         string
	Filter       Filter
	Trips        []Trip
	HasGender    bool
	HasBirthYear bool
}

// Len returns the number of trips.
func (rs *RowSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.Trips)
}

// ValueCount pairs a categorical value with its occurrence count.
type ValueCount struct {
	Value string
	Count int
}

// TimeStats holds the most frequent times of travel.
type TimeStats struct {
	PopularMonth        time.Month
	PopularMonthCount   int
	PopularWeekday      time.Weekday
	PopularWeekdayCount int
	PopularHour         int
	PopularHourCount    int
	HourCounts          [24]int
}

// StationStats holds the most popular stations and route.
type StationStats struct {
	PopularStart      string
	PopularStartCount int
	PopularEnd        string
	PopularEndCount   int
	PopularRoute      string
	PopularRouteCount int
}

// DurationStats holds total and mean trip duration in seconds.
type DurationStats struct {
	Trips        int
	TotalSeconds float64
	MeanSeconds  float64
}

// GenderBreakdown counts riders per gender value.
type GenderBreakdown struct {
	Counts []ValueCount
}

// BirthYearSummary describes the birth-year column.
type BirthYearSummary struct {
	Earliest        int
	MostRecent      int
	MostCommon      int
	MostCommonCount int
}

// UserStats holds rider demographics. Gender and BirthYear are nil when the
// dataset does not carry the corresponding column.
type UserStats struct {
	TypeCounts []ValueCount
	Gender     *GenderBreakdown
	BirthYear  *BirthYearSummary
}
