// Package stats computes and renders trip statistics.
package stats

import (
	"errors"
	"fmt"
	"time"

	"github.com/verte-zerg/bikeshare/internal/model"
)

// RouteSeparator joins start and end station names into a route key.
const RouteSeparator = " -> "

// ErrNoData is returned when an aggregate is requested over zero rows.
var ErrNoData = errors.New("no data")

func requireRows(rs *model.RowSet, what string) error {
	if rs.Len() == 0 {
		return fmt.Errorf("%w: %s needs at least one trip", ErrNoData, what)
	}
	return nil
}

// ComputeTimeStats returns the most common month, weekday, and start hour.
func ComputeTimeStats(rs *model.RowSet) (model.TimeStats, error) {
	if err := requireRows(rs, "time stats"); err != nil {
		return model.TimeStats{}, err
	}
	months := newCounter[time.Month]()
	weekdays := newCounter[time.Weekday]()
	hours := newCounter[int]()
	var out model.TimeStats
	for _, trip := range rs.Trips {
		hour := trip.StartTime.Hour()
		months.add(trip.Month)
		weekdays.add(trip.Weekday)
		hours.add(hour)
		out.HourCounts[hour]++
	}
	out.PopularMonth, out.PopularMonthCount = months.mode()
	out.PopularWeekday, out.PopularWeekdayCount = weekdays.mode()
	out.PopularHour, out.PopularHourCount = hours.mode()
	return out, nil
}

// ComputeStationStats returns the most common start station, end station, and route.
func ComputeStationStats(rs *model.RowSet) (model.StationStats, error) {
	if err := requireRows(rs, "station stats"); err != nil {
		return model.StationStats{}, err
	}
	starts := newCounter[string]()
	ends := newCounter[string]()
	routes := newCounter[string]()
	for _, trip := range rs.Trips {
		if trip.StartStation != "" {
			starts.add(trip.StartStation)
		}
		if trip.EndStation != "" {
			ends.add(trip.EndStation)
		}
		// A route needs both ends.
		if trip.StartStation != "" && trip.EndStation != "" {
			routes.add(trip.StartStation + RouteSeparator + trip.EndStation)
		}
	}
	var out model.StationStats
	out.PopularStart, out.PopularStartCount = starts.mode()
	out.PopularEnd, out.PopularEndCount = ends.mode()
	out.PopularRoute, out.PopularRouteCount = routes.mode()
	return out, nil
}

// ComputeDurationStats returns total and mean trip duration in seconds.
func ComputeDurationStats(rs *model.RowSet) (model.DurationStats, error) {
	if err := requireRows(rs, "duration stats"); err != nil {
		return model.DurationStats{}, err
	}
	var total float64
	for _, trip := range rs.Trips {
		total += trip.Duration
	}
	return model.DurationStats{
		Trips:        len(rs.Trips),
		TotalSeconds: total,
		MeanSeconds:  total / float64(len(rs.Trips)),
	}, nil
}

// ComputeUserStats returns user-type counts plus gender counts and a birth-year
// summary when the dataset carries those columns. Missing cells are skipped.
func ComputeUserStats(rs *model.RowSet) (model.UserStats, error) {
	if err := requireRows(rs, "user stats"); err != nil {
		return model.UserStats{}, err
	}
	types := newCounter[string]()
	genders := newCounter[string]()
	years := newCounter[int]()
	earliest, latest := 0, 0
	for _, trip := range rs.Trips {
		if trip.UserType != "" {
			types.add(trip.UserType)
		}
		if rs.HasGender && trip.Gender != "" {
			genders.add(trip.Gender)
		}
		if rs.HasBirthYear && trip.HasBirthYear {
			if years.empty() || trip.BirthYear < earliest {
				earliest = trip.BirthYear
			}
			if years.empty() || trip.BirthYear > latest {
				latest = trip.BirthYear
			}
			years.add(trip.BirthYear)
		}
	}

	out := model.UserStats{TypeCounts: valueCounts(types)}
	if rs.HasGender {
		out.Gender = &model.GenderBreakdown{Counts: valueCounts(genders)}
	}
	if rs.HasBirthYear && !years.empty() {
		common, commonCount := years.mode()
		out.BirthYear = &model.BirthYearSummary{
			Earliest:        earliest,
			MostRecent:      latest,
			MostCommon:      common,
			MostCommonCount: commonCount,
		}
	}
	return out, nil
}
