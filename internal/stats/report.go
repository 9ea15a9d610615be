package stats

import (
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/bikeshare/internal/model"
)

// Result holds one computed statistic bundle, its error, and how long it took.
type Result[T any] struct {
	Value   T
	Err     error
	Elapsed time.Duration
}

// Report contains the four statistic bundles for a row-set.
type Report struct {
	City     string
	Filter   model.Filter
	Trips    int
	Time     Result[model.TimeStats]
	Stations Result[model.StationStats]
	Duration Result[model.DurationStats]
	Users    Result[model.UserStats]
}

// BuildReport computes every bundle for rs. An error in one bundle does not
// prevent the others. With parallel set, bundles are computed concurrently;
// rs is only read.
func BuildReport(rs *model.RowSet, parallel bool) Report {
	report := Report{
		City:   rs.City,
		Filter: rs.Filter,
		Trips:  rs.Len(),
	}
	tasks := []func(){
		func() { report.Time = timed(rs, ComputeTimeStats) },
		func() { report.Stations = timed(rs, ComputeStationStats) },
		func() { report.Duration = timed(rs, ComputeDurationStats) },
		func() { report.Users = timed(rs, ComputeUserStats) },
	}
	if !parallel {
		for _, task := range tasks {
			task()
		}
		return report
	}
	var g errgroup.Group
	for _, task := range tasks {
		g.Go(func() error {
			task()
			return nil
		})
	}
	_ = g.Wait()
	return report
}

func timed[T any](rs *model.RowSet, compute func(*model.RowSet) (T, error)) Result[T] {
	start := time.Now()
	value, err := compute(rs)
	return Result[T]{Value: value, Err: err, Elapsed: time.Since(start)}
}
