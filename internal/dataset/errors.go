package dataset

import "errors"

var (
	// ErrUnknownCity is returned when a city key is not in the registry.
	ErrUnknownCity = errors.New("unknown city")
	// ErrSourceUnavailable is returned when a dataset source cannot be read.
	ErrSourceUnavailable = errors.New("dataset source unavailable")
	// ErrUnparsableTimestamp is returned when a row's start time cannot be parsed.
	ErrUnparsableTimestamp = errors.New("unparsable start time")
	// ErrMissingColumn is returned when a required column is absent from the source.
	ErrMissingColumn = errors.New("missing required column")
	// ErrInvalidValue is returned when a numeric cell cannot be parsed.
	ErrInvalidValue = errors.New("invalid value")
	// ErrInvalidFilter is returned for month or day text outside the vocabularies.
	ErrInvalidFilter = errors.New("invalid filter")
)
