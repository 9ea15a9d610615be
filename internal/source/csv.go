package source

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ReadCSVFile opens path and parses it as CSV.
func ReadCSVFile(path string) (Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return Table{}, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only dataset.
			_ = cerr
		}
	}()
	return ReadCSV(file)
}

// ReadCSV parses CSV with a header row. All columns load as strings so that
// type conversion stays with the caller. Missing cells come back as "NaN".
// A header with no data rows yields a table without rows.
func ReadCSV(r io.Reader) (Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Table{}, fmt.Errorf("failed to read csv: %w", err)
	}
	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		// gota refuses a header-only file; read the header directly instead.
		if header, ok := headerOnly(data); ok {
			return Table{Columns: header}, nil
		}
		return Table{}, fmt.Errorf("failed to parse csv: %w", df.Err)
	}
	records := df.Records()
	if len(records) == 0 {
		return Table{}, fmt.Errorf("failed to parse csv: no header row")
	}
	return Table{
		Columns: records[0],
		Rows:    records[1:],
	}, nil
}

// headerOnly returns the header when data holds exactly one CSV record.
func headerOnly(data []byte) ([]string, bool) {
	reader := csv.NewReader(bytes.NewReader(data))
	header, err := reader.Read()
	if err != nil || len(header) == 0 {
		return nil, false
	}
	if _, err := reader.Read(); err != io.EOF {
		return nil, false
	}
	return header, true
}
