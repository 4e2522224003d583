package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"rotation/types"
)

// WriteValueSeriesCSVFile writes the daily value series to a CSV file.
func WriteValueSeriesCSVFile(path string, series types.ValueSeries) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create values file: %w", err)
	}
	defer f.Close()

	return WriteValueSeriesCSV(f, series)
}

// WriteValueSeriesCSV writes the series to any io.Writer as CSV. Pass
// os.Stdout for debugging, or a file.
func WriteValueSeriesCSV(w io.Writer, series types.ValueSeries) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"date", "value"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := 0; i < series.Len(); i++ {
		record := []string{
			series.Dates[i].Format(time.DateOnly),
			series.Values[i].String(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteWeightsHistoryCSVFile writes the rebalance history to a CSV file, one
// column per symbol.
func WriteWeightsHistoryCSVFile(path string, history types.WeightsHistory) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create weights file: %w", err)
	}
	defer f.Close()

	return WriteWeightsHistoryCSV(f, history)
}

func WriteWeightsHistoryCSV(w io.Writer, history types.WeightsHistory) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if history.Len() == 0 {
		return nil
	}

	symbols := history.Rows[0].Symbols()
	header := append([]string{"date"}, symbols...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := 0; i < history.Len(); i++ {
		record := make([]string, 0, len(symbols)+1)
		record = append(record, history.Dates[i].Format(time.DateOnly))
		for _, symbol := range symbols {
			record = append(record, history.Rows[i][symbol].String())
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
