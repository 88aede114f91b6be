// Package export writes segment area series as a CSV table, a PNG chart or
// an interactive HTML chart.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"sliceareaplot/pkg/aggregate"
)

// WriteCSV writes the series set as a table with one index column and one
// area column per segment.
func WriteCSV(w io.Writer, set *aggregate.SegmentSeriesSet) error {
	header, rows := set.Table()

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	record := make([]string, len(header))
	for _, row := range rows {
		record[0] = strconv.Itoa(int(row[0]))
		for i, v := range row[1:] {
			record[i+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", int(row[0]), err)
		}
	}

	cw.Flush()
	return cw.Error()
}
