package aggregate

import (
	"sliceareaplot/internal/models"
	"sliceareaplot/pkg/segmentation"
	"sliceareaplot/pkg/slicearea"
)

// IndexColumn is the name of the shared slice-index column.
const IndexColumn = "Indexes"

// Failure records a segment whose series could not be computed.
type Failure struct {
	Segment segmentation.SegmentInfo
	Err     error
}

// SegmentSeriesSet maps segment IDs to area series that all share one
// slice-index column covering the parent volume.
type SegmentSeriesSet struct {
	Axis      models.SweepAxis
	NumSlices int

	// Index is the shared slice-index column 0..NumSlices-1
	Index []int

	// IDs lists the computed segments in visible-enumeration order
	IDs []string

	Names     map[string]string
	Series    map[string]models.AreaSeries
	Summaries map[string]slicearea.Summary

	// Failures lists segments that were skipped, in enumeration order
	Failures []Failure
}

func newSeriesSet(axis models.SweepAxis, numSlices int) *SegmentSeriesSet {
	index := make([]int, numSlices)
	for i := range index {
		index[i] = i
	}
	return &SegmentSeriesSet{
		Axis:      axis,
		NumSlices: numSlices,
		Index:     index,
		Names:     make(map[string]string),
		Series:    make(map[string]models.AreaSeries),
		Summaries: make(map[string]slicearea.Summary),
	}
}

// Len returns the number of computed segments.
func (s *SegmentSeriesSet) Len() int {
	return len(s.IDs)
}

// Name returns the display name of segment id.
func (s *SegmentSeriesSet) Name(id string) string {
	if n, ok := s.Names[id]; ok && n != "" {
		return n
	}
	return id
}

// Table lays the set out as one index column followed by one column per
// segment. Each row holds the slice index and that slice's areas.
func (s *SegmentSeriesSet) Table() (header []string, rows [][]float64) {
	header = make([]string, 0, len(s.IDs)+1)
	header = append(header, IndexColumn)
	for _, id := range s.IDs {
		header = append(header, s.Name(id))
	}

	rows = make([][]float64, s.NumSlices)
	for i := range rows {
		row := make([]float64, 0, len(s.IDs)+1)
		row = append(row, float64(s.Index[i]))
		for _, id := range s.IDs {
			row = append(row, s.Series[id][i])
		}
		rows[i] = row
	}
	return header, rows
}
