package slicearea

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"sliceareaplot/internal/models"
)

// Summary condenses an area series into a few scalar measurements.
type Summary struct {
	// PeakArea is the largest cross-section in mm^2
	PeakArea float64

	// PeakIndex is the slice holding PeakArea, or -1 for an empty series
	PeakIndex int

	// MeanArea is the mean over slices with non-zero area
	MeanArea float64

	// OccupiedSlices counts slices with non-zero area
	OccupiedSlices int

	// Volume estimates the segment volume in mm^3 as the sum of areas times
	// the spacing along the sweep axis
	Volume float64
}

// Summarize computes a Summary for series given the slice spacing along the
// sweep axis.
func Summarize(series models.AreaSeries, sweepSpacing float64) Summary {
	if len(series) == 0 {
		return Summary{PeakIndex: -1}
	}

	idx := floats.MaxIdx(series)
	s := Summary{
		PeakArea:  series[idx],
		PeakIndex: idx,
		Volume:    floats.Sum(series) * sweepSpacing,
	}

	occupied := make([]float64, 0, len(series))
	for _, a := range series {
		if a > 0 {
			occupied = append(occupied, a)
		}
	}
	s.OccupiedSlices = len(occupied)
	if len(occupied) > 0 {
		s.MeanArea = stat.Mean(occupied, nil)
	}
	return s
}
