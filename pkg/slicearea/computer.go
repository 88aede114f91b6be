// Package slicearea turns a segment's label sub-volume into a per-slice
// cross-sectional area series spanning the whole parent volume.
package slicearea

import (
	"errors"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"

	"sliceareaplot/internal/models"
)

var (
	// ErrExtentMismatch is returned when an extent's length differs from the
	// sub-volume's size along the sweep axis.
	ErrExtentMismatch = errors.New("extent does not match sub-volume")

	// ErrInvalidSpacing is returned for non-positive in-plane spacing.
	ErrInvalidSpacing = errors.New("in-plane spacing must be positive")

	// ErrInvalidPadding is returned for an unknown padding mode name.
	ErrInvalidPadding = errors.New("invalid padding mode")
)

// PaddingMode controls how a segment's own area values are placed inside
// the full-length series.
type PaddingMode int

const (
	// PadLegacy prepends first-1 zeros and appends numSlices-last zeros, so
	// values land at first-1..last-1. This treats the first index as if it
	// were 1-based; a first index of 0 gets no front padding and the tail is
	// extended to keep the series length at numSlices.
	PadLegacy PaddingMode = iota

	// PadAligned places values at first..last.
	PadAligned
)

// ParsePaddingMode maps "legacy" or "aligned" to a PaddingMode.
func ParsePaddingMode(s string) (PaddingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "legacy":
		return PadLegacy, nil
	case "aligned":
		return PadAligned, nil
	default:
		return 0, fmt.Errorf("%q (must be legacy or aligned): %w", s, ErrInvalidPadding)
	}
}

func (m PaddingMode) String() string {
	switch m {
	case PadLegacy:
		return "legacy"
	case PadAligned:
		return "aligned"
	default:
		return fmt.Sprintf("PaddingMode(%d)", int(m))
	}
}

// Computer computes area series for segment sub-volumes. It holds no state
// besides its configuration and is safe for concurrent use.
type Computer struct {
	Padding PaddingMode
}

// NewComputer returns a Computer using the given padding mode.
func NewComputer(padding PaddingMode) *Computer {
	return &Computer{Padding: padding}
}

// Compute returns the area series of grid along axis, zero-padded to
// numSlices entries.
//
// Parameters:
//   - grid: the segment sub-volume; voxels > 0 are foreground
//   - extent: the slices the sub-volume covers in the parent volume
//   - inPlane: voxel spacing along the two in-plane dimensions (mm)
//   - axis: the sweep axis
//   - numSlices: the parent volume's size along axis
func (c *Computer) Compute(grid *models.VoxelGrid, extent models.AxisExtent, inPlane [2]float64, axis models.SweepAxis, numSlices int) (models.AreaSeries, error) {
	areas, err := c.SegmentAreas(grid, inPlane, axis)
	if err != nil {
		return nil, err
	}
	return Embed(areas, extent, numSlices, c.Padding)
}

// SegmentAreas returns one area per plane of grid along axis, covering only
// the sub-volume's own extent.
func (c *Computer) SegmentAreas(grid *models.VoxelGrid, inPlane [2]float64, axis models.SweepAxis) ([]float64, error) {
	colDim, rowDim, err := axis.PlaneDims()
	if err != nil {
		return nil, err
	}
	if grid.Dims[colDim] == 0 || grid.Dims[rowDim] == 0 {
		return nil, fmt.Errorf("%s plane is %dx%d: %w", axis, grid.Dims[colDim], grid.Dims[rowDim], models.ErrEmptySubVolume)
	}
	if inPlane[0] <= 0 || inPlane[1] <= 0 {
		return nil, fmt.Errorf("spacing %gx%g: %w", inPlane[0], inPlane[1], ErrInvalidSpacing)
	}

	planes, err := Planes(grid, axis)
	if err != nil {
		return nil, err
	}

	areas := make([]float64, len(planes))
	for i, p := range planes {
		areas[i] = float64(p.CountForeground())
	}
	floats.Scale(inPlane[0]*inPlane[1], areas)
	return areas, nil
}

// Embed places a segment's per-slice areas into a zero series of length
// numSlices according to mode.
func Embed(areas []float64, extent models.AxisExtent, numSlices int, mode PaddingMode) (models.AreaSeries, error) {
	if err := extent.Within(numSlices); err != nil {
		return nil, err
	}
	if extent.Len() != len(areas) {
		return nil, fmt.Errorf("extent [%d, %d] covers %d slices, sub-volume has %d: %w",
			extent.First, extent.Last, extent.Len(), len(areas), ErrExtentMismatch)
	}

	var front int
	switch mode {
	case PadLegacy:
		front = extent.First - 1
		if front < 0 {
			front = 0
		}
	case PadAligned:
		front = extent.First
	default:
		return nil, fmt.Errorf("%v: %w", mode, ErrInvalidPadding)
	}

	series := make(models.AreaSeries, numSlices)
	copy(series[front:], areas)
	return series, nil
}
