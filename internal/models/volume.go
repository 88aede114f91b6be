package models

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch is returned when a grid's buffer does not match its dimensions.
	ErrDimensionMismatch = errors.New("voxel buffer length does not match dimensions")

	// ErrExtentOutOfRange is returned when an extent falls outside the parent slice range.
	ErrExtentOutOfRange = errors.New("extent outside parent slice range")

	// ErrEmptySubVolume is returned when a segment's sub-volume has no voxels
	// along one of its dimensions.
	ErrEmptySubVolume = errors.New("empty sub-volume")
)

// AreaSeries holds one cross-sectional area (mm^2) per slice of the parent volume.
type AreaSeries []float64

// VoxelGrid is a 3D block of scalar intensities stored as a flat buffer.
// Voxels are ordered with x varying fastest, then y, then z, so the voxel
// at (x, y, z) lives at z*nx*ny + y*nx + x.
type VoxelGrid struct {
	// Dims holds the number of voxels along x, y and z
	Dims [3]int

	// Spacing is the physical size of one voxel along x, y and z in mm
	Spacing [3]float64

	// Data is the flat voxel buffer
	Data []float64
}

// NewVoxelGrid allocates a zero-filled grid of the given size and spacing.
func NewVoxelGrid(nx, ny, nz int, spacing [3]float64) *VoxelGrid {
	return &VoxelGrid{
		Dims:    [3]int{nx, ny, nz},
		Spacing: spacing,
		Data:    make([]float64, nx*ny*nz),
	}
}

// Len returns the number of voxels implied by the grid dimensions.
func (g *VoxelGrid) Len() int {
	return g.Dims[0] * g.Dims[1] * g.Dims[2]
}

// Index returns the flat buffer offset of voxel (x, y, z).
func (g *VoxelGrid) Index(x, y, z int) int {
	return z*g.Dims[0]*g.Dims[1] + y*g.Dims[0] + x
}

// At returns the intensity of voxel (x, y, z).
func (g *VoxelGrid) At(x, y, z int) float64 {
	return g.Data[g.Index(x, y, z)]
}

// Set stores v at voxel (x, y, z).
func (g *VoxelGrid) Set(x, y, z int, v float64) {
	g.Data[g.Index(x, y, z)] = v
}

// Validate checks that the dimensions are non-negative and agree with the buffer.
func (g *VoxelGrid) Validate() error {
	for i, n := range g.Dims {
		if n < 0 {
			return fmt.Errorf("dimension %d is negative (%d): %w", i, n, ErrDimensionMismatch)
		}
	}
	if len(g.Data) != g.Len() {
		return fmt.Errorf("have %d voxels, dimensions %dx%dx%d need %d: %w",
			len(g.Data), g.Dims[0], g.Dims[1], g.Dims[2], g.Len(), ErrDimensionMismatch)
	}
	return nil
}

// AxisExtent is the inclusive index range [First, Last] a segment occupies
// along the sweep axis, in the parent volume's slice space.
type AxisExtent struct {
	First int
	Last  int
}

// Len returns the number of slices covered by the extent.
func (e AxisExtent) Len() int {
	return e.Last - e.First + 1
}

// Within reports an error unless the extent lies inside [0, numSlices-1].
func (e AxisExtent) Within(numSlices int) error {
	if e.First < 0 || e.First > e.Last || e.Last >= numSlices {
		return fmt.Errorf("extent [%d, %d] with %d slices: %w", e.First, e.Last, numSlices, ErrExtentOutOfRange)
	}
	return nil
}
