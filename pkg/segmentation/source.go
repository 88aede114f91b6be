// Package segmentation exposes segment label sub-volumes and extracts the
// per-axis geometry the area computation needs.
package segmentation

import (
	"errors"
	"fmt"

	"sliceareaplot/internal/models"
)

var (
	// ErrNoVisibleSegments reports an empty visible-segment set. It is
	// informational: callers produce an empty result rather than failing.
	ErrNoVisibleSegments = errors.New("no visible segments")

	// ErrSegmentNotFound is returned for an identifier outside the visible set.
	ErrSegmentNotFound = errors.New("no such segment")

	// ErrDuplicateSegment is returned when a segment ID is registered twice.
	ErrDuplicateSegment = errors.New("duplicate segment id")
)

// SegmentInfo identifies a segment and carries its display name.
type SegmentInfo struct {
	ID   string
	Name string
}

// DisplayName returns Name, falling back to ID.
func (s SegmentInfo) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.ID
}

// Labelmap is a segment's binary label sub-volume together with the index
// of its first voxel in the parent volume along x, y and z.
type Labelmap struct {
	Grid   *models.VoxelGrid
	Offset [3]int
}

// Extent returns the inclusive index range the labelmap covers along axis
// in the parent volume.
func (l *Labelmap) Extent(axis models.SweepAxis) (models.AxisExtent, error) {
	dim, err := axis.Dim()
	if err != nil {
		return models.AxisExtent{}, err
	}
	n := l.Grid.Dims[dim]
	if n == 0 {
		return models.AxisExtent{}, fmt.Errorf("no voxels along %s: %w", axis, models.ErrEmptySubVolume)
	}
	return models.AxisExtent{First: l.Offset[dim], Last: l.Offset[dim] + n - 1}, nil
}

// VolumeSource describes the parent volume.
type VolumeSource interface {
	// Dimensions returns the parent volume size along x, y and z
	Dimensions() [3]int
}

// SegmentationSource enumerates visible segments and supplies their labelmaps.
type SegmentationSource interface {
	// VisibleSegments returns the visible segments in display order
	VisibleSegments() []SegmentInfo

	// Labelmap returns the label sub-volume of a segment
	Labelmap(id string) (*Labelmap, error)
}

// NumSlices returns the parent volume's size along axis.
func NumSlices(vol VolumeSource, axis models.SweepAxis) (int, error) {
	dim, err := axis.Dim()
	if err != nil {
		return 0, err
	}
	return vol.Dimensions()[dim], nil
}
