package segmentation

import (
	"fmt"

	"sliceareaplot/internal/models"
)

// Extraction is everything the area computation needs for one segment.
type Extraction struct {
	Segment SegmentInfo

	// Grid is the segment's label sub-volume
	Grid *models.VoxelGrid

	// Extent is the sub-volume's slice range along the sweep axis
	Extent models.AxisExtent

	// InPlaneSpacing holds the spacing of the two dimensions spanning a
	// slice plane, in plane column/row order
	InPlaneSpacing [2]float64

	// SweepSpacing is the spacing along the sweep axis
	SweepSpacing float64
}

// Extractor reads segment geometry from a SegmentationSource. It has no side
// effects on the source.
type Extractor struct{}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the sub-volume, sweep extent and spacing of segment id.
func (e *Extractor) Extract(src SegmentationSource, id string, axis models.SweepAxis) (*Extraction, error) {
	sweep, err := axis.Dim()
	if err != nil {
		return nil, err
	}
	colDim, rowDim, err := axis.PlaneDims()
	if err != nil {
		return nil, err
	}

	visible := src.VisibleSegments()
	if len(visible) == 0 {
		return nil, ErrNoVisibleSegments
	}

	var (
		info  SegmentInfo
		found bool
	)
	for _, s := range visible {
		if s.ID == id {
			info, found = s, true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("segment %q: %w", id, ErrSegmentNotFound)
	}

	lm, err := src.Labelmap(id)
	if err != nil {
		return nil, err
	}
	if lm == nil || lm.Grid == nil {
		return nil, fmt.Errorf("segment %q: %w", id, ErrSegmentNotFound)
	}

	extent, err := lm.Extent(axis)
	if err != nil {
		return nil, fmt.Errorf("segment %q: %w", id, err)
	}

	sp := lm.Grid.Spacing
	return &Extraction{
		Segment:        info,
		Grid:           lm.Grid,
		Extent:         extent,
		InPlaneSpacing: [2]float64{sp[colDim], sp[rowDim]},
		SweepSpacing:   sp[sweep],
	}, nil
}
