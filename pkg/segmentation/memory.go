package segmentation

import (
	"fmt"

	"sliceareaplot/internal/models"
)

// MemorySource is an in-memory VolumeSource and SegmentationSource.
// Segments are reported in the order they were added.
type MemorySource struct {
	dims      [3]int
	order     []SegmentInfo
	labelmaps map[string]*Labelmap
	hidden    map[string]bool
}

// NewMemorySource creates an empty source for a parent volume of size dims.
func NewMemorySource(dims [3]int) *MemorySource {
	return &MemorySource{
		dims:      dims,
		labelmaps: make(map[string]*Labelmap),
		hidden:    make(map[string]bool),
	}
}

// Add registers a visible segment.
func (m *MemorySource) Add(info SegmentInfo, lm *Labelmap) error {
	if _, ok := m.labelmaps[info.ID]; ok {
		return fmt.Errorf("segment %q: %w", info.ID, ErrDuplicateSegment)
	}
	if lm == nil || lm.Grid == nil {
		return fmt.Errorf("segment %q has no labelmap", info.ID)
	}
	if err := lm.Grid.Validate(); err != nil {
		return fmt.Errorf("segment %q: %w", info.ID, err)
	}
	m.order = append(m.order, info)
	m.labelmaps[info.ID] = lm
	return nil
}

// SetVisible shows or hides a segment.
func (m *MemorySource) SetVisible(id string, visible bool) {
	if visible {
		delete(m.hidden, id)
		return
	}
	m.hidden[id] = true
}

// Dimensions implements VolumeSource.
func (m *MemorySource) Dimensions() [3]int {
	return m.dims
}

// VisibleSegments implements SegmentationSource.
func (m *MemorySource) VisibleSegments() []SegmentInfo {
	visible := make([]SegmentInfo, 0, len(m.order))
	for _, info := range m.order {
		if !m.hidden[info.ID] {
			visible = append(visible, info)
		}
	}
	return visible
}

// Labelmap implements SegmentationSource.
func (m *MemorySource) Labelmap(id string) (*Labelmap, error) {
	lm, ok := m.labelmaps[id]
	if !ok {
		return nil, fmt.Errorf("segment %q: %w", id, ErrSegmentNotFound)
	}
	return lm, nil
}

// LabelSegment maps a label value in a multi-label volume to a segment.
type LabelSegment struct {
	SegmentInfo
	Value float64
}

// FromLabelVolume builds a MemorySource from a full multi-label volume by
// cropping each segment's label value to its bounding box. Segments whose
// label does not occur get an empty labelmap, so they still show up and
// fail individually with models.ErrEmptySubVolume.
func FromLabelVolume(full *models.VoxelGrid, segments []LabelSegment) (*MemorySource, error) {
	if err := full.Validate(); err != nil {
		return nil, err
	}

	src := NewMemorySource(full.Dims)
	for _, seg := range segments {
		lm, err := CropLabel(full, seg.Value)
		if err != nil {
			lm = &Labelmap{Grid: models.NewVoxelGrid(0, 0, 0, full.Spacing)}
		}
		if err := src.Add(seg.SegmentInfo, lm); err != nil {
			return nil, err
		}
	}
	return src, nil
}
