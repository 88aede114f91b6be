package segmentation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sliceareaplot/internal/models"
)

func TestCropLabel(t *testing.T) {
	full := models.NewVoxelGrid(5, 4, 6, [3]float64{1, 2, 3})
	full.Set(1, 2, 3, 2)
	full.Set(3, 2, 4, 2)
	full.Set(2, 1, 4, 5)

	lm, err := CropLabel(full, 2)
	require.NoError(t, err)

	assert.Equal(t, [3]int{1, 2, 3}, lm.Offset)
	assert.Equal(t, [3]int{3, 1, 2}, lm.Grid.Dims)
	assert.Equal(t, full.Spacing, lm.Grid.Spacing)
	assert.Equal(t, 1.0, lm.Grid.At(0, 0, 0))
	assert.Equal(t, 1.0, lm.Grid.At(2, 0, 1))
	assert.Equal(t, 0.0, lm.Grid.At(1, 0, 1))

	extent, err := lm.Extent(models.Axial)
	require.NoError(t, err)
	assert.Equal(t, models.AxisExtent{First: 3, Last: 4}, extent)
}

func TestCropLabelMissing(t *testing.T) {
	full := models.NewVoxelGrid(2, 2, 2, [3]float64{1, 1, 1})
	_, err := CropLabel(full, 7)
	assert.ErrorIs(t, err, models.ErrEmptySubVolume)
}

func TestFromLabelVolume(t *testing.T) {
	full := models.NewVoxelGrid(4, 4, 4, [3]float64{1, 1, 1})
	full.Set(0, 0, 1, 1)
	full.Set(3, 3, 2, 2)

	src, err := FromLabelVolume(full, []LabelSegment{
		{SegmentInfo: SegmentInfo{ID: "b", Name: "Bone"}, Value: 2},
		{SegmentInfo: SegmentInfo{ID: "a", Name: "Air"}, Value: 1},
		{SegmentInfo: SegmentInfo{ID: "z", Name: "Absent"}, Value: 9},
	})
	require.NoError(t, err)
	assert.Equal(t, [3]int{4, 4, 4}, src.Dimensions())

	visible := src.VisibleSegments()
	require.Len(t, visible, 3)
	assert.Equal(t, "b", visible[0].ID)
	assert.Equal(t, "a", visible[1].ID)

	lm, err := src.Labelmap("b")
	require.NoError(t, err)
	assert.Equal(t, [3]int{3, 3, 2}, lm.Offset)

	_, err = NewExtractor().Extract(src, "z", models.Axial)
	assert.ErrorIs(t, err, models.ErrEmptySubVolume)
}
