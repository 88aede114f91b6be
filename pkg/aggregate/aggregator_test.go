package aggregate

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sliceareaplot/internal/models"
	"sliceareaplot/internal/monitoring"
	"sliceareaplot/pkg/segmentation"
	"sliceareaplot/pkg/slicearea"
)

// block returns a labelmap of the given size, fully set, at offset
func block(nx, ny, nz int, spacing [3]float64, offset [3]int) *segmentation.Labelmap {
	g := models.NewVoxelGrid(nx, ny, nz, spacing)
	for i := range g.Data {
		g.Data[i] = 1
	}
	return &segmentation.Labelmap{Grid: g, Offset: offset}
}

func scenarioSource(t *testing.T) *segmentation.MemorySource {
	t.Helper()

	src := segmentation.NewMemorySource([3]int{4, 4, 10})
	require.NoError(t, src.Add(segmentation.SegmentInfo{ID: "Segment_2", Name: "Ventricle"}, block(1, 1, 3, [3]float64{2, 2, 1}, [3]int{1, 1, 3})))
	require.NoError(t, src.Add(segmentation.SegmentInfo{ID: "Segment_1", Name: "Atrium"}, block(2, 2, 10, [3]float64{1, 1, 1}, [3]int{0, 0, 0})))
	return src
}

func TestRunLegacyScenario(t *testing.T) {
	src := scenarioSource(t)
	agg := NewAggregator(slicearea.NewComputer(slicearea.PadLegacy), 1)

	set, err := agg.Run(src, src, models.Axial)
	require.NoError(t, err)
	require.Empty(t, set.Failures)

	assert.Equal(t, 10, set.NumSlices)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, set.Index)
	assert.Equal(t, []string{"Segment_2", "Segment_1"}, set.IDs, "order follows the visible enumeration")

	want := models.AreaSeries{0, 0, 4, 4, 4, 0, 0, 0, 0, 0}
	if diff := cmp.Diff(want, set.Series["Segment_2"]); diff != "" {
		t.Errorf("Segment_2 series mismatch (-want +got):\n%s", diff)
	}

	full := set.Series["Segment_1"]
	require.Len(t, full, 10)
	for i, v := range full {
		assert.Equal(t, 4.0, v, "slice %d", i)
	}

	s := set.Summaries["Segment_2"]
	assert.Equal(t, 3, s.OccupiedSlices)
	assert.InDelta(t, 12.0, s.Volume, 1e-12)
}

func TestRunEmptyVisibleSet(t *testing.T) {
	var logged []string
	monitoring.SetLogger(func(format string, v ...interface{}) {
		logged = append(logged, fmt.Sprintf(format, v...))
	})
	defer monitoring.ResetLogger()

	src := segmentation.NewMemorySource([3]int{4, 4, 6})
	set, err := NewAggregator(slicearea.NewComputer(slicearea.PadLegacy), 1).Run(src, src, models.Axial)
	require.NoError(t, err)

	assert.Equal(t, 0, set.Len())
	assert.Empty(t, set.Series)
	assert.Len(t, set.Index, 6)
	require.Len(t, logged, 1)
	assert.True(t, strings.Contains(logged[0], segmentation.ErrNoVisibleSegments.Error()))
}

func TestRunRecordsSegmentFailures(t *testing.T) {
	monitoring.SetLogger(nil)
	defer monitoring.ResetLogger()

	src := scenarioSource(t)
	require.NoError(t, src.Add(segmentation.SegmentInfo{ID: "empty"}, &segmentation.Labelmap{Grid: models.NewVoxelGrid(0, 0, 0, [3]float64{1, 1, 1})}))
	// extends past the parent volume along z
	require.NoError(t, src.Add(segmentation.SegmentInfo{ID: "overflow"}, block(1, 1, 4, [3]float64{1, 1, 1}, [3]int{0, 0, 8})))

	set, err := NewAggregator(slicearea.NewComputer(slicearea.PadAligned), 1).Run(src, src, models.Axial)
	require.NoError(t, err)

	assert.Equal(t, []string{"Segment_2", "Segment_1"}, set.IDs)
	require.Len(t, set.Failures, 2)
	assert.Equal(t, "empty", set.Failures[0].Segment.ID)
	assert.ErrorIs(t, set.Failures[0].Err, models.ErrEmptySubVolume)
	assert.Equal(t, "overflow", set.Failures[1].Segment.ID)
	assert.ErrorIs(t, set.Failures[1].Err, models.ErrExtentOutOfRange)
}

func TestRunInvalidAxisAbortsBatch(t *testing.T) {
	src := scenarioSource(t)
	set, err := NewAggregator(slicearea.NewComputer(slicearea.PadLegacy), 1).Run(src, src, models.SweepAxis(9))
	assert.ErrorIs(t, err, models.ErrInvalidAxis)
	assert.Nil(t, set)
}

func TestRunParallelMatchesSequential(t *testing.T) {
	src := segmentation.NewMemorySource([3]int{12, 12, 12})
	for i := 0; i < 8; i++ {
		lm := block(1+i%3, 2, 1+i, [3]float64{0.5, 0.25 * float64(i+1), 1}, [3]int{i, i % 4, 12 - (1 + i)})
		require.NoError(t, src.Add(segmentation.SegmentInfo{ID: fmt.Sprintf("Segment_%d", i)}, lm))
	}

	computer := slicearea.NewComputer(slicearea.PadAligned)
	for _, axis := range []models.SweepAxis{models.Axial, models.Coronal, models.Sagittal} {
		seq, err := NewAggregator(computer, 1).Run(src, src, axis)
		require.NoError(t, err)
		par, err := NewAggregator(computer, 4).Run(src, src, axis)
		require.NoError(t, err)

		assert.Equal(t, seq.IDs, par.IDs, axis.String())
		if diff := cmp.Diff(seq.Series, par.Series); diff != "" {
			t.Errorf("%v: parallel series differ (-seq +par):\n%s", axis, diff)
		}
	}
}

func TestRunSeriesAreIndependent(t *testing.T) {
	src := scenarioSource(t)
	set, err := NewAggregator(slicearea.NewComputer(slicearea.PadLegacy), 1).Run(src, src, models.Axial)
	require.NoError(t, err)

	set.Series["Segment_1"][2] = -1
	assert.Equal(t, 4.0, set.Series["Segment_2"][2])

	again, err := NewAggregator(slicearea.NewComputer(slicearea.PadLegacy), 1).Run(src, src, models.Axial)
	require.NoError(t, err)
	assert.Equal(t, 4.0, again.Series["Segment_1"][2])
}

func TestTable(t *testing.T) {
	src := scenarioSource(t)
	set, err := NewAggregator(slicearea.NewComputer(slicearea.PadLegacy), 1).Run(src, src, models.Axial)
	require.NoError(t, err)

	header, rows := set.Table()
	assert.Equal(t, []string{IndexColumn, "Ventricle", "Atrium"}, header)
	require.Len(t, rows, 10)
	assert.Equal(t, []float64{2, 4, 4}, rows[2])
	assert.Equal(t, []float64{9, 0, 4}, rows[9])
}
