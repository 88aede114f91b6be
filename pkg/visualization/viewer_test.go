package visualization

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"testing"

	"sliceareaplot/internal/models"
	"sliceareaplot/pkg/segmentation"
)

// newTestLabelmap builds a 4x3x2 labelmap where voxel (x, y, z) is set when x <= y+z
func newTestLabelmap() *segmentation.Labelmap {
	grid := models.NewVoxelGrid(4, 3, 2, [3]float64{1, 1, 1})
	for z := 0; z < 2; z++ {
		for y := 0; y < 3; y++ {
			for x := 0; x < 4; x++ {
				if x <= y+z {
					grid.Set(x, y, z, 1)
				}
			}
		}
	}
	return &segmentation.Labelmap{Grid: grid, Offset: [3]int{2, 5, 7}}
}

// TestExtractSlice verifies that planes are extracted with the expected size and values
func TestExtractSlice(t *testing.T) {
	lm := newTestLabelmap()
	viewer := NewViewer(lm)

	tests := []struct {
		axis          models.SweepAxis
		pos           int
		width, height int
		voxel         func(col, row int) (x, y, z int)
	}{
		{models.Axial, 1, 4, 3, func(col, row int) (int, int, int) { return col, row, 1 }},
		{models.Coronal, 2, 4, 2, func(col, row int) (int, int, int) { return col, 2, row }},
		{models.Sagittal, 3, 3, 2, func(col, row int) (int, int, int) { return 3, col, row }},
	}

	for _, tt := range tests {
		t.Run(tt.axis.String(), func(t *testing.T) {
			img, err := viewer.ExtractSlice(tt.axis, tt.pos)
			if err != nil {
				t.Fatalf("Failed to extract slice: %v", err)
			}

			bounds := img.Bounds()
			if bounds.Dx() != tt.width || bounds.Dy() != tt.height {
				t.Fatalf("Expected %dx%d slice, got %dx%d", tt.width, tt.height, bounds.Dx(), bounds.Dy())
			}

			gray, ok := img.(*image.Gray16)
			if !ok {
				t.Fatalf("Expected *image.Gray16, got %T", img)
			}
			for row := 0; row < tt.height; row++ {
				for col := 0; col < tt.width; col++ {
					x, y, z := tt.voxel(col, row)
					want := uint16(0)
					if lm.Grid.At(x, y, z) > 0 {
						want = 65535
					}
					if got := gray.Gray16At(col, row).Y; got != want {
						t.Errorf("pixel (%d,%d): expected %d, got %d", col, row, want, got)
					}
				}
			}
		})
	}

	if _, err := viewer.ExtractSlice(models.SweepAxis(8), 0); err == nil {
		t.Error("Expected error for invalid axis, got nil")
	}
	if _, err := viewer.ExtractSlice(models.Axial, 2); err == nil {
		t.Error("Expected error for out of bounds position, got nil")
	}
}

// TestSaveSliceSequence verifies that one file per plane is written, named by parent slice index
func TestSaveSliceSequence(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping file I/O test in short mode")
	}

	tempDir := t.TempDir()
	viewer := NewViewer(newTestLabelmap())

	outputDir := filepath.Join(tempDir, "slices")
	if err := viewer.SaveSliceSequence(models.Coronal, outputDir); err != nil {
		t.Fatalf("Failed to save slice sequence: %v", err)
	}

	for y := 5; y <= 7; y++ {
		filename := filepath.Join(outputDir, fmt.Sprintf("slice_coronal_%03d.png", y))
		if _, err := os.Stat(filename); os.IsNotExist(err) {
			t.Errorf("Expected slice file does not exist: %s", filename)
		}
	}

	if err := viewer.SaveSliceSequence(models.SweepAxis(8), outputDir); err == nil {
		t.Error("Expected error for invalid axis, got nil")
	}
}
