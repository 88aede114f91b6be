// Package visualization renders the slice planes of a segment labelmap as
// images, so the planes the area computation counts can be inspected.
package visualization

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"sliceareaplot/internal/models"
	"sliceareaplot/pkg/segmentation"
	"sliceareaplot/pkg/slicearea"
)

// Viewer extracts and saves planes of one segment's label sub-volume.
type Viewer struct {
	labelmap *segmentation.Labelmap

	// scale maps voxel values to the 0-1 intensity range
	scale float64
}

// NewViewer creates a viewer for lm. Voxel values are divided by the
// largest value in the sub-volume, so binary masks render as white on black.
func NewViewer(lm *segmentation.Labelmap) *Viewer {
	maxValue := 0.0
	for _, v := range lm.Grid.Data {
		maxValue = math.Max(maxValue, v)
	}
	if maxValue == 0 {
		maxValue = 1
	}
	return &Viewer{labelmap: lm, scale: 1 / maxValue}
}

// ExtractSlice returns plane pos of the sub-volume along axis as a 16-bit
// grayscale image. Columns and rows follow slicearea.PlaneAt.
func (v *Viewer) ExtractSlice(axis models.SweepAxis, pos int) (image.Image, error) {
	plane, err := slicearea.PlaneAt(v.labelmap.Grid, axis, pos)
	if err != nil {
		return nil, err
	}

	img := image.NewGray16(image.Rect(0, 0, plane.Width, plane.Height))
	for row := 0; row < plane.Height; row++ {
		for col := 0; col < plane.Width; col++ {
			value := uint16(math.Max(0, math.Min(65535, plane.Data[row*plane.Width+col]*v.scale*65535)))
			img.SetGray16(col, row, color.Gray16{Y: value})
		}
	}
	return img, nil
}

// SaveSlice saves an extracted slice as a PNG image
func (v *Viewer) SaveSlice(img image.Image, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// SaveSliceSequence extracts and saves every plane along axis. Files are
// numbered by their slice index in the parent volume.
func (v *Viewer) SaveSliceSequence(axis models.SweepAxis, outputDir string) error {
	extent, err := v.labelmap.Extent(axis)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	for pos := 0; pos < extent.Len(); pos++ {
		img, err := v.ExtractSlice(axis, pos)
		if err != nil {
			return err
		}

		filename := filepath.Join(outputDir, fmt.Sprintf("slice_%s_%03d.png", axis, extent.First+pos))
		if err := v.SaveSlice(img, filename); err != nil {
			return err
		}
	}

	return nil
}
