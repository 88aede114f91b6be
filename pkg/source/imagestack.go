// Package source loads segmentations from directories of 2D mask images.
//
// Each sub-directory of the root is one segment and holds one mask image
// per axial slice of the parent volume. Slice files are ordered by the
// number embedded in their names, so slice_2.png sorts before slice_10.png.
package source

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"sliceareaplot/internal/models"
	"sliceareaplot/internal/monitoring"
	"sliceareaplot/pkg/segmentation"
)

// ErrNoSlices is returned when a segment directory holds no mask images.
var ErrNoSlices = errors.New("no mask images found")

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".bmp": true, ".tif": true, ".tiff": true,
}

// Options controls how an image stack is interpreted.
type Options struct {
	// Spacing is the voxel size along x, y and z in mm
	Spacing [3]float64

	// Threshold is the normalised intensity above which a pixel is foreground
	Threshold float64

	// Segments fixes the segment order; empty means all sub-directories in
	// lexical order
	Segments []string
}

// LoadDir reads every segment under root into a MemorySource. All masks
// must share the same width, height and slice count, which become the
// parent volume's dimensions.
func LoadDir(root string, opts Options) (*segmentation.MemorySource, error) {
	names := opts.Segments
	if len(names) == 0 {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)
	}

	var (
		src  *segmentation.MemorySource
		dims [3]int
	)
	for _, name := range names {
		mask, err := loadMask(filepath.Join(root, name), opts)
		if err != nil {
			return nil, fmt.Errorf("segment %s: %w", name, err)
		}

		if src == nil {
			dims = mask.Dims
			src = segmentation.NewMemorySource(dims)
		} else if mask.Dims != dims {
			return nil, fmt.Errorf("segment %s is %v, expected %v: %w", name, mask.Dims, dims, models.ErrDimensionMismatch)
		}

		lm, err := segmentation.CropLabel(mask, 1)
		if errors.Is(err, models.ErrEmptySubVolume) {
			monitoring.Logf("segment %s has no foreground voxels", name)
			lm = &segmentation.Labelmap{Grid: models.NewVoxelGrid(0, 0, 0, opts.Spacing)}
		} else if err != nil {
			return nil, fmt.Errorf("segment %s: %w", name, err)
		}

		if err := src.Add(segmentation.SegmentInfo{ID: name, Name: name}, lm); err != nil {
			return nil, err
		}
	}

	if src == nil {
		return segmentation.NewMemorySource(dims), nil
	}
	return src, nil
}

// loadMask stacks the mask images of one segment directory into a binary
// grid, one axial slice per image.
func loadMask(dir string, opts Options) (*models.VoxelGrid, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var imageFiles []string
	for _, f := range files {
		if !f.IsDir() && imageExts[strings.ToLower(filepath.Ext(f.Name()))] {
			imageFiles = append(imageFiles, f.Name())
		}
	}
	if len(imageFiles) == 0 {
		return nil, ErrNoSlices
	}

	sort.SliceStable(imageFiles, func(i, j int) bool {
		return extractNumber(imageFiles[i]) < extractNumber(imageFiles[j])
	})

	var grid *models.VoxelGrid
	for z, filename := range imageFiles {
		img, err := loadImage(filepath.Join(dir, filename))
		if err != nil {
			return nil, fmt.Errorf("failed to load image %s: %w", filename, err)
		}

		b := img.Bounds()
		if grid == nil {
			grid = models.NewVoxelGrid(b.Dx(), b.Dy(), len(imageFiles), opts.Spacing)
		} else if b.Dx() != grid.Dims[0] || b.Dy() != grid.Dims[1] {
			return nil, fmt.Errorf("image %s is %dx%d, expected %dx%d: %w",
				filename, b.Dx(), b.Dy(), grid.Dims[0], grid.Dims[1], models.ErrDimensionMismatch)
		}

		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				r, _, _, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
				if float64(r)/65535.0 > opts.Threshold {
					grid.Set(x, y, z, 1)
				}
			}
		}
	}

	return grid, nil
}

// loadImage decodes any registered image format from path
func loadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// extractNumber extracts the numeric part from a filename
func extractNumber(filename string) int {
	base := filepath.Base(filename)
	numStr := ""
	for _, c := range base {
		if c >= '0' && c <= '9' {
			numStr += string(c)
		}
	}

	if numStr != "" {
		num, err := strconv.Atoi(numStr)
		if err == nil {
			return num
		}
	}
	return 0
}
