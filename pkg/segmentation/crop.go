package segmentation

import (
	"fmt"

	"sliceareaplot/internal/models"
)

// CropLabel extracts the voxels of full equal to label as a binary labelmap
// restricted to their bounding box. Foreground voxels are 1, all others 0.
func CropLabel(full *models.VoxelGrid, label float64) (*Labelmap, error) {
	if err := full.Validate(); err != nil {
		return nil, err
	}

	nx, ny, nz := full.Dims[0], full.Dims[1], full.Dims[2]
	lo := [3]int{nx, ny, nz}
	hi := [3]int{-1, -1, -1}

	for z := 0; z < nz; z++ {
		for y := 0; y < ny; y++ {
			for x := 0; x < nx; x++ {
				if full.At(x, y, z) != label {
					continue
				}
				p := [3]int{x, y, z}
				for i := range p {
					lo[i] = min(lo[i], p[i])
					hi[i] = max(hi[i], p[i])
				}
			}
		}
	}

	if hi[0] < 0 {
		return nil, fmt.Errorf("label %g not present: %w", label, models.ErrEmptySubVolume)
	}

	sub := models.NewVoxelGrid(hi[0]-lo[0]+1, hi[1]-lo[1]+1, hi[2]-lo[2]+1, full.Spacing)
	for z := 0; z < sub.Dims[2]; z++ {
		for y := 0; y < sub.Dims[1]; y++ {
			for x := 0; x < sub.Dims[0]; x++ {
				if full.At(lo[0]+x, lo[1]+y, lo[2]+z) == label {
					sub.Set(x, y, z, 1)
				}
			}
		}
	}

	return &Labelmap{Grid: sub, Offset: lo}, nil
}
