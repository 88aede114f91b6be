package slicearea

import (
	"fmt"

	"sliceareaplot/internal/models"
)

// Plane is one 2D cross-section of a voxel grid, perpendicular to the sweep
// axis. Data is row-major: the voxel at (col, row) lives at row*Width+col.
//
// Axial planes use x as columns and y as rows, Coronal planes x and z, and
// Sagittal planes y and z.
type Plane struct {
	Width  int
	Height int
	Data   []float64
}

// CountForeground returns the number of voxels with intensity > 0.
func (p Plane) CountForeground() int {
	n := 0
	for _, v := range p.Data {
		if v > 0 {
			n++
		}
	}
	return n
}

// PlaneAt gathers the plane at index pos along axis from grid.
func PlaneAt(grid *models.VoxelGrid, axis models.SweepAxis, pos int) (Plane, error) {
	sweep, err := axis.Dim()
	if err != nil {
		return Plane{}, err
	}
	colDim, rowDim, err := axis.PlaneDims()
	if err != nil {
		return Plane{}, err
	}
	if pos < 0 || pos >= grid.Dims[sweep] {
		return Plane{}, fmt.Errorf("%s plane %d outside [0, %d)", axis, pos, grid.Dims[sweep])
	}

	w, h := grid.Dims[colDim], grid.Dims[rowDim]
	plane := Plane{Width: w, Height: h, Data: make([]float64, w*h)}

	// Axial planes are already contiguous in the buffer
	if axis == models.Axial {
		copy(plane.Data, grid.Data[pos*w*h:(pos+1)*w*h])
		return plane, nil
	}

	var coord [3]int
	coord[sweep] = pos
	for row := 0; row < h; row++ {
		coord[rowDim] = row
		for col := 0; col < w; col++ {
			coord[colDim] = col
			plane.Data[row*w+col] = grid.At(coord[0], coord[1], coord[2])
		}
	}
	return plane, nil
}

// Planes reinterprets grid as the ordered sequence of planes along axis.
func Planes(grid *models.VoxelGrid, axis models.SweepAxis) ([]Plane, error) {
	sweep, err := axis.Dim()
	if err != nil {
		return nil, err
	}
	if err := grid.Validate(); err != nil {
		return nil, err
	}

	planes := make([]Plane, grid.Dims[sweep])
	for i := range planes {
		p, err := PlaneAt(grid, axis, i)
		if err != nil {
			return nil, err
		}
		planes[i] = p
	}
	return planes, nil
}
