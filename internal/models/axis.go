package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidAxis is returned for any sweep axis other than the three orthogonal ones.
var ErrInvalidAxis = errors.New("invalid sweep axis")

// SweepAxis selects the volume dimension that indexes slices.
type SweepAxis int

const (
	// Axial sweeps along z; planes span x and y
	Axial SweepAxis = iota
	// Coronal sweeps along y; planes span x and z
	Coronal
	// Sagittal sweeps along x; planes span y and z
	Sagittal
)

// ParseSweepAxis maps a name (axial, coronal, sagittal) or the matching
// axis letter (z, y, x) to a SweepAxis.
func ParseSweepAxis(s string) (SweepAxis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "axial", "z":
		return Axial, nil
	case "coronal", "y":
		return Coronal, nil
	case "sagittal", "x":
		return Sagittal, nil
	default:
		return 0, fmt.Errorf("%q (must be axial, coronal or sagittal): %w", s, ErrInvalidAxis)
	}
}

func (a SweepAxis) String() string {
	switch a {
	case Axial:
		return "axial"
	case Coronal:
		return "coronal"
	case Sagittal:
		return "sagittal"
	default:
		return fmt.Sprintf("SweepAxis(%d)", int(a))
	}
}

// Valid reports whether a is one of the three supported axes.
func (a SweepAxis) Valid() bool {
	return a == Axial || a == Coronal || a == Sagittal
}

// Dim returns the grid dimension (0=x, 1=y, 2=z) that indexes slices.
func (a SweepAxis) Dim() (int, error) {
	switch a {
	case Axial:
		return 2, nil
	case Coronal:
		return 1, nil
	case Sagittal:
		return 0, nil
	default:
		return 0, fmt.Errorf("%v: %w", a, ErrInvalidAxis)
	}
}

// PlaneDims returns the two grid dimensions spanning a slice plane, in the
// order they appear as plane columns and rows.
func (a SweepAxis) PlaneDims() (col, row int, err error) {
	switch a {
	case Axial:
		return 0, 1, nil
	case Coronal:
		return 0, 2, nil
	case Sagittal:
		return 1, 2, nil
	default:
		return 0, 0, fmt.Errorf("%v: %w", a, ErrInvalidAxis)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a SweepAxis) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%v: %w", a, ErrInvalidAxis)
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *SweepAxis) UnmarshalText(text []byte) error {
	parsed, err := ParseSweepAxis(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
