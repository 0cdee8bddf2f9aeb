/*
Package grid implements the square sprite sheet layout.

N equally sized cells are placed on the smallest square grid that can hold
them, left to right and top to bottom. A grid with side s holds s*s cells so
up to s*s-N cells at the end are left fully transparent.
*/
package grid

import (
	"image"
	"math"
)

// Spec describes the geometry of a sprite sheet.
type Spec struct {
	Count      int // Number of filled cells
	Side       int // Number of cells along each edge
	CellWidth  int
	CellHeight int
}

// NewSpec returns the smallest square grid that holds count cells of the
// given size.
func NewSpec(count, cellWidth, cellHeight int) Spec {
	side := int(math.Ceil(math.Sqrt(float64(count))))
	// Correct for float rounding with very large counts
	for side*side < count {
		side++
	}
	for side > 1 && (side-1)*(side-1) >= count {
		side--
	}
	return Spec{
		Count:      count,
		Side:       side,
		CellWidth:  cellWidth,
		CellHeight: cellHeight,
	}
}

// Width returns the width of the sheet in pixels.
func (s Spec) Width() int {
	return s.Side * s.CellWidth
}

// Height returns the height of the sheet in pixels.
func (s Spec) Height() int {
	return s.Side * s.CellHeight
}

// Bounds returns the rectangle covering the whole sheet.
func (s Spec) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.Width(), s.Height())
}

// Cell returns the rectangle occupied by the cell at index i.
func (s Spec) Cell(i int) image.Rectangle {
	x := (i % s.Side) * s.CellWidth
	y := (i / s.Side) * s.CellHeight
	return image.Rect(x, y, x+s.CellWidth, y+s.CellHeight)
}

// Locate maps a sheet pixel to its cell index and the pixel within that
// cell.
func (s Spec) Locate(x, y int) (int, image.Point) {
	column, row := x/s.CellWidth, y/s.CellHeight
	return column + row*s.Side, image.Pt(x%s.CellWidth, y%s.CellHeight)
}
