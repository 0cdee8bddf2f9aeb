package grid

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSpec(t *testing.T) {
	tables := []struct {
		count int
		side  int
	}{
		{2, 2},
		{3, 2},
		{4, 2},
		{5, 3},
		{9, 3},
		{10, 4},
		{16, 4},
		{17, 5},
		{1000000, 1000},
		{1000001, 1001},
	}

	for _, table := range tables {
		s := NewSpec(table.count, 16, 8)
		assert.Equal(t, table.side, s.Side, "count %d", table.count)
		assert.Equal(t, table.side*16, s.Width())
		assert.Equal(t, table.side*8, s.Height())
		assert.GreaterOrEqual(t, s.Side*s.Side, table.count)
	}
}

func TestSpecCell(t *testing.T) {
	s := NewSpec(5, 16, 8)

	assert.Equal(t, image.Rect(0, 0, 16, 8), s.Cell(0))
	assert.Equal(t, image.Rect(32, 0, 48, 8), s.Cell(2))
	assert.Equal(t, image.Rect(0, 8, 16, 16), s.Cell(3))
	assert.Equal(t, image.Rect(32, 16, 48, 24), s.Cell(8))
}

func TestSpecLocate(t *testing.T) {
	s := NewSpec(5, 16, 8)

	tables := []struct {
		x, y  int
		cell  int
		local image.Point
	}{
		{0, 0, 0, image.Pt(0, 0)},
		{15, 7, 0, image.Pt(15, 7)},
		{16, 0, 1, image.Pt(0, 0)},
		{47, 0, 2, image.Pt(15, 0)},
		{0, 8, 3, image.Pt(0, 0)},
		{17, 9, 4, image.Pt(1, 1)},
		{47, 23, 8, image.Pt(15, 7)},
	}

	for _, table := range tables {
		cell, local := s.Locate(table.x, table.y)
		assert.Equal(t, table.cell, cell, "(%d, %d)", table.x, table.y)
		assert.Equal(t, table.local, local, "(%d, %d)", table.x, table.y)
	}
}
