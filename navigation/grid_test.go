package navigation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/gridpath/core"
)

func TestOccupancyCell(t *testing.T) {
	g := MustParseOccupancy(`
		..#
		#..
	`)
	require.Equal(t, 3, g.Width())
	require.Equal(t, 2, g.Height())

	tests := []struct {
		row, col int
		want     CellState
	}{
		{0, 0, CellEmpty},
		{0, 2, CellOccupied},
		{1, 0, CellOccupied},
		{1, 2, CellEmpty},
		{-1, 0, CellInvalid},
		{0, -1, CellInvalid},
		{2, 0, CellInvalid},
		{0, 3, CellInvalid},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, g.Cell(tt.row, tt.col), "cell(%d,%d)", tt.row, tt.col)
	}
}

func TestParseOccupancyErrors(t *testing.T) {
	_, err := ParseOccupancy(strings.NewReader("..\n...\n"))
	assert.ErrorIs(t, err, ErrRaggedGrid)

	_, err = ParseOccupancy(strings.NewReader("..x\n"))
	assert.ErrorIs(t, err, ErrUnknownCell)

	_, err = ParseOccupancy(strings.NewReader("\n  \n"))
	assert.ErrorIs(t, err, ErrEmptyGrid)
}

func TestOccupancyFromWalls(t *testing.T) {
	g := NewOccupancyFromWalls([][]bool{
		{false, true},
		{false},
	})
	assert.Equal(t, CellOccupied, g.Cell(0, 1))
	assert.Equal(t, CellEmpty, g.Cell(1, 1))

	g.SetOccupied(1, 1, true)
	g.SetOccupied(5, 5, true)
	assert.Equal(t, CellOccupied, g.Cell(1, 1))
	assert.Equal(t, []core.CellKey{{Row: 0, Col: 0}, {Row: 1, Col: 0}}, g.EmptyCells())
}

func TestCellStateString(t *testing.T) {
	assert.Equal(t, "Empty", CellEmpty.String())
	assert.Equal(t, "Occupied", CellOccupied.String())
	assert.Equal(t, "Invalid", CellInvalid.String())
}

func TestCanStepCornerRule(t *testing.T) {
	center := core.CellKey{Row: 1, Col: 1}

	tests := []struct {
		name string
		grid string
		dir  Direction
		want bool
	}{
		{"open diagonal", "...\n...\n...", DirNW, true},
		{"both flanks occupied", ".#.\n#..\n...", DirNW, false},
		{"one flank occupied", ".#.\n...\n...", DirNW, false},
		{"other flank occupied", "...\n#..\n...", DirNW, false},
		{"target occupied", "#..\n...\n...", DirNW, false},
		{"cardinal beside wall", ".#.\n...\n...", DirW, true},
		{"cardinal into wall", ".#.\n...\n...", DirN, false},
		{"south east open", ".#.\n#..\n...", DirSE, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := MustParseOccupancy(tt.grid)
			assert.Equal(t, tt.want, canStep(g, center, tt.dir))
		})
	}
}

func TestCanStepOutsideGrid(t *testing.T) {
	g := MustParseOccupancy("..\n..")
	assert.False(t, canStep(g, core.CellKey{Row: 0, Col: 0}, DirN))
	assert.False(t, canStep(g, core.CellKey{Row: 0, Col: 0}, DirNW))
	assert.True(t, canStep(g, core.CellKey{Row: 0, Col: 0}, DirSE))
}
