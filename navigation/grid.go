package navigation

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/lixenwraith/gridpath/core"
)

// CellState classifies one grid cell
type CellState uint8

const (
	CellEmpty CellState = iota
	CellOccupied
	CellInvalid // Outside grid extents
)

// String returns the state name
func (s CellState) String() string {
	switch s {
	case CellEmpty:
		return "Empty"
	case CellOccupied:
		return "Occupied"
	default:
		return "Invalid"
	}
}

// Grid is the immutable occupancy map the engine searches over
// Cell must return CellInvalid for coordinates outside [0,Height) x [0,Width)
type Grid interface {
	Cell(row, col int) CellState
	Width() int
	Height() int
}

var (
	ErrRaggedGrid  = errors.New("grid rows have unequal length")
	ErrUnknownCell = errors.New("unknown cell glyph")
	ErrEmptyGrid   = errors.New("grid has no cells")
)

// Occupancy is a dense in-memory Grid, row-major
type Occupancy struct {
	width, height int
	occupied      []bool
}

// NewOccupancy creates an all-empty grid
func NewOccupancy(width, height int) *Occupancy {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Occupancy{
		width:    width,
		height:   height,
		occupied: make([]bool, width*height),
	}
}

// NewOccupancyFromWalls builds a grid from a [row][col] wall matrix
// Matrix shape taken from the first row; shorter rows are padded empty
func NewOccupancyFromWalls(walls [][]bool) *Occupancy {
	if len(walls) == 0 {
		return NewOccupancy(0, 0)
	}
	o := NewOccupancy(len(walls[0]), len(walls))
	for row, line := range walls {
		for col, wall := range line {
			if col >= o.width {
				break
			}
			o.occupied[row*o.width+col] = wall
		}
	}
	return o
}

// Cell implements Grid
func (o *Occupancy) Cell(row, col int) CellState {
	if row < 0 || col < 0 || row >= o.height || col >= o.width {
		return CellInvalid
	}
	if o.occupied[row*o.width+col] {
		return CellOccupied
	}
	return CellEmpty
}

// Width implements Grid
func (o *Occupancy) Width() int { return o.width }

// Height implements Grid
func (o *Occupancy) Height() int { return o.height }

// SetOccupied marks a cell; out-of-range coordinates are ignored
// Grids must not be mutated while a service is using them
func (o *Occupancy) SetOccupied(row, col int, occupied bool) {
	if row < 0 || col < 0 || row >= o.height || col >= o.width {
		return
	}
	o.occupied[row*o.width+col] = occupied
}

// EmptyCells returns every empty cell in row-major order
func (o *Occupancy) EmptyCells() []core.CellKey {
	cells := make([]core.CellKey, 0, len(o.occupied))
	for i, occ := range o.occupied {
		if !occ {
			cells = append(cells, core.CellKey{Row: i / o.width, Col: i % o.width})
		}
	}
	return cells
}

// ParseOccupancy reads an ASCII map: '.' empty, '#' occupied, one row per line
// Surrounding whitespace and blank lines are ignored
func ParseOccupancy(r io.Reader) (*Occupancy, error) {
	var walls [][]bool
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		row := make([]bool, 0, len(line))
		for col, ch := range line {
			switch ch {
			case '.':
				row = append(row, false)
			case '#':
				row = append(row, true)
			default:
				return nil, fmt.Errorf("line %d col %d %q: %w", lineNo, col, ch, ErrUnknownCell)
			}
		}
		if len(walls) > 0 && len(row) != len(walls[0]) {
			return nil, fmt.Errorf("line %d has %d cells, want %d: %w", lineNo, len(row), len(walls[0]), ErrRaggedGrid)
		}
		walls = append(walls, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read grid: %w", err)
	}
	if len(walls) == 0 {
		return nil, ErrEmptyGrid
	}
	return NewOccupancyFromWalls(walls), nil
}

// MustParseOccupancy parses an inline map and panics on error, for tests and fixtures
func MustParseOccupancy(s string) *Occupancy {
	o, err := ParseOccupancy(strings.NewReader(s))
	if err != nil {
		panic(err)
	}
	return o
}

// isBlocked reports whether a cell cannot be entered (occupied or outside the grid)
func isBlocked(g Grid, k core.CellKey) bool {
	return g.Cell(k.Row, k.Col) != CellEmpty
}
