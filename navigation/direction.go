package navigation

import (
	"math"

	"github.com/lixenwraith/gridpath/core"
)

// Direction indexes the 8-neighbourhood: N=0, NE=1, E=2, SE=3, S=4, SW=5, W=6, NW=7
type Direction int8

const (
	DirN Direction = iota
	DirNE
	DirE
	DirSE
	DirS
	DirSW
	DirW
	DirNW
	DirCount
)

// DirVectors holds {dRow, dCol} per Direction
// Expansion order follows this table, which fixes arena order and therefore tie-breaks
var DirVectors = [DirCount][2]int{
	{-1, 0}, {-1, 1}, {0, 1}, {1, 1},
	{1, 0}, {1, -1}, {0, -1}, {-1, -1},
}

// Step costs: cardinal = 1, diagonal = √2
var dirCosts = [DirCount]float64{
	1, math.Sqrt2, 1, math.Sqrt2,
	1, math.Sqrt2, 1, math.Sqrt2,
}

// Diagonal reports whether d moves along both axes
func (d Direction) Diagonal() bool {
	return d%2 == 1
}

// Neighbor returns the cell one step from k in direction d
func (d Direction) Neighbor(k core.CellKey) core.CellKey {
	return k.Add(DirVectors[d][0], DirVectors[d][1])
}

// canStep reports whether a move from k in direction d is admissible on g
// Target must be empty; diagonals additionally require both flanking cardinals to be free
// so paths never cut across a wall corner
func canStep(g Grid, k core.CellKey, d Direction) bool {
	if isBlocked(g, d.Neighbor(k)) {
		return false
	}
	if d.Diagonal() {
		dr, dc := DirVectors[d][0], DirVectors[d][1]
		if g.Cell(k.Row+dr, k.Col) == CellOccupied || g.Cell(k.Row, k.Col+dc) == CellOccupied {
			return false
		}
	}
	return true
}
