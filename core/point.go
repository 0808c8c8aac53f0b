package core

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// CellKey addresses one grid cell by row and column
type CellKey struct {
	Row, Col int
}

// String formats the key as (row,col)
func (k CellKey) String() string {
	return fmt.Sprintf("(%d,%d)", k.Row, k.Col)
}

// Add returns the key offset by the given row and column deltas
func (k CellKey) Add(dRow, dCol int) CellKey {
	return CellKey{Row: k.Row + dRow, Col: k.Col + dCol}
}

// Center returns the continuous-space center of the cell
func (k CellKey) Center() GridPoint {
	return GridPoint{X: float64(k.Col) + 0.5, Y: float64(k.Row) + 0.5}
}

// GridPoint is a continuous-space position measured in cells
// X runs along columns, Y along rows
type GridPoint r2.Vec

// Pt is shorthand for GridPoint{X: x, Y: y}
func Pt(x, y float64) GridPoint {
	return GridPoint{X: x, Y: y}
}

// Cell returns the key of the cell containing the point (floor on both axes)
func (p GridPoint) Cell() CellKey {
	return CellKey{Row: int(math.Floor(p.Y)), Col: int(math.Floor(p.X))}
}

// Vec exposes the point as a gonum vector
func (p GridPoint) Vec() r2.Vec {
	return r2.Vec(p)
}

// Add returns p+q
func (p GridPoint) Add(q GridPoint) GridPoint {
	return GridPoint(r2.Add(r2.Vec(p), r2.Vec(q)))
}

// Sub returns p-q
func (p GridPoint) Sub(q GridPoint) GridPoint {
	return GridPoint(r2.Sub(r2.Vec(p), r2.Vec(q)))
}

// Scale returns f*p
func (p GridPoint) Scale(f float64) GridPoint {
	return GridPoint(r2.Scale(f, r2.Vec(p)))
}

// Distance returns the Euclidean distance between p and q
func (p GridPoint) Distance(q GridPoint) float64 {
	return r2.Norm(r2.Sub(r2.Vec(p), r2.Vec(q)))
}

// Midpoint returns the point halfway between p and q
func (p GridPoint) Midpoint(q GridPoint) GridPoint {
	return p.Add(q).Scale(0.5)
}

// String formats the point with two decimals
func (p GridPoint) String() string {
	return fmt.Sprintf("(%.2f,%.2f)", p.X, p.Y)
}
