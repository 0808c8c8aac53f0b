package navigation

import (
	"github.com/lixenwraith/gridpath/core"
	"github.com/lixenwraith/gridpath/parameter"
)

// spacingTolerance keeps float noise from splitting segments equal to the mean
const spacingTolerance = 1e-9

// Smooth densifies a waypoint path into a Catmull-Rom curve
//
// Phase 1: segments longer than the mean segment length are bisected until none exceeds it
// Phase 2: three spline samples (t = 0.25, 0.5, 0.75) are inserted between each pair,
// with missing outer control points clamped to the segment ends
//
// Endpoints are preserved. Output is not checked against the grid.
// Paths of zero or one point are returned unchanged.
func Smooth(path []core.GridPoint) []core.GridPoint {
	if len(path) < 2 {
		return append([]core.GridPoint(nil), path...)
	}
	pts := NormalizeSpacing(path)

	n := len(pts)
	out := make([]core.GridPoint, 0, n+(n-1)*len(parameter.NavSplineSamples))
	for i := 0; i < n-1; i++ {
		p1, p2 := pts[i], pts[i+1]
		p0, p3 := p1, p2
		if i > 0 {
			p0 = pts[i-1]
		}
		if i+2 < n {
			p3 = pts[i+2]
		}
		out = append(out, p1)
		for _, t := range parameter.NavSplineSamples {
			out = append(out, CatmullRom(p0, p1, p2, p3, t))
		}
	}
	out = append(out, pts[n-1])
	return out
}

// NormalizeSpacing bisects segments longer than the mean segment length
// The mean is taken once from the input; each long segment is split into 2^k equal parts
func NormalizeSpacing(path []core.GridPoint) []core.GridPoint {
	n := len(path)
	if n < 2 {
		return append([]core.GridPoint(nil), path...)
	}

	total := 0.0
	for i := 1; i < n; i++ {
		total += path[i-1].Distance(path[i])
	}
	mean := total / float64(n-1)
	if mean <= 0 {
		return append([]core.GridPoint(nil), path...)
	}

	out := make([]core.GridPoint, 0, n*2)
	out = append(out, path[0])
	for i := 1; i < n; i++ {
		a, b := path[i-1], path[i]
		length := a.Distance(b)

		parts := 1
		for k := 0; k < parameter.NavSmoothMaxBisect && length/float64(parts) > mean*(1+spacingTolerance); k++ {
			parts *= 2
		}
		for j := 1; j < parts; j++ {
			t := float64(j) / float64(parts)
			out = append(out, a.Add(b.Sub(a).Scale(t)))
		}
		out = append(out, b)
	}
	return out
}

// CatmullRom evaluates the uniform Catmull-Rom spline through p1→p2 at t ∈ [0,1]
func CatmullRom(p0, p1, p2, p3 core.GridPoint, t float64) core.GridPoint {
	t2 := t * t
	t3 := t2 * t

	// 0.5 * (2P1 + (-P0+P2)t + (2P0-5P1+4P2-P3)t² + (-P0+3P1-3P2+P3)t³)
	a := p1.Scale(2)
	b := p2.Sub(p0).Scale(t)
	c := p0.Scale(2).Sub(p1.Scale(5)).Add(p2.Scale(4)).Sub(p3).Scale(t2)
	d := p1.Scale(3).Sub(p0).Sub(p2.Scale(3)).Add(p3).Scale(t3)
	return a.Add(b).Add(c).Add(d).Scale(0.5)
}
