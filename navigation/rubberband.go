package navigation

import (
	"github.com/lixenwraith/gridpath/core"
)

// Rubberband removes intermediate cells whose neighbours can be joined directly
//
// Walking goal→root, a candidate is dropped when the bounding rectangle spanning the
// previously kept cell and the candidate's parent holds no occupied cell. The test is a
// coarse box check, not a line-of-sight raycast. Passes repeat until one removes nothing,
// so applying Rubberband to its own output returns the same chain.
// Output is root→goal; endpoints are always kept.
func Rubberband(g Grid, chain []core.CellKey) []core.CellKey {
	out := append([]core.CellKey(nil), chain...)
	for {
		next := rubberbandPass(g, out)
		if len(next) == len(out) {
			return next
		}
		out = next
	}
}

func rubberbandPass(g Grid, chain []core.CellKey) []core.CellKey {
	n := len(chain)
	if n < 3 {
		return append([]core.CellKey(nil), chain...)
	}

	kept := make([]core.CellKey, 0, n)
	kept = append(kept, chain[n-1])
	for i := n - 2; i >= 1; i-- {
		prev := kept[len(kept)-1]
		parent := chain[i-1]
		if rectClear(g, prev, parent) {
			continue
		}
		kept = append(kept, chain[i])
	}
	kept = append(kept, chain[0])

	for l, r := 0, len(kept)-1; l < r; l, r = l+1, r-1 {
		kept[l], kept[r] = kept[r], kept[l]
	}
	return kept
}

// rectClear reports whether no cell in the inclusive rectangle spanned by a and b is occupied
func rectClear(g Grid, a, b core.CellKey) bool {
	r0, r1 := min(a.Row, b.Row), max(a.Row, b.Row)
	c0, c1 := min(a.Col, b.Col), max(a.Col, b.Col)
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			if g.Cell(r, c) == CellOccupied {
				return false
			}
		}
	}
	return true
}
