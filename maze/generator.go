package maze

import (
	"math/rand"
	"time"

	"github.com/lixenwraith/gridpath/core"
)

// Cell values in a wall matrix
const (
	Wall    = true
	Passage = false
)

// Config describes a maze to carve
type Config struct {
	Width, Height int

	// Braiding: 0.0 (perfect maze, tree) to 1.0 (no dead ends)
	// Higher values add cycles; plaza/pillar constraints take precedence
	Braiding float64

	// RemoveBorders opens the outer ring
	RemoveBorders bool

	Start *core.CellKey // Optional, nil = automatic
	End   *core.CellKey // Optional, nil = automatic
	Seed  int64         // Optional, 0 = time based
}

// Result is a generated wall matrix indexed [row][col]
type Result struct {
	Walls      [][]bool
	Start, End core.CellKey
	Solution   []core.CellKey // 4-connected BFS route, nil if none
}

// Generate carves a maze with a recursive backtracker, then braids it
// Dimensions are rounded down to odd values, minimum 3
func Generate(cfg Config) Result {
	rows := ensureOdd(cfg.Height)
	cols := ensureOdd(cfg.Width)
	walls := filled(rows, cols, Wall)
	rng := newRand(cfg.Seed)

	startDef := core.CellKey{Row: 1, Col: 1}
	endDef := core.CellKey{Row: rows - 2, Col: cols - 2}
	if cfg.RemoveBorders {
		startDef = core.CellKey{Row: (rows / 2) | 1, Col: (cols / 2) | 1}
		endDef = core.CellKey{Row: (rows / 2) | 1, Col: cols - 1}
	}
	start := resolve(rows, cols, cfg.Start, startDef)
	end := resolve(rows, cols, cfg.End, endDef)

	carve(walls, start, rng)

	// Borders go before braiding so edge cells are seen as connected
	if cfg.RemoveBorders {
		stripBorders(walls)
	}
	if cfg.Braiding > 0 {
		braid(walls, cfg.Braiding, rng)
	}

	if cfg.RemoveBorders {
		walls[start.Row][start.Col] = Passage
		walls[end.Row][end.Col] = Passage
	} else {
		forceOpen(walls, start)
		forceOpen(walls, end)
	}

	return Result{
		Walls:    walls,
		Start:    start,
		End:      end,
		Solution: Solve(walls, start, end),
	}
}

// ScatterConfig describes a field of independently placed obstacles
type ScatterConfig struct {
	Width, Height int
	Density       float64 // Probability that a cell is a wall, 0..1
	Keep          []core.CellKey
	Seed          int64
}

// Scatter fills a grid with random single-cell obstacles; cells in Keep stay open
func Scatter(cfg ScatterConfig) [][]bool {
	rows, cols := max(cfg.Height, 1), max(cfg.Width, 1)
	walls := filled(rows, cols, Passage)
	rng := newRand(cfg.Seed)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if rng.Float64() < cfg.Density {
				walls[r][c] = Wall
			}
		}
	}
	for _, k := range cfg.Keep {
		if k.Row >= 0 && k.Row < rows && k.Col >= 0 && k.Col < cols {
			walls[k.Row][k.Col] = Passage
		}
	}
	return walls
}

// --- Core algorithms ---

func carve(walls [][]bool, start core.CellKey, rng *rand.Rand) {
	rows, cols := len(walls), len(walls[0])

	if start.Col < 0 || start.Col >= cols || start.Row < 0 || start.Row >= rows {
		start = core.CellKey{Row: 1, Col: 1}
	}

	stack := []core.CellKey{start}
	walls[start.Row][start.Col] = Passage

	jumps := [4][2]int{{-2, 0}, {2, 0}, {0, -2}, {0, 2}}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		candidates := make([][2]int, 0, 4)

		for _, j := range jumps {
			nr, nc := cur.Row+j[0], cur.Col+j[1]
			// Leave a one-cell wall border
			if nr > 0 && nr < rows-1 && nc > 0 && nc < cols-1 && walls[nr][nc] == Wall {
				candidates = append(candidates, j)
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		j := candidates[rng.Intn(len(candidates))]
		walls[cur.Row+j[0]/2][cur.Col+j[1]/2] = Passage
		next := cur.Add(j[0], j[1])
		walls[next.Row][next.Col] = Passage
		stack = append(stack, next)
	}
}

// braid opens walls next to dead ends with the given probability
func braid(walls [][]bool, probability float64, rng *rand.Rand) {
	rows, cols := len(walls), len(walls[0])
	ortho := [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

	for r := 1; r < rows-1; r += 2 {
		for c := 1; c < cols-1; c += 2 {
			if walls[r][c] == Wall {
				continue
			}

			exits := 0
			for _, d := range ortho {
				if walls[r+d[0]][c+d[1]] == Passage {
					exits++
				}
			}
			if exits != 1 || rng.Float64() >= probability {
				continue
			}

			candidates := make([]core.CellKey, 0, 4)
			for _, d := range ortho {
				nr, nc := r+2*d[0], c+2*d[1]
				wr, wc := r+d[0], c+d[1]
				if nr < 0 || nr >= rows || nc < 0 || nc >= cols {
					continue
				}
				if walls[nr][nc] == Passage && walls[wr][wc] == Wall && canSafelyRemoveWall(walls, wr, wc) {
					candidates = append(candidates, core.CellKey{Row: wr, Col: wc})
				}
			}
			if len(candidates) > 0 {
				k := candidates[rng.Intn(len(candidates))]
				walls[k.Row][k.Col] = Passage
			}
		}
	}
}

// canSafelyRemoveWall rejects removals that would create a 2x2 open plaza or an isolated pillar
func canSafelyRemoveWall(walls [][]bool, r, c int) bool {
	rows, cols := len(walls), len(walls[0])

	open := func(tr, tc int) bool {
		if tr < 0 || tr >= rows || tc < 0 || tc >= cols {
			return false
		}
		return walls[tr][tc] == Passage
	}

	// Plazas: any of the four 2x2 quadrants around (r,c) already three-quarters open
	if open(r-1, c-1) && open(r-1, c) && open(r, c-1) {
		return false
	}
	if open(r-1, c) && open(r-1, c+1) && open(r, c+1) {
		return false
	}
	if open(r, c-1) && open(r+1, c-1) && open(r+1, c) {
		return false
	}
	if open(r, c+1) && open(r+1, c) && open(r+1, c+1) {
		return false
	}

	// Pillars: an adjacent wall must keep another wall neighbour
	ortho := [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	for _, d := range ortho {
		nr, nc := r+d[0], c+d[1]
		if nr < 0 || nr >= rows || nc < 0 || nc >= cols || walls[nr][nc] != Wall {
			continue
		}
		links := 0
		for _, d2 := range ortho {
			mr, mc := nr+d2[0], nc+d2[1]
			if mr == r && mc == c {
				continue
			}
			if mr >= 0 && mr < rows && mc >= 0 && mc < cols && walls[mr][mc] == Wall {
				links++
			}
		}
		if links == 0 {
			return false
		}
	}
	return true
}

func stripBorders(walls [][]bool) {
	rows, cols := len(walls), len(walls[0])
	for c := 0; c < cols; c++ {
		walls[0][c] = Passage
		walls[rows-1][c] = Passage
	}
	for r := 0; r < rows; r++ {
		walls[r][0] = Passage
		walls[r][cols-1] = Passage
	}
}

// Solve returns a shortest 4-connected route from start to end, nil if none exists
func Solve(walls [][]bool, start, end core.CellKey) []core.CellKey {
	if len(walls) == 0 || !inside(walls, start) || !inside(walls, end) {
		return nil
	}
	if walls[start.Row][start.Col] == Wall || walls[end.Row][end.Col] == Wall {
		return nil
	}

	queue := []core.CellKey{start}
	cameFrom := map[core.CellKey]core.CellKey{}
	visited := map[core.CellKey]bool{start: true}
	ortho := [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur == end {
			path := []core.CellKey{cur}
			for cur != start {
				cur = cameFrom[cur]
				path = append(path, cur)
			}
			for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
				path[l], path[r] = path[r], path[l]
			}
			return path
		}

		for _, d := range ortho {
			next := cur.Add(d[0], d[1])
			if inside(walls, next) && walls[next.Row][next.Col] == Passage && !visited[next] {
				visited[next] = true
				cameFrom[next] = cur
				queue = append(queue, next)
			}
		}
	}
	return nil
}

// --- Helpers ---

func filled(rows, cols int, v bool) [][]bool {
	grid := make([][]bool, rows)
	for r := range grid {
		grid[r] = make([]bool, cols)
		if v {
			for c := range grid[r] {
				grid[r][c] = v
			}
		}
	}
	return grid
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func inside(walls [][]bool, k core.CellKey) bool {
	return k.Row >= 0 && k.Row < len(walls) && k.Col >= 0 && k.Col < len(walls[0])
}

func ensureOdd(n int) int {
	if n < 3 {
		return 3
	}
	if n%2 == 0 {
		return n - 1
	}
	return n
}

func resolve(rows, cols int, p *core.CellKey, def core.CellKey) core.CellKey {
	if p == nil {
		return def
	}
	return core.CellKey{
		Row: min(max(p.Row, 0), rows-1),
		Col: min(max(p.Col, 0), cols-1),
	}
}

func forceOpen(walls [][]bool, k core.CellKey) {
	if !inside(walls, k) {
		return
	}
	walls[k.Row][k.Col] = Passage

	ortho := [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	for _, d := range ortho {
		n := k.Add(d[0], d[1])
		if inside(walls, n) && walls[n.Row][n.Col] == Passage {
			return
		}
	}
	// Isolated: punch through to the first interior neighbour
	rows, cols := len(walls), len(walls[0])
	for _, d := range ortho {
		n := k.Add(d[0], d[1])
		if n.Row > 0 && n.Row < rows-1 && n.Col > 0 && n.Col < cols-1 {
			walls[n.Row][n.Col] = Passage
			return
		}
	}
}
