package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/lixenwraith/gridpath/core"
)

var agentColors = []tcell.Color{
	tcell.ColorOrange,
	tcell.ColorAqua,
	tcell.ColorLime,
	tcell.ColorFuchsia,
	tcell.ColorYellow,
	tcell.ColorDodgerBlue,
	tcell.ColorHotPink,
	tcell.ColorSpringGreen,
}

// agent walks from waypoint to waypoint and asks for a new goal on arrival
type agent struct {
	id      uuid.UUID
	label   rune
	color   tcell.Color
	pos     core.GridPoint
	goal    core.GridPoint
	waiting bool // request queued, no completion seen yet
	found   bool // last completion reached its goal
}

func newAgent(i int, pos core.GridPoint) *agent {
	return &agent{
		id:    uuid.New(),
		label: rune('A' + i%26),
		color: agentColors[i%len(agentColors)],
		pos:   pos,
	}
}

// Short returns the first uuid block, enough to tell agents apart in logs
func (a *agent) Short() string {
	return a.id.String()[:8]
}

// advance moves up to dist cells along the waypoint list, consuming reached waypoints
// Returns true once the list is exhausted
func (a *agent) advance(list *[]core.GridPoint, dist float64) bool {
	for len(*list) > 0 && dist > 0 {
		next := (*list)[0]
		gap := a.pos.Distance(next)
		if gap <= dist {
			a.pos = next
			dist -= gap
			*list = (*list)[1:]
			continue
		}
		a.pos = a.pos.Add(next.Sub(a.pos).Scale(dist / gap))
		dist = 0
	}
	return len(*list) == 0
}
