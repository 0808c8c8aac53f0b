package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/gridpath/core"
	"github.com/lixenwraith/gridpath/navigation"
)

const headerRows = 1

var (
	styleBackground = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleWall       = tcell.StyleDefault.Background(tcell.ColorDimGray).Foreground(tcell.ColorDimGray)
	styleFloor      = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorDarkSlateGray)
	styleStatus     = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
	styleFooter     = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorGray)
)

func (s *sandbox) draw() {
	s.screen.Fill(' ', styleBackground)
	w, h := s.screen.Size()

	for r := 0; r < s.grid.Height(); r++ {
		for c := 0; c < s.grid.Width(); c++ {
			if s.grid.Cell(r, c) == navigation.CellOccupied {
				s.put(c, r+headerRows, '█', styleWall)
			} else {
				s.put(c, r+headerRows, '·', styleFloor)
			}
		}
	}

	for i, a := range s.agents {
		if !s.showAll && i > 0 {
			break
		}
		s.drawPath(a)
	}
	for _, a := range s.agents {
		st := styleBackground.Foreground(a.color).Bold(true)
		goal := a.goal.Cell()
		s.put(goal.Col, goal.Row+headerRows, '×', st)
		at := a.pos.Cell()
		s.put(at.Col, at.Row+headerRows, a.label, st)
	}

	s.text(0, 0, w, s.statusLine(), styleStatus)
	if h > s.grid.Height()+headerRows {
		s.text(0, h-1, w, " q quit  p pause  r rubberband  s smooth  h heuristic  f frontier  v paths  m mute  click: toggle wall", styleFooter)
	}
	s.screen.Show()
}

// drawPath plots the remaining waypoints of a, sampling between them so smoothed paths read as curves
func (s *sandbox) drawPath(a *agent) {
	list := *s.svc.GetWaypointList(a.id)
	st := styleFloor.Foreground(a.color)
	prev := a.pos
	for _, wp := range list {
		steps := int(math.Ceil(prev.Distance(wp) * 2))
		for k := 1; k <= steps; k++ {
			p := prev.Add(wp.Sub(prev).Scale(float64(k) / float64(steps)))
			c := p.Cell()
			s.put(c.Col, c.Row+headerRows, '∙', st)
		}
		c := wp.Cell()
		s.put(c.Col, c.Row+headerRows, '•', st.Bold(true))
		prev = wp
	}
}

func (s *sandbox) statusLine() string {
	var b strings.Builder
	cfg := s.svc.Config()
	fmt.Fprintf(&b, " rb:%v sm:%v %s/%s w=%.2f", cfg.Rubberband, cfg.Smooth, cfg.Heuristic, cfg.Frontier, cfg.HeuristicWeight)
	if id, ok := s.svc.Active(); ok {
		if a := s.byID[id]; a != nil {
			fmt.Fprintf(&b, " active:%c", a.label)
		}
	}
	fmt.Fprintf(&b, " pending:%d", s.svc.Pending())
	for _, m := range s.reg.Snapshot() {
		b.WriteString(" ")
		b.WriteString(m.String())
	}
	if s.message != "" {
		b.WriteString(" | ")
		b.WriteString(s.message)
	}
	return b.String()
}

func (s *sandbox) put(x, y int, r rune, st tcell.Style) {
	s.screen.SetContent(x, y, r, nil, st)
}

func (s *sandbox) text(x, y, width int, str string, st tcell.Style) {
	col := x
	for _, r := range str {
		if col >= width {
			return
		}
		s.put(col, y, r, st)
		col++
	}
	for ; col < width; col++ {
		s.put(col, y, ' ', st)
	}
}

// cellOf maps a screen position to a grid cell
func cellOf(x, y int) core.CellKey {
	return core.CellKey{Row: y - headerRows, Col: x}
}
