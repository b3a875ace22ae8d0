package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// intentLineScale converts a velocity into a drawn heading line length.
const intentLineScale = 0.25

// drawIntentLines draws each athlete's heading as a short line. The selected
// athlete's line is brighter and also points home when it is defending.
func (g *Game) drawIntentLines(screen *ebiten.Image, snap Snapshot) {
	ox, oy := float64(g.offX), float64(g.offY)
	sel := g.inspector.selected
	for _, av := range snap.Athletes {
		if av.Velocity.Len() < 1 {
			continue
		}
		tip := av.Position.Add(av.Velocity.Scale(intentLineScale))
		col := teamColor(av.Team)
		col.A = 110
		width := float32(1)
		if sel != nil && sel.ID() == av.ID {
			col.A = 255
			width = 2
		}
		vector.StrokeLine(screen,
			float32(ox+av.Position.X()), float32(oy+av.Position.Y()),
			float32(ox+tip.X()), float32(oy+tip.Y()),
			width, col, true)
	}

	if sel == nil || !sel.IsInState(StateDefend) {
		return
	}
	home := sel.InitialPosition()
	pos := sel.Position()
	vector.StrokeLine(screen,
		float32(ox+pos.X()), float32(oy+pos.Y()),
		float32(ox+home.X()), float32(oy+home.Y()),
		1, color.RGBA{R: 40, G: 220, B: 120, A: 140}, true)
	vector.StrokeCircle(screen, float32(ox+home.X()), float32(oy+home.Y()), float32(g.ps.Tuning().DefendArriveDist), 1, colSelected, true)
}

// drawStateLabels prints "label state" under every athlete.
func (g *Game) drawStateLabels(screen *ebiten.Image, snap Snapshot) {
	for _, av := range snap.Athletes {
		x := g.offX + int(av.Position.X()) - 18
		y := g.offY + int(av.Position.Y()) + 14
		ebitenutil.DebugPrintAt(screen, av.Label+" "+av.State.String(), x, y)
	}
}
