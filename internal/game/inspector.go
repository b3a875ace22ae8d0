package game

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Inspector panel, rendered into an offscreen buffer at 1× then blitted at inspScale.
const (
	inspScale = 2   // scale factor for inspector text rendering
	inspBufW  = 220 // buffer width in pixels (~36 chars at debug font)
	inspBufH  = 200 // buffer height in pixels
	inspPad   = 4   // padding in buffer-space pixels
	inspLineH = 13  // line height in buffer-space pixels
	inspLog   = 6   // SimLog lines shown in raw view
)

// Inspector holds the selected athlete and view toggle state.
type Inspector struct {
	selected *Athlete
	rawView  bool // false = curated, true = recent log lines
}

// drawInspector renders the inspector panel into an offscreen buffer at 1×,
// then blits it onto the screen at inspScale for readability.
func (g *Game) drawInspector(screen *ebiten.Image) {
	a := g.inspector.selected
	if a == nil {
		return
	}

	g.inspBuf.Clear()
	buf := g.inspBuf
	bw := float32(inspBufW)
	bh := float32(inspBufH)

	panelBorder := color.RGBA{R: 60, G: 80, B: 130, A: 255}
	vector.FillRect(buf, 0, 0, bw, bh, color.RGBA{R: 14, G: 16, B: 24, A: 230}, false)
	vector.StrokeRect(buf, 0, 0, bw, bh, 1.0, panelBorder, false)

	lx := inspPad
	ly := inspPad

	title := fmt.Sprintf("[ %s %s %s ]", strings.ToUpper(a.Team().String()), a.Label(), a.Role())
	ebitenutil.DebugPrintAt(buf, title, lx, ly)
	ly += inspLineH + 2

	viewName := "CURATED"
	if g.inspector.rawView {
		viewName = "LOG"
	}
	ebitenutil.DebugPrintAt(buf, fmt.Sprintf("view: %s  [I] toggle", viewName), lx, ly)
	ly += inspLineH + 4

	vector.StrokeLine(buf, float32(lx), float32(ly), bw-float32(inspPad), float32(ly), 1.0, panelBorder, false)
	ly += 4

	if g.inspector.rawView {
		g.drawInspectorLog(buf, a, lx, ly)
	} else {
		g.drawInspectorCurated(buf, a, lx, ly)
	}

	px := g.width - playPanelWidth - inspBufW*inspScale - 12
	py := g.height - inspBufH*inspScale - g.offY - 8
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(inspScale), float64(inspScale))
	opts.GeoM.Translate(float64(px), float64(py))
	screen.DrawImage(buf, opts)
}

// drawInspectorCurated shows the behaviour stack and the distances the
// transitions read.
func (g *Game) drawInspectorCurated(buf *ebiten.Image, a *Athlete, lx, ly int) {
	line := func(text string) {
		ebitenutil.DebugPrintAt(buf, text, lx, ly)
		ly += inspLineH
	}

	stack := a.brain.Stack()
	names := make([]string, len(stack))
	for i, s := range stack {
		names[i] = s.String()
	}
	line(fmt.Sprintf("state: %s", a.State()))
	line(fmt.Sprintf("stack: %s", strings.Join(names, " > ")))
	line(fmt.Sprintf("pos:(%.0f,%.0f) spd:%.0f", a.Position().X(), a.Position().Y(), a.body.Speed()))
	line(fmt.Sprintf("home:%.0f puck:%.0f", a.distTo(a.initial), a.distTo(g.ps.Puck().Position)))
	switch owner := g.ps.PuckOwner(); {
	case owner == nil:
		line("puck: free")
	case owner == a:
		line("puck: CARRYING")
	default:
		line(fmt.Sprintf("puck: %s (%.0f away)", owner.Label(), a.distTo(owner.Position())))
	}
	if closest := g.ps.ClosestToPuck(a.Team()); closest != nil {
		line(fmt.Sprintf("closest mate: %s", closest.Label()))
	}
	if a.Manual() {
		line("control: POINTER")
	}
}

// drawInspectorLog lists the athlete's most recent SimLog entries.
func (g *Game) drawInspectorLog(buf *ebiten.Image, a *Athlete, lx, ly int) {
	entries := g.ps.SimLog.FilterAthlete(a.Label())
	if len(entries) > inspLog {
		entries = entries[len(entries)-inspLog:]
	}
	if len(entries) == 0 {
		ebitenutil.DebugPrintAt(buf, "(no events yet)", lx, ly)
		return
	}
	for _, e := range entries {
		ebitenutil.DebugPrintAt(buf, fmt.Sprintf("%d %s %s", e.Tick, e.Key, e.Value), lx, ly)
		ly += inspLineH
	}
}
