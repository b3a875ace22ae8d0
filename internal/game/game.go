package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/pkg/errors"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Rink-Sense/internal/vmath"
)

// borderWidth is the pixel gap between the window edge and the rink.
const borderWidth = 24

// hudScale is the integer upscale factor applied to the key legend.
const hudScale = 2

// pickRadius is how close a click must land to select an athlete.
const pickRadius = 16

var (
	colIce        = color.RGBA{R: 226, G: 236, B: 242, A: 255}
	colBoards     = color.RGBA{R: 60, G: 70, B: 90, A: 255}
	colCentreLine = color.RGBA{R: 200, G: 40, B: 40, A: 200}
	colBlueLine   = color.RGBA{R: 40, G: 70, B: 200, A: 160}
	colPuck       = color.RGBA{R: 15, G: 15, B: 15, A: 255}
	colNet        = color.RGBA{R: 200, G: 60, B: 60, A: 255}
	colManual     = color.RGBA{R: 250, G: 200, B: 30, A: 255}
	colSelected   = color.RGBA{R: 40, G: 220, B: 120, A: 255}
	colText       = color.RGBA{R: 230, G: 235, B: 240, A: 255}
)

// teamColor is the jersey colour of team.
func teamColor(t Team) color.RGBA {
	if t == TeamLeft {
		return color.RGBA{R: 70, G: 110, B: 210, A: 255}
	}
	return color.RGBA{R: 210, G: 70, B: 70, A: 255}
}

// Game is the windowed driver: it feeds mouse and keyboard input into the
// PlayState, steps it once per ebiten tick and draws the read-only snapshot.
type Game struct {
	width      int
	height     int
	offX       int
	offY       int
	ps         *PlayState
	plays      *PlayByPlay
	reporter   *MatchReporter
	face       text.Face

	paused  bool
	showHUD bool

	// Latest values pushed by the PlayState observer hooks.
	scoreText   string
	controlText string
	status      string // transient feedback, e.g. "report copied"

	inspector Inspector
	hudBuf    *ebiten.Image
	inspBuf   *ebiten.Image
}

// New builds a windowed match. opts are forwarded to NewPlayState.
func New(opts ...Option) (*Game, error) {
	g := &Game{
		offX:       borderWidth,
		offY:       borderWidth,
		plays:      NewPlayByPlay(),
		reporter:   NewMatchReporter(reportSampleTicks, reportWindowTicks),
		face:       text.NewGoXFace(basicfont.Face7x13),
		showHUD:    true,
	}
	ps, err := NewPlayState(append([]Option{WithPlayByPlay(g.plays)}, opts...)...)
	if err != nil {
		return nil, errors.Wrap(err, "new game")
	}
	g.ps = ps
	g.ps.OnScoreChanged(func(left, right int) {
		g.scoreText = fmt.Sprintf("%d : %d", left, right)
	})
	g.ps.OnControlChanged(func(label string) {
		g.controlText = label
	})
	g.scoreText = "0 : 0"
	g.controlText = ps.ControlLabel()

	rink := ps.Rink()
	g.width = borderWidth + int(rink.Width) + borderWidth + playPanelWidth
	g.height = borderWidth + int(rink.Height) + borderWidth
	g.hudBuf = ebiten.NewImage(g.width/hudScale, g.height/hudScale)
	g.inspBuf = ebiten.NewImage(inspBufW, inspBufH)
	return g, nil
}

// Size is the window size the driver lays out for.
func (g *Game) Size() (int, int) {
	return g.width, g.height
}

func (g *Game) Update() error {
	g.handleInput()
	if g.paused {
		return nil
	}
	g.ps.Update()
	g.reporter.Observe(g.ps)
	return nil
}

// handleInput maps pointer and keys onto PlayState operations.
func (g *Game) handleInput() {
	mx, my := ebiten.CursorPosition()
	pointer := g.toRink(mx, my)
	g.ps.SetPointer(pointer)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if !g.ps.HandleClick(pointer) {
			g.inspector.selected = g.ps.AthleteNear(pointer, pickRadius)
		}
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		g.ps.RandomizePositions()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		if err := g.ps.ResetMatch(); err != nil {
			g.status = err.Error()
		}
		g.inspector.selected = nil
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		g.ps.SetManual(g.ps.ManualAthlete() == nil)
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.paused = !g.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.showHUD = !g.showHUD
	case inpututil.IsKeyJustPressed(ebiten.KeyI):
		g.inspector.rawView = !g.inspector.rawView
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		if err := setClipboardText(g.matchReport(g.inspector.selected, 240)); err != nil {
			g.status = "clipboard: " + err.Error()
		} else {
			g.status = "report copied"
		}
	}
}

// toRink converts window pixels to rink coordinates.
func (g *Game) toRink(mx, my int) vmath.Vec2 {
	return vmath.V(float64(mx-g.offX), float64(my-g.offY))
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 14, B: 20, A: 255})
	snap := g.ps.Snapshot()

	g.drawRink(screen, snap)
	g.drawGoals(screen, snap)
	g.drawIntentLines(screen, snap)
	g.drawAthletes(screen, snap)
	g.drawPuck(screen, snap)
	g.drawStateLabels(screen, snap)

	g.plays.Draw(screen, g.offX+int(snap.Rink.Width)+g.offX, g.height, snap)
	g.drawScoreboard(screen, snap)
	if g.showHUD {
		g.drawHUD(screen)
	}
	g.drawInspector(screen)
}

func (g *Game) drawRink(screen *ebiten.Image, snap Snapshot) {
	ox, oy := float32(g.offX), float32(g.offY)
	w, h := float32(snap.Rink.Width), float32(snap.Rink.Height)

	vector.FillRect(screen, ox, oy, w, h, colIce, false)
	vector.StrokeRect(screen, ox-2, oy-2, w+4, h+4, 3, colBoards, true)

	// Centre line, blue lines and the faceoff circle.
	vector.StrokeLine(screen, ox+w/2, oy, ox+w/2, oy+h, 3, colCentreLine, false)
	vector.StrokeLine(screen, ox+w/3, oy, ox+w/3, oy+h, 2, colBlueLine, false)
	vector.StrokeLine(screen, ox+2*w/3, oy, ox+2*w/3, oy+h, 2, colBlueLine, false)
	vector.StrokeCircle(screen, ox+w/2, oy+h/2, 60, 2, colCentreLine, true)

	// Dim the ice during the goal freeze.
	if snap.Frozen {
		vector.FillRect(screen, ox, oy, w, h, color.RGBA{R: 255, G: 255, B: 255, A: 60}, false)
	}
}

func (g *Game) drawGoals(screen *ebiten.Image, snap Snapshot) {
	for _, gv := range snap.Goals {
		x := float32(g.offX) + float32(gv.Position.X()-gv.Width/2)
		y := float32(g.offY) + float32(gv.Position.Y()-gv.Height/2)
		vector.FillRect(screen, x, y, float32(gv.Width), float32(gv.Height), colNet, false)
		vector.StrokeRect(screen, x, y, float32(gv.Width), float32(gv.Height), 1, colBoards, false)
	}
}

func (g *Game) drawAthletes(screen *ebiten.Image, snap Snapshot) {
	const r = 12
	for _, av := range snap.Athletes {
		x := float32(g.offX) + float32(av.Position.X())
		y := float32(g.offY) + float32(av.Position.Y())
		vector.FillCircle(screen, x, y, r, teamColor(av.Team), true)
		if av.Manual {
			vector.StrokeCircle(screen, x, y, r+3, 2, colManual, true)
		}
		if av.Carrier {
			vector.StrokeCircle(screen, x, y, r+6, 1, colPuck, true)
		}
		if sel := g.inspector.selected; sel != nil && sel.ID() == av.ID {
			vector.StrokeCircle(screen, x, y, r+9, 2, colSelected, true)
		}
		ebitenutil.DebugPrintAt(screen, av.Role.Initial(), int(x)-3, int(y)-8)
	}
}

func (g *Game) drawPuck(screen *ebiten.Image, snap Snapshot) {
	x := float32(g.offX) + float32(snap.Puck.Position.X())
	y := float32(g.offY) + float32(snap.Puck.Position.Y())
	vector.FillCircle(screen, x, y, float32(snap.Puck.Radius)/2, colPuck, true)
	if len(g.ps.PuckContacts()) > 1 {
		vector.StrokeCircle(screen, x, y, float32(g.ps.Tuning().PickupRadius), 1, colNet, true)
	}
}

// drawScoreboard prints score and control mode above the rink with the
// bitmap font.
func (g *Game) drawScoreboard(screen *ebiten.Image, snap Snapshot) {
	line := fmt.Sprintf("LEFT %s RIGHT   %s   T=%d", g.scoreText, g.controlText, snap.Tick)
	if g.paused {
		line += "   [PAUSED]"
	}
	if snap.Frozen {
		line += "   GOAL!"
	}
	if g.status != "" {
		line += "   " + g.status
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(g.offX), 4)
	op.ColorScale.ScaleWithColor(colText)
	text.Draw(screen, line, g.face, op)
}

// drawHUD renders the key legend at 1x then blits it at hudScale.
func (g *Game) drawHUD(screen *ebiten.Image) {
	lines := []string{
		"mouse=steer  click=strike/inspect",
		"G=randomize  R=reset  M=manual",
		"P=pause  C=copy report  I=raw view",
		"[H] toggle HUD",
	}

	const lineH = 12
	const charW = 6
	const padX = 5
	const padY = 4

	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	boxW := float32(maxLen*charW + padX*2)
	boxH := float32(len(lines)*lineH + padY*2)
	bufH := float32(g.height / hudScale)
	bx := float32(g.offX/hudScale + 4)
	by := bufH - boxH - 4

	g.hudBuf.Clear()
	vector.FillRect(g.hudBuf, bx, by, boxW, boxH, color.RGBA{R: 6, G: 8, B: 16, A: 200}, false)
	vector.StrokeRect(g.hudBuf, bx, by, boxW, boxH, 1.0, color.RGBA{R: 60, G: 80, B: 130, A: 180}, false)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(g.hudBuf, line, int(bx)+padX, int(by)+padY+i*lineH)
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(hudScale), float64(hudScale))
	screen.DrawImage(g.hudBuf, opts)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
