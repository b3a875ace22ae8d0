package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	playPanelWidth = 320
	playMaxLines   = 60
	playLineHeight = 11
	playHeaderH    = 30
)

// PlayKind classifies a play-by-play line.
type PlayKind int

const (
	PlayPickup PlayKind = iota
	PlaySteal
	PlayShot
	PlayGoal
	PlayFaceoff
	PlayReset
)

// String is the short tag shown in front of each line.
func (k PlayKind) String() string {
	switch k {
	case PlayPickup:
		return "PICK"
	case PlaySteal:
		return "STEAL"
	case PlayShot:
		return "SHOT"
	case PlayGoal:
		return "GOAL"
	case PlayFaceoff:
		return "FACE"
	case PlayReset:
		return "RESET"
	default:
		return "?"
	}
}

func (k PlayKind) color() color.RGBA {
	switch k {
	case PlayGoal:
		return color.RGBA{R: 255, G: 215, B: 60, A: 255}
	case PlaySteal:
		return color.RGBA{R: 240, G: 120, B: 60, A: 255}
	case PlayShot:
		return color.RGBA{R: 160, G: 200, B: 255, A: 255}
	case PlayFaceoff, PlayReset:
		return color.RGBA{R: 140, G: 140, B: 150, A: 255}
	default:
		return color.RGBA{R: 120, G: 200, B: 140, A: 255}
	}
}

// Play is one line of match commentary.
type Play struct {
	Tick  int
	Label string // athlete label, "--" for match events
	Team  Team
	Kind  PlayKind
	Text  string
}

// PlayByPlay keeps the latest commentary lines for the side panel, plus
// per-kind tallies for the whole match.
type PlayByPlay struct {
	lines    []Play
	tally    map[PlayKind]int
	lastGoal int // index into lines, -1 once scrolled off or before any goal
}

// NewPlayByPlay creates an empty commentary feed.
func NewPlayByPlay() *PlayByPlay {
	return &PlayByPlay{
		lines:    make([]Play, 0, playMaxLines),
		tally:    map[PlayKind]int{},
		lastGoal: -1,
	}
}

// Add appends a line, dropping the oldest when the feed is full.
func (pb *PlayByPlay) Add(tick int, label string, team Team, kind PlayKind, msg string) {
	if len(pb.lines) == playMaxLines {
		copy(pb.lines, pb.lines[1:])
		pb.lines = pb.lines[:len(pb.lines)-1]
		if pb.lastGoal >= 0 {
			pb.lastGoal--
		}
	}
	pb.lines = append(pb.lines, Play{Tick: tick, Label: label, Team: team, Kind: kind, Text: msg})
	pb.tally[kind]++
	if kind == PlayGoal {
		pb.lastGoal = len(pb.lines) - 1
	}
}

// Recent returns up to n of the newest lines, oldest first.
func (pb *PlayByPlay) Recent(n int) []Play {
	if n <= 0 || n > len(pb.lines) {
		n = len(pb.lines)
	}
	out := make([]Play, n)
	copy(out, pb.lines[len(pb.lines)-n:])
	return out
}

// Count returns how many lines of kind were added since the feed was made.
func (pb *PlayByPlay) Count(kind PlayKind) int {
	return pb.tally[kind]
}

// LastGoal returns the most recent goal line still in the feed.
func (pb *PlayByPlay) LastGoal() (Play, bool) {
	if pb.lastGoal < 0 {
		return Play{}, false
	}
	return pb.lines[pb.lastGoal], true
}

// Draw renders the commentary panel at panelX. The header carries the score
// and, during a goal freeze, the time left before the faceoff. Everything
// since the latest goal sits on a band in the scorer's colour.
func (pb *PlayByPlay) Draw(screen *ebiten.Image, panelX, panelH int, snap Snapshot) {
	px, pw := float32(panelX), float32(playPanelWidth)
	vector.FillRect(screen, px, 0, pw, float32(panelH), color.RGBA{R: 10, G: 12, B: 20, A: 248}, false)
	vector.StrokeLine(screen, px, 0, px, float32(panelH), 1, color.RGBA{R: 50, G: 60, B: 90, A: 255}, false)
	vector.FillRect(screen, px, 0, pw, playHeaderH, color.RGBA{R: 20, G: 26, B: 44, A: 255}, false)

	header := fmt.Sprintf("PLAY BY PLAY   L %d - %d R", snap.Goals[0].Score, snap.Goals[1].Score)
	ebitenutil.DebugPrintAt(screen, header, panelX+8, 1)
	status := fmt.Sprintf("T=%d  live", snap.Tick)
	if snap.Frozen {
		status = fmt.Sprintf("T=%d  faceoff in %.1fs", snap.Tick, snap.FreezeLeft.Round(100*time.Millisecond).Seconds())
	}
	ebitenutil.DebugPrintAt(screen, status, panelX+8, 14)

	maxVisible := (panelH - playHeaderH - 4) / playLineHeight
	lines := pb.Recent(maxVisible)
	firstHot := len(lines)
	if pb.lastGoal >= 0 {
		firstHot = pb.lastGoal - (len(pb.lines) - len(lines))
		if firstHot < 0 {
			firstHot = 0
		}
	}

	y := playHeaderH + 4
	for i, p := range lines {
		if i >= firstHot {
			band := teamColor(pb.lines[pb.lastGoal].Team)
			band.A = 40
			vector.FillRect(screen, px+2, float32(y), pw-4, playLineHeight, band, false)
		}
		if p.Label != "--" || p.Kind == PlayGoal {
			vector.FillRect(screen, px+5, float32(y+3), 3, 5, teamColor(p.Team), false)
		}
		vector.FillRect(screen, px+10, float32(y+3), 3, 5, p.Kind.color(), false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%4d %-5s %-3s %s", p.Tick, p.Kind, p.Label, p.Text), panelX+16, y)
		y += playLineHeight
	}
}
