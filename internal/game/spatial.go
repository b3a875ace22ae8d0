package game

import (
	"sort"

	"github.com/dhconnelly/rtreego"

	"github.com/Garsondee/Rink-Sense/internal/vmath"
)

const (
	spatialMinChildren = 2
	spatialMaxChildren = 8
	spatialPointSize   = 0.01 // side of the box standing in for an athlete's point
)

// rosterEntry is an athlete's point in the broad-phase tree, tagged with its
// roster index so query results can be put back into roster order.
type rosterEntry struct {
	index  int
	bounds rtreego.Rect
}

func (e *rosterEntry) Bounds() rtreego.Rect {
	return e.bounds
}

// spatialIndex is an R-tree over athlete positions, rebuilt once per frame
// after integration.
type spatialIndex struct {
	tree   *rtreego.Rtree
	points []vmath.Vec2
}

func newSpatialIndex() *spatialIndex {
	return &spatialIndex{tree: rtreego.NewTree(2, spatialMinChildren, spatialMaxChildren)}
}

// rebuild indexes the current roster positions.
func (si *spatialIndex) rebuild(roster []*Athlete) {
	si.tree = rtreego.NewTree(2, spatialMinChildren, spatialMaxChildren)
	si.points = si.points[:0]
	for i, a := range roster {
		p := a.body.Position
		si.points = append(si.points, p)
		r, err := rtreego.NewRect(rtreego.Point{p.X(), p.Y()}, []float64{spatialPointSize, spatialPointSize})
		if err != nil {
			continue
		}
		si.tree.Insert(&rosterEntry{index: i, bounds: r})
	}
}

// within returns, in ascending roster order, the indices of athletes strictly
// closer than radius to p.
func (si *spatialIndex) within(p vmath.Vec2, radius float64) []int {
	if radius <= 0 || len(si.points) == 0 {
		return nil
	}
	box, err := rtreego.NewRect(rtreego.Point{p.X() - radius, p.Y() - radius}, []float64{2 * radius, 2 * radius})
	if err != nil {
		return nil
	}
	var out []int
	for _, hit := range si.tree.SearchIntersect(box) {
		e, ok := hit.(*rosterEntry)
		if !ok {
			continue
		}
		if vmath.Dist(si.points[e.index], p) < radius {
			out = append(out, e.index)
		}
	}
	sort.Ints(out)
	return out
}
