package game

import (
	"reflect"
	"testing"

	"github.com/Garsondee/Rink-Sense/internal/vmath"
)

func testRoster(t *testing.T, points ...vmath.Vec2) []*Athlete {
	t.Helper()
	out := make([]*Athlete, len(points))
	for i, p := range points {
		a, err := newAthlete(i, i, TeamLeft, p, DefaultTuning())
		if err != nil {
			t.Fatalf("newAthlete: %v", err)
		}
		out[i] = a
	}
	return out
}

func TestSpatialIndex_WithinIsRosterOrdered(t *testing.T) {
	roster := testRoster(t,
		vmath.V(120, 100),
		vmath.V(500, 500),
		vmath.V(100, 110),
		vmath.V(100, 100),
	)
	si := newSpatialIndex()
	si.rebuild(roster)

	got := si.within(vmath.V(100, 100), 25)
	if want := []int{0, 2, 3}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSpatialIndex_StrictRadius(t *testing.T) {
	si := newSpatialIndex()
	si.rebuild(testRoster(t, vmath.V(0, 0), vmath.V(30, 0)))

	if got := si.within(vmath.V(0, 0), 30); !reflect.DeepEqual(got, []int{0}) {
		t.Fatalf("expected an athlete exactly at the radius to be excluded, got %v", got)
	}
	if got := si.within(vmath.V(0, 0), 0); got != nil {
		t.Fatalf("expected no hits for a zero radius, got %v", got)
	}
}

func TestSpatialIndex_RebuildTracksMoves(t *testing.T) {
	roster := testRoster(t, vmath.V(100, 100))
	si := newSpatialIndex()
	si.rebuild(roster)

	roster[0].body.Position = vmath.V(900, 600)
	si.rebuild(roster)
	if got := si.within(vmath.V(100, 100), 10); len(got) != 0 {
		t.Fatalf("expected the old position to be gone, got %v", got)
	}
	if got := si.within(vmath.V(900, 600), 10); !reflect.DeepEqual(got, []int{0}) {
		t.Fatalf("expected a hit at the new position, got %v", got)
	}
}
