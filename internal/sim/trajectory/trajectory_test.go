package trajectory

import (
	"errors"
	"math"
	"testing"

	"flightpath-sim/pkg/types"
)

const eps = 1e-9

func mustNew(t *testing.T, waypoints []types.Waypoint, start, end float64) *Trajectory {
	t.Helper()
	tr, err := New("TEST", waypoints, start, end)
	if err != nil {
		t.Fatalf("unexpected construction error: %v", err)
	}
	return tr
}

func TestNewInvalid(t *testing.T) {
	cases := []struct {
		name      string
		waypoints []types.Waypoint
		start     float64
		end       float64
	}{
		{
			name:      "single waypoint",
			waypoints: []types.Waypoint{types.NewVec3(0, 0, 0)},
			start:     0, end: 10,
		},
		{
			name:      "no waypoints",
			waypoints: nil,
			start:     0, end: 10,
		},
		{
			name:      "equal start and end time",
			waypoints: []types.Waypoint{types.NewVec3(0, 0, 0), types.NewVec3(1, 0, 0)},
			start:     5, end: 5,
		},
		{
			name:      "end before start",
			waypoints: []types.Waypoint{types.NewVec3(0, 0, 0), types.NewVec3(1, 0, 0)},
			start:     10, end: 0,
		},
		{
			name:      "coincident waypoints",
			waypoints: []types.Waypoint{types.NewVec3(3, 4, 5), types.NewVec3(3, 4, 5)},
			start:     0, end: 10,
		},
	}

	for _, c := range cases {
		if _, err := New("BAD", c.waypoints, c.start, c.end); !errors.Is(err, ErrInvalidTrajectory) {
			t.Errorf("%s: got %v, expected ErrInvalidTrajectory", c.name, err)
		}
	}
}

func TestSegmentTimesSumToDuration(t *testing.T) {
	tr := mustNew(t, []types.Waypoint{
		types.NewVec3(0, 0, 0),
		types.NewVec3(10, 0, 0),
		types.NewVec3(10, 5, 0),
		types.NewVec3(10, 5, 7),
	}, 2, 13.5)

	sum := 0.0
	for _, st := range tr.SegmentTimes() {
		sum += st
	}
	if math.Abs(sum-tr.Duration()) > eps {
		t.Errorf("segment times sum to %g, expected duration %g", sum, tr.Duration())
	}
}

func TestSegmentTimesProportionalToLength(t *testing.T) {
	// Segments of length 10 and 20 over 3 seconds get 1s and 2s.
	tr := mustNew(t, []types.Waypoint{
		types.NewVec3(0, 0, 0),
		types.NewVec3(10, 0, 0),
		types.NewVec3(30, 0, 0),
	}, 0, 3)

	st := tr.SegmentTimes()
	if math.Abs(st[0]-1) > eps || math.Abs(st[1]-2) > eps {
		t.Errorf("got segment times %v, expected [1 2]", st)
	}

	p := tr.PositionAt(1)
	if math.Abs(p.X-10) > eps {
		t.Errorf("at the first segment boundary got X=%g, expected 10", p.X)
	}
	p = tr.PositionAt(2)
	if math.Abs(p.X-20) > eps {
		t.Errorf("halfway along the second segment got X=%g, expected 20", p.X)
	}
}

func TestPositionAtEndpointsAndClamps(t *testing.T) {
	first := types.NewVec3(1, 2, 3)
	last := types.NewVec3(7, 8, 9)
	tr := mustNew(t, []types.Waypoint{first, types.NewVec3(4, 4, 4), last}, 10, 20)

	cases := []struct {
		t    float64
		want types.Vec3
	}{
		{10, first},
		{20, last},
		{-5, first},
		{9.999, first},
		{20.001, last},
		{1e9, last},
	}
	for _, c := range cases {
		if got := tr.PositionAt(c.t); got != c.want {
			t.Errorf("PositionAt(%g) = %v, expected %v", c.t, got, c.want)
		}
	}
}

func TestPositionAtLinear(t *testing.T) {
	tr := mustNew(t, []types.Waypoint{
		types.NewVec3(0, 0, 0),
		types.NewVec3(10, -20, 30),
	}, 0, 10)

	for _, ti := range []float64{0.5, 1, 2.5, 5, 7.75, 9.5} {
		got := tr.PositionAt(ti)
		want := types.NewVec3(ti, -2*ti, 3*ti)
		if got.DistanceTo(want) > 1e-9 {
			t.Errorf("PositionAt(%g) = %v, expected %v", ti, got, want)
		}
	}
}

func TestPositionAtSkipsZeroLengthSegment(t *testing.T) {
	// Repeated waypoint at (5,0,0): zero-length middle segment.
	tr := mustNew(t, []types.Waypoint{
		types.NewVec3(0, 0, 0),
		types.NewVec3(5, 0, 0),
		types.NewVec3(5, 0, 0),
		types.NewVec3(10, 0, 0),
	}, 0, 10)

	for _, c := range []struct {
		t     float64
		wantX float64
	}{
		{2.5, 2.5},
		{5, 5},
		{7.5, 7.5},
	} {
		got := tr.PositionAt(c.t)
		if math.Abs(got.X-c.wantX) > 1e-9 || got.Y != 0 || got.Z != 0 {
			t.Errorf("PositionAt(%g) = %v, expected X=%g", c.t, got, c.wantX)
		}
	}
}

func TestPositionAtContinuousAcrossBoundaries(t *testing.T) {
	tr := mustNew(t, []types.Waypoint{
		types.NewVec3(0, 0, 0),
		types.NewVec3(3, 4, 0),
		types.NewVec3(3, 4, 12),
	}, 1, 9)

	// Sample densely; consecutive positions must stay close for a small dt.
	prev := tr.PositionAt(1)
	for ti := 1.001; ti <= 9; ti += 0.001 {
		p := tr.PositionAt(ti)
		if p.DistanceTo(prev) > 0.01 {
			t.Fatalf("discontinuity at t=%g: %v -> %v", ti, prev, p)
		}
		prev = p
	}
}

func TestBounds(t *testing.T) {
	tr := mustNew(t, []types.Waypoint{
		types.NewVec3(5, -1, 100),
		types.NewVec3(-3, 7, 50),
		types.NewVec3(2, 0, 200),
	}, 0, 1)

	lo, hi := tr.Bounds()
	if lo != types.NewVec3(-3, -1, 50) {
		t.Errorf("got lower bound %v, expected (-3,-1,50)", lo)
	}
	if hi != types.NewVec3(5, 7, 200) {
		t.Errorf("got upper bound %v, expected (5,7,200)", hi)
	}
}
