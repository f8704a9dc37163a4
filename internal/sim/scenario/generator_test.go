package scenario

import (
	"testing"

	"flightpath-sim/internal/sim/trajectory"
	"flightpath-sim/pkg/types"
)

func refTrajectory(t *testing.T) *trajectory.Trajectory {
	t.Helper()
	tr, err := trajectory.New("UAV1", []types.Waypoint{
		types.NewVec3(0, 0, 1000),
		types.NewVec3(50, 80, 1200),
		types.NewVec3(100, 20, 1500),
	}, 10, 70)
	if err != nil {
		t.Fatalf("unexpected construction error: %v", err)
	}
	return tr
}

func TestSpreadCountAndValidity(t *testing.T) {
	ref := refTrajectory(t)
	gen := NewGenerator(1)

	const n = 7
	traffic, err := gen.Spread(ref, n, 5.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(traffic) != n {
		t.Fatalf("got %d trajectories, expected %d", len(traffic), n)
	}

	lo, hi := ref.Bounds()
	for i, tr := range traffic {
		wps := tr.Waypoints()
		if len(wps) != 2 {
			t.Errorf("traffic %d: got %d waypoints, expected 2", i, len(wps))
		}
		if tr.EndTime <= tr.StartTime {
			t.Errorf("traffic %d: invalid time window [%g, %g]", i, tr.StartTime, tr.EndTime)
		}
		if wps[0].X != lo.X || wps[1].X != hi.X {
			t.Errorf("traffic %d: expected a min-X to max-X crossing, got %v -> %v", i, wps[0], wps[1])
		}
		for _, wp := range wps {
			if wp.Y < lo.Y || wp.Y > hi.Y || wp.Z < lo.Z || wp.Z > hi.Z {
				t.Errorf("traffic %d: waypoint %v outside reference bounds", i, wp)
			}
		}
	}
}

func TestSpreadInteriorPlacement(t *testing.T) {
	ref := refTrajectory(t)
	traffic, err := NewGenerator(3).Spread(ref, 3, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lo, hi := ref.Bounds()
	for i, tr := range traffic {
		frac := float64(i+1) / 4
		wantY := lo.Y + frac*(hi.Y-lo.Y)
		wantZ := lo.Z + frac*(hi.Z-lo.Z)
		wp := tr.Waypoints()[0]
		if wp.Y != wantY || wp.Z != wantZ {
			t.Errorf("traffic %d: placed at (Y=%g, Z=%g), expected (Y=%g, Z=%g)", i, wp.Y, wp.Z, wantY, wantZ)
		}
	}
}

func TestSpreadDeterministicForSeed(t *testing.T) {
	ref := refTrajectory(t)

	first, err := NewGenerator(99).Spread(ref, 5, 8.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := NewGenerator(99).Spread(ref, 5, 8.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range first {
		if first[i].StartTime != second[i].StartTime || first[i].EndTime != second[i].EndTime {
			t.Errorf("traffic %d: time windows differ across runs with the same seed: [%g,%g] vs [%g,%g]",
				i, first[i].StartTime, first[i].EndTime, second[i].StartTime, second[i].EndTime)
		}
		if first[i].Waypoints()[0] != second[i].Waypoints()[0] {
			t.Errorf("traffic %d: waypoints differ across runs with the same seed", i)
		}
	}
}

func TestSpreadDiffersAcrossSeeds(t *testing.T) {
	ref := refTrajectory(t)

	a, err := NewGenerator(1).Spread(ref, 3, 8.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := NewGenerator(2).Spread(ref, 3, 8.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	same := true
	for i := range a {
		if a[i].StartTime != b[i].StartTime || a[i].EndTime != b[i].EndTime {
			same = false
		}
	}
	if same {
		t.Error("different seeds produced identical time jitter")
	}
}

func TestSpreadRejectsFlatReference(t *testing.T) {
	flat, err := trajectory.New("UAV1", []types.Waypoint{
		types.NewVec3(5, 0, 0),
		types.NewVec3(5, 10, 0),
	}, 0, 10)
	if err != nil {
		t.Fatalf("unexpected construction error: %v", err)
	}

	if _, err := NewGenerator(1).Spread(flat, 3, 1.0); err == nil {
		t.Error("expected an error for a reference with no X extent")
	}
}
