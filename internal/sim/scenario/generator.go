package scenario

import (
	"fmt"

	"github.com/MichaelTJones/pcg"
	"github.com/labstack/gommon/log"

	"flightpath-sim/internal/sim/trajectory"
	"flightpath-sim/pkg/types"
)

// Generator produces auxiliary traffic trajectories from an explicit seed,
// so a scenario regenerates identically for a given (reference, count, seed).
type Generator struct {
	r *pcg.PCG32
}

func NewGenerator(seed int64) *Generator {
	r := pcg.NewPCG32()
	r.Seed(uint64(seed), 0xda3e39cb94b95bdb)
	return &Generator{r: r}
}

func (g *Generator) randFloat() float64 {
	return float64(g.r.Random()) / (1<<32 - 1)
}

func (g *Generator) floatInRange(minF, maxF float64) float64 {
	return minF + g.randFloat()*(maxF-minF)
}

// Spread returns n two-waypoint trajectories crossing the reference
// trajectory's bounding box from its minimum X face to its maximum X face.
// Trajectory i sits at fraction (i+1)/(n+1) of the box's Y and Z extent, so
// the traffic stays interior to the box. Each trajectory's start and end
// times are the reference's, shifted independently by a uniform jitter in
// [-timeJitter, +timeJitter]; a jitter draw that would collapse the time
// window is re-centered to the reference duration instead.
func (g *Generator) Spread(ref *trajectory.Trajectory, n int, timeJitter float64) ([]*trajectory.Trajectory, error) {
	lo, hi := ref.Bounds()
	if hi.X == lo.X {
		return nil, fmt.Errorf("reference trajectory has no X extent to cross")
	}

	out := make([]*trajectory.Trajectory, 0, n)
	for i := 0; i < n; i++ {
		frac := float64(i+1) / float64(n+1)
		y := lo.Y + frac*(hi.Y-lo.Y)
		z := lo.Z + frac*(hi.Z-lo.Z)

		startTime := ref.StartTime + g.floatInRange(-timeJitter, timeJitter)
		endTime := ref.EndTime + g.floatInRange(-timeJitter, timeJitter)
		if endTime <= startTime {
			mid := (startTime + endTime) / 2
			startTime = mid - ref.Duration()/2
			endTime = mid + ref.Duration()/2
		}

		id := types.VehicleID(fmt.Sprintf("TFC%02d", i+1))
		waypoints := []types.Waypoint{
			types.NewVec3(lo.X, y, z),
			types.NewVec3(hi.X, y, z),
		}
		tr, err := trajectory.New(id, waypoints, startTime, endTime)
		if err != nil {
			return nil, fmt.Errorf("traffic %d: %w", i, err)
		}
		log.Printf("Generated traffic %s at (Y=%.1f, Z=%.1f), t=[%.1f, %.1f]", id, y, z, startTime, endTime)
		out = append(out, tr)
	}
	return out, nil
}
