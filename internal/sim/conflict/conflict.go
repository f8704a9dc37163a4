package conflict

import (
	"math"

	"flightpath-sim/internal/sim/trajectory"
	"flightpath-sim/pkg/types"
)

// Record describes the first separation violation found by Detect.
type Record struct {
	// Time is the sample time of the violation.
	Time float64
	// Location is the primary vehicle's position at Time.
	Location types.Vec3
	// OtherIndex is the index into the others slice passed to Detect.
	OtherIndex int
	// Distance is the measured separation, always < the buffer radius.
	Distance float64
}

// Detect scans the primary trajectory against every other trajectory over
// their combined time window, sampling every timeStep from the earliest
// start to the latest end (the window end is always sampled, even when the
// window is not an exact multiple of timeStep). It returns the first
// violation in time order; within one sample time, the lowest-index other
// trajectory wins.
//
// Detection is only as precise as timeStep: a conflict that begins and
// clears entirely between two consecutive samples is not seen. Shrinking
// timeStep trades scan cost for recall.
func Detect(primary *trajectory.Trajectory, others []*trajectory.Trajectory, bufferRadius, timeStep float64) (Record, bool) {
	if len(others) == 0 || timeStep <= 0 {
		return Record{}, false
	}

	tStart := primary.StartTime
	tEnd := primary.EndTime
	for _, other := range others {
		tStart = math.Min(tStart, other.StartTime)
		tEnd = math.Max(tEnd, other.EndTime)
	}

	t := tStart
	for {
		p := primary.PositionAt(t)
		for i, other := range others {
			q := other.PositionAt(t)
			d := p.DistanceTo(q)
			if d >= bufferRadius {
				continue
			}
			// At the very start of the scan a trajectory that has not
			// begun yet can sit at the world origin by default; proximity
			// there is an artifact, not a violation.
			if t == 0 && (p.IsZero() || q.IsZero()) {
				continue
			}
			return Record{Time: t, Location: p, OtherIndex: i, Distance: d}, true
		}
		if t >= tEnd {
			break
		}
		t += timeStep
		if t > tEnd {
			t = tEnd
		}
	}
	return Record{}, false
}
