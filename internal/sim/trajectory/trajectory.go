package trajectory

import (
	"errors"
	"fmt"
	"math"

	"flightpath-sim/pkg/types"
)

// ErrInvalidTrajectory is wrapped by every construction failure.
var ErrInvalidTrajectory = errors.New("invalid trajectory")

// timeEpsilon absorbs floating-point residue at segment boundaries so the
// segment walk in PositionAt always terminates.
const timeEpsilon = 1e-9

// Trajectory is a piecewise-linear flight path: ordered waypoints traversed
// between StartTime and EndTime. Each segment is allocated a share of the
// total duration proportional to its spatial length, so the vehicle moves at
// a single constant speed along the whole path. Immutable after New.
type Trajectory struct {
	ID        types.VehicleID
	StartTime float64
	EndTime   float64

	waypoints      []types.Waypoint
	segmentLengths []float64
	segmentTimes   []float64
	totalLength    float64
}

// New validates the inputs and precomputes the segment geometry.
func New(id types.VehicleID, waypoints []types.Waypoint, startTime, endTime float64) (*Trajectory, error) {
	if len(waypoints) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 waypoints, got %d", ErrInvalidTrajectory, len(waypoints))
	}
	if endTime <= startTime {
		return nil, fmt.Errorf("%w: end time %g is not after start time %g", ErrInvalidTrajectory, endTime, startTime)
	}

	wps := append([]types.Waypoint(nil), waypoints...)

	segmentLengths := make([]float64, len(wps)-1)
	totalLength := 0.0
	for i := range segmentLengths {
		segmentLengths[i] = wps[i].DistanceTo(wps[i+1])
		totalLength += segmentLengths[i]
	}
	if totalLength == 0 {
		return nil, fmt.Errorf("%w: all waypoints coincide", ErrInvalidTrajectory)
	}

	duration := endTime - startTime
	segmentTimes := make([]float64, len(segmentLengths))
	for i, l := range segmentLengths {
		segmentTimes[i] = l / totalLength * duration
	}

	return &Trajectory{
		ID:             id,
		StartTime:      startTime,
		EndTime:        endTime,
		waypoints:      wps,
		segmentLengths: segmentLengths,
		segmentTimes:   segmentTimes,
		totalLength:    totalLength,
	}, nil
}

// PositionAt returns the vehicle's position at absolute time t. Times before
// StartTime clamp to the first waypoint and times after EndTime clamp to the
// last. In between, the position is the linear interpolation within the
// segment active at t; zero-length segments are traversed instantaneously.
func (tr *Trajectory) PositionAt(t float64) types.Vec3 {
	if t <= tr.StartTime {
		return tr.waypoints[0]
	}
	if t >= tr.EndTime {
		return tr.waypoints[len(tr.waypoints)-1]
	}

	elapsed := t - tr.StartTime
	for i, segTime := range tr.segmentTimes {
		if segTime <= 0 {
			continue
		}
		if elapsed <= segTime+timeEpsilon {
			ratio := math.Min(elapsed/segTime, 1)
			return tr.waypoints[i].Lerp(tr.waypoints[i+1], ratio)
		}
		elapsed -= segTime
	}

	// Floating-point residue pushed t past the last segment.
	return tr.waypoints[len(tr.waypoints)-1]
}

func (tr *Trajectory) Duration() float64 {
	return tr.EndTime - tr.StartTime
}

func (tr *Trajectory) TotalLength() float64 {
	return tr.totalLength
}

// Waypoints returns the ordered waypoints. Callers must not modify the slice.
func (tr *Trajectory) Waypoints() []types.Waypoint {
	return tr.waypoints
}

// SegmentTimes returns the duration allocated to each segment. The sum equals
// Duration up to floating-point tolerance.
func (tr *Trajectory) SegmentTimes() []float64 {
	return tr.segmentTimes
}

// SegmentLengths returns the Euclidean length of each segment.
func (tr *Trajectory) SegmentLengths() []float64 {
	return tr.segmentLengths
}

// Bounds returns the axis-aligned bounding box of the waypoints.
func (tr *Trajectory) Bounds() (lo, hi types.Vec3) {
	lo, hi = tr.waypoints[0], tr.waypoints[0]
	for _, wp := range tr.waypoints[1:] {
		lo.X = math.Min(lo.X, wp.X)
		lo.Y = math.Min(lo.Y, wp.Y)
		lo.Z = math.Min(lo.Z, wp.Z)
		hi.X = math.Max(hi.X, wp.X)
		hi.Y = math.Max(hi.Y, wp.Y)
		hi.Z = math.Max(hi.Z, wp.Z)
	}
	return lo, hi
}
