package types

import "math"

type VehicleID string

// Vec3 is a point or displacement in simulation space. Z is altitude.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

func NewVec3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

func (v1 Vec3) DistanceTo(v2 Vec3) float64 {
	dx := v1.X - v2.X
	dy := v1.Y - v2.Y
	dz := v1.Z - v2.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Lerp returns the point a fraction t of the way from v1 to v2.
func (v1 Vec3) Lerp(v2 Vec3, t float64) Vec3 {
	return Vec3{
		X: v1.X + t*(v2.X-v1.X),
		Y: v1.Y + t*(v2.Y-v1.Y),
		Z: v1.Z + t*(v2.Z-v1.Z),
	}
}

func (v1 Vec3) IsZero() bool {
	return v1.X == 0 && v1.Y == 0 && v1.Z == 0
}

// Waypoint is a single position a vehicle passes through. It has no
// identity beyond its coordinates.
type Waypoint = Vec3
