package domain

import "math"

// Translation is a displacement along the document axes, independent of
// the shape kind.
type Translation struct {
	X float64
	Y float64
	Z float64
}

// RotationEuler is a rotation given as Euler angles in radians around
// the x, y and z axes.
type RotationEuler struct {
	XRad float64
	YRad float64
	ZRad float64
}

// Quaternion is the (x, y, z, w) rotation form used by document
// placements.
type Quaternion struct {
	X float64
	Y float64
	Z float64
	W float64
}

// Quaternion converts the Euler angles to a unit quaternion using the
// ZYX (yaw-pitch-roll) convention.
func (r RotationEuler) Quaternion() Quaternion {
	cr := math.Cos(r.XRad / 2)
	sr := math.Sin(r.XRad / 2)
	cp := math.Cos(r.YRad / 2)
	sp := math.Sin(r.YRad / 2)
	cy := math.Cos(r.ZRad / 2)
	sy := math.Sin(r.ZRad / 2)

	return Quaternion{
		X: sr*cp*cy - cr*sp*sy,
		Y: cr*sp*cy + sr*cp*sy,
		Z: cr*cp*sy - sr*sp*cy,
		W: cr*cp*cy + sr*sp*sy,
	}
}
