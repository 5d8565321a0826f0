package domain

import "fmt"

// VectorLen is the fixed width of a flattened parameter vector: the
// shape discriminant followed by eight numeric fields.
const VectorLen = 9

// Slot indices within the flattened vector. The layout is fixed for
// every kind; slots that are not meaningful for a kind stay zero.
const (
	SlotShape = iota
	SlotLength
	SlotWidth
	SlotHeight
	SlotRadius
	SlotRadius1
	SlotRadius2
	SlotPitch
	SlotAngle
)

// Parameters holds the geometric parameters of a single primitive.
// Fields that are not meaningful for the kind default to zero. Records
// are immutable after construction: they are built by a generator or by
// decoding a model output vector, then consumed once.
type Parameters struct {
	Shape   ShapeKind
	Length  float64
	Width   float64
	Height  float64
	Radius  float64
	Radius1 float64
	Radius2 float64
	Pitch   float64
	Angle   float64
}

// Vector flattens the parameters into the fixed 9-slot layout
// [shape, length, width, height, radius, radius1, radius2, pitch, angle].
func (p Parameters) Vector() []float64 {
	return []float64{
		float64(p.Shape),
		p.Length,
		p.Width,
		p.Height,
		p.Radius,
		p.Radius1,
		p.Radius2,
		p.Pitch,
		p.Angle,
	}
}

// ParametersFromVector rebuilds a canonical Parameters record from a
// flattened vector, keeping only the fields relevant to the kind.
func ParametersFromVector(kind ShapeKind, vec []float64) (Parameters, error) {
	if len(vec) != VectorLen {
		return Parameters{}, fmt.Errorf("%w, got %d", ErrBadVectorLen, len(vec))
	}
	switch kind {
	case KindPlane:
		return Parameters{Shape: kind, Length: vec[SlotLength], Width: vec[SlotWidth]}, nil
	case KindCube: // covers box, same discriminant
		return Parameters{
			Shape:  kind,
			Length: vec[SlotLength],
			Width:  vec[SlotWidth],
			Height: vec[SlotHeight],
		}, nil
	case KindCylinder:
		return Parameters{Shape: kind, Radius: vec[SlotRadius], Height: vec[SlotHeight]}, nil
	case KindCone:
		return Parameters{
			Shape:   kind,
			Radius1: vec[SlotRadius1],
			Radius2: vec[SlotRadius2],
			Height:  vec[SlotHeight],
		}, nil
	case KindSphere:
		return Parameters{Shape: kind, Radius: vec[SlotRadius]}, nil
	case KindTorus:
		return Parameters{Shape: kind, Radius1: vec[SlotRadius1], Radius2: vec[SlotRadius2]}, nil
	case KindHelix:
		return Parameters{
			Shape:  kind,
			Pitch:  vec[SlotPitch],
			Height: vec[SlotHeight],
			Radius: vec[SlotRadius],
			Angle:  vec[SlotAngle],
		}, nil
	case KindCircle:
		return Parameters{Shape: kind, Radius: vec[SlotRadius]}, nil
	default:
		return Parameters{}, fmt.Errorf("%w: %d", ErrUnsupportedShape, int(kind))
	}
}
