package domain

import (
	"fmt"
	"math"
	"strings"
)

// ShapeKind selects which CAD primitive a parameter record describes.
// The numeric value is the discriminant stored in the first slot of the
// flattened parameter vector.
type ShapeKind int

// Supported primitives. Box and cube share a discriminant: a cube is a
// box with three equal sides, and both materialize as the same feature
// type. The gaps in the numbering are reserved for shapes that are not
// supported yet (ellipsoid, prism, wedge, spiral, ellipse, polygon).
const (
	KindPlane    ShapeKind = 1
	KindCube     ShapeKind = 2
	KindBox      ShapeKind = 2
	KindCylinder ShapeKind = 3
	KindCone     ShapeKind = 4
	KindSphere   ShapeKind = 5
	KindTorus    ShapeKind = 7
	KindHelix    ShapeKind = 10
	KindCircle   ShapeKind = 12
)

var kindNames = map[ShapeKind]string{
	KindPlane:    "plane",
	KindCube:     "cube",
	KindCylinder: "cylinder",
	KindCone:     "cone",
	KindSphere:   "sphere",
	KindTorus:    "torus",
	KindHelix:    "helix",
	KindCircle:   "circle",
}

// String returns the lowercase shape name. The shared box/cube
// discriminant prints as "cube".
func (k ShapeKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("shapekind(%d)", int(k))
}

// Valid reports whether k is a supported discriminant.
func (k ShapeKind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// ParseShapeKind maps a case-insensitive shape name to its kind.
func ParseShapeKind(s string) (ShapeKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plane":
		return KindPlane, nil
	case "cube", "box":
		return KindCube, nil
	case "cylinder":
		return KindCylinder, nil
	case "cone":
		return KindCone, nil
	case "sphere":
		return KindSphere, nil
	case "torus":
		return KindTorus, nil
	case "helix":
		return KindHelix, nil
	case "circle":
		return KindCircle, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedShape, s)
	}
}

// KindFromValue maps a numeric discriminant back to a shape kind. Model
// output is continuous, so the value is rounded to the nearest integer
// before the lookup.
func KindFromValue(v float64) (ShapeKind, error) {
	k := ShapeKind(int(math.Round(v)))
	if !k.Valid() {
		return 0, fmt.Errorf("%w: value %g", ErrUnsupportedShape, v)
	}
	return k, nil
}
