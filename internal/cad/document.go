// Package cad materializes shape instantiation requests as FCStd
// documents, the zip-packed XML format FreeCAD opens natively.
package cad

import (
	"fmt"

	"github.com/monicapserrano/text-to-cad/internal/domain"
)

// featureTypes maps each shape kind to its document feature type.
var featureTypes = map[domain.ShapeKind]string{
	domain.KindPlane:    "Part::Plane",
	domain.KindCube:     "Part::Box",
	domain.KindCylinder: "Part::Cylinder",
	domain.KindCone:     "Part::Cone",
	domain.KindSphere:   "Part::Sphere",
	domain.KindTorus:    "Part::Torus",
	domain.KindHelix:    "Part::Helix",
	domain.KindCircle:   "Part::Circle",
}

// objectName builds the document object name, e.g. "Sphere_1".
func objectName(kind domain.ShapeKind, i int) string {
	name := kind.String()
	return fmt.Sprintf("%s%s_%d", string(name[0]-'a'+'A'), name[1:], i)
}

// numericProperty is a named dimension on a document object.
type numericProperty struct {
	name  string
	typ   string
	value float64
}

// properties lists the kind-relevant dimensions in document order.
func properties(p domain.Parameters) ([]numericProperty, error) {
	length := func(name string, v float64) numericProperty {
		return numericProperty{name: name, typ: "App::PropertyLength", value: v}
	}
	angle := func(name string, v float64) numericProperty {
		return numericProperty{name: name, typ: "App::PropertyAngle", value: v}
	}

	switch p.Shape {
	case domain.KindPlane:
		return []numericProperty{length("Length", p.Length), length("Width", p.Width)}, nil
	case domain.KindCube:
		return []numericProperty{
			length("Length", p.Length), length("Width", p.Width), length("Height", p.Height),
		}, nil
	case domain.KindCylinder:
		return []numericProperty{length("Radius", p.Radius), length("Height", p.Height)}, nil
	case domain.KindCone:
		return []numericProperty{
			length("Radius1", p.Radius1), length("Radius2", p.Radius2), length("Height", p.Height),
		}, nil
	case domain.KindSphere:
		return []numericProperty{length("Radius", p.Radius)}, nil
	case domain.KindTorus:
		return []numericProperty{length("Radius1", p.Radius1), length("Radius2", p.Radius2)}, nil
	case domain.KindHelix:
		return []numericProperty{
			length("Pitch", p.Pitch), length("Height", p.Height),
			length("Radius", p.Radius), angle("Angle", p.Angle),
		}, nil
	case domain.KindCircle:
		return []numericProperty{length("Radius", p.Radius)}, nil
	default:
		return nil, fmt.Errorf("%w: %d", domain.ErrUnsupportedShape, int(p.Shape))
	}
}
