package domain

import "math"

// Object3D is a materialization request for a single primitive. The
// parameter field holds the 8-slot tail of the flattened vector, in the
// same slot order the model is trained against.
type Object3D struct {
	Kind        ShapeKind
	Parameters  []float64
	Translation Translation
	Rotation    RotationEuler
}

// NewObject3D builds a posed materialization request from canonical
// parameters.
func NewObject3D(p Parameters, t Translation, r RotationEuler) Object3D {
	return Object3D{
		Kind:        p.Shape,
		Parameters:  p.Vector()[1:],
		Translation: t,
		Rotation:    r,
	}
}

// Params rebuilds the canonical parameter record for the object's kind.
func (o Object3D) Params() (Parameters, error) {
	vec := make([]float64, 0, VectorLen)
	vec = append(vec, float64(o.Kind))
	vec = append(vec, o.Parameters...)
	return ParametersFromVector(o.Kind, vec)
}

// DecodeOutputVector turns a raw model output vector into an
// instantiation request. Negative predictions are clamped to their
// magnitude, the first slot is rounded to the nearest supported
// discriminant, and the pose is zero — pose prediction is not part of
// the inference path.
func DecodeOutputVector(vec []float64) (Object3D, error) {
	if len(vec) != VectorLen {
		return Object3D{}, ErrBadVectorLen
	}
	abs := make([]float64, len(vec))
	for i, v := range vec {
		abs[i] = math.Abs(v)
	}
	kind, err := KindFromValue(abs[0])
	if err != nil {
		return Object3D{}, err
	}
	return Object3D{Kind: kind, Parameters: abs[1:]}, nil
}
