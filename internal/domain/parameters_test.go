package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestVector_AlwaysNineSlots(t *testing.T) {
	cases := []struct {
		name string
		p    Parameters
		want []float64
	}{
		{
			name: "plane",
			p:    Parameters{Shape: KindPlane, Length: 4, Width: 2},
			want: []float64{1, 4, 2, 0, 0, 0, 0, 0, 0},
		},
		{
			name: "box",
			p:    Parameters{Shape: KindBox, Length: 1, Width: 2, Height: 3},
			want: []float64{2, 1, 2, 3, 0, 0, 0, 0, 0},
		},
		{
			name: "cylinder",
			p:    Parameters{Shape: KindCylinder, Radius: 5, Height: 7},
			want: []float64{3, 0, 0, 7, 5, 0, 0, 0, 0},
		},
		{
			name: "cone",
			p:    Parameters{Shape: KindCone, Radius1: 6, Radius2: 2, Height: 9},
			want: []float64{4, 0, 0, 9, 0, 6, 2, 0, 0},
		},
		{
			name: "sphere",
			p:    Parameters{Shape: KindSphere, Radius: 3},
			want: []float64{5, 0, 0, 0, 3, 0, 0, 0, 0},
		},
		{
			name: "torus",
			p:    Parameters{Shape: KindTorus, Radius1: 10, Radius2: 2},
			want: []float64{7, 0, 0, 0, 0, 10, 2, 0, 0},
		},
		{
			name: "helix",
			p:    Parameters{Shape: KindHelix, Pitch: 2, Height: 20, Radius: 4, Angle: 45},
			want: []float64{10, 0, 0, 20, 4, 0, 0, 2, 45},
		},
		{
			name: "circle",
			p:    Parameters{Shape: KindCircle, Radius: 8},
			want: []float64{12, 0, 0, 0, 8, 0, 0, 0, 0},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.p.Vector()
			if len(got) != VectorLen {
				t.Fatalf("vector has %d slots, want %d", len(got), VectorLen)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("vector = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParametersFromVector_RoundTrip(t *testing.T) {
	params := []Parameters{
		{Shape: KindPlane, Length: 3.5, Width: 1.25},
		{Shape: KindCube, Length: 2, Width: 2, Height: 2},
		{Shape: KindCylinder, Radius: 4.5, Height: 12},
		{Shape: KindCone, Radius1: 8, Radius2: 3, Height: 15},
		{Shape: KindSphere, Radius: 3},
		{Shape: KindTorus, Radius1: 20, Radius2: 4},
		{Shape: KindHelix, Pitch: 1.5, Height: 30, Radius: 5, Angle: 270},
		{Shape: KindCircle, Radius: 9},
	}

	for _, p := range params {
		t.Run(p.Shape.String(), func(t *testing.T) {
			got, err := ParametersFromVector(p.Shape, p.Vector())
			if err != nil {
				t.Fatalf("ParametersFromVector: %v", err)
			}
			if got != p {
				t.Errorf("round trip = %+v, want %+v", got, p)
			}
		})
	}
}

func TestParametersFromVector_Errors(t *testing.T) {
	if _, err := ParametersFromVector(KindSphere, []float64{5, 3}); !errors.Is(err, ErrBadVectorLen) {
		t.Errorf("short vector: err = %v, want ErrBadVectorLen", err)
	}

	vec := make([]float64, VectorLen)
	if _, err := ParametersFromVector(ShapeKind(99), vec); !errors.Is(err, ErrUnsupportedShape) {
		t.Errorf("unknown kind: err = %v, want ErrUnsupportedShape", err)
	}
}
