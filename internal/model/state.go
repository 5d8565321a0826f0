package model

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// StateDict exports the weights keyed by layer name, row-major. The
// returned slices are copies.
func (p *Predictor) StateDict() map[string][]float64 {
	return map[string][]float64{
		"fc1.weight": cloneSlice(p.w1.RawMatrix().Data),
		"fc1.bias":   cloneSlice(p.b1.RawVector().Data),
		"fc2.weight": cloneSlice(p.w2.RawMatrix().Data),
		"fc2.bias":   cloneSlice(p.b2.RawVector().Data),
	}
}

// LoadStateDict replaces the weights. Every layer must be present with
// exactly the element count the network dimensions imply; a mismatch is
// an error, not a silent misconstruction.
func (p *Predictor) LoadStateDict(state map[string][]float64) error {
	layers := []struct {
		name string
		want int
		dst  []float64
	}{
		{"fc1.weight", p.hiddenDim * p.inputDim, p.w1.RawMatrix().Data},
		{"fc1.bias", p.hiddenDim, p.b1.RawVector().Data},
		{"fc2.weight", p.outputDim * p.hiddenDim, p.w2.RawMatrix().Data},
		{"fc2.bias", p.outputDim, p.b2.RawVector().Data},
	}

	for _, l := range layers {
		data, ok := state[l.name]
		if !ok {
			return fmt.Errorf("model: state is missing layer %q", l.name)
		}
		if len(data) != l.want {
			return fmt.Errorf("model: layer %q has %d elements, dimensions require %d",
				l.name, len(data), l.want)
		}
	}
	for _, l := range layers {
		copy(l.dst, state[l.name])
	}
	return nil
}

// NewFromState builds a predictor with the given dimensions and loads
// the stored weights, failing fast when the shapes disagree.
func NewFromState(inputDim, hiddenDim, outputDim int, state map[string][]float64) (*Predictor, error) {
	if inputDim <= 0 || hiddenDim <= 0 || outputDim <= 0 {
		return nil, fmt.Errorf("model: dimensions must be positive, got %d/%d/%d",
			inputDim, hiddenDim, outputDim)
	}
	p := &Predictor{
		inputDim:  inputDim,
		hiddenDim: hiddenDim,
		outputDim: outputDim,
		w1:        mat.NewDense(hiddenDim, inputDim, nil),
		b1:        mat.NewVecDense(hiddenDim, nil),
		w2:        mat.NewDense(outputDim, hiddenDim, nil),
		b2:        mat.NewVecDense(outputDim, nil),
	}
	if err := p.LoadStateDict(state); err != nil {
		return nil, err
	}
	return p, nil
}

func cloneSlice(s []float64) []float64 {
	out := make([]float64, len(s))
	copy(out, s)
	return out
}
