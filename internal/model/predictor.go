// Package model implements the CAD parameter regression network: a
// two-layer fully connected net with a ReLU nonlinearity, trained
// against mean squared error.
package model

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Predictor maps bag-of-words feature vectors to the 9-slot parameter
// vector. Given fixed weights the forward pass is deterministic.
type Predictor struct {
	inputDim  int
	hiddenDim int
	outputDim int

	w1 *mat.Dense    // hiddenDim x inputDim
	b1 *mat.VecDense // hiddenDim
	w2 *mat.Dense    // outputDim x hiddenDim
	b2 *mat.VecDense // outputDim
}

// NewPredictor creates a network with Kaiming-uniform initialized
// weights, the same scheme torch applies to linear layers.
func NewPredictor(inputDim, hiddenDim, outputDim int, rng *rand.Rand) (*Predictor, error) {
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

	initUniform(p.w1.RawMatrix().Data, inputDim, rng)
	initUniform(p.b1.RawVector().Data, inputDim, rng)
	initUniform(p.w2.RawMatrix().Data, hiddenDim, rng)
	initUniform(p.b2.RawVector().Data, hiddenDim, rng)

	return p, nil
}

// initUniform fills data with U(-1/sqrt(fanIn), 1/sqrt(fanIn)).
func initUniform(data []float64, fanIn int, rng *rand.Rand) {
	bound := 1.0 / math.Sqrt(float64(fanIn))
	for i := range data {
		data[i] = (rng.Float64()*2 - 1) * bound
	}
}

// Dims returns the input, hidden and output widths.
func (p *Predictor) Dims() (inputDim, hiddenDim, outputDim int) {
	return p.inputDim, p.hiddenDim, p.outputDim
}

// Forward runs the network on a batch laid out one sample per row.
func (p *Predictor) Forward(x *mat.Dense) *mat.Dense {
	var z mat.Dense
	z.Mul(x, p.w1.T())
	addBias(&z, p.b1)
	reluInPlace(&z)

	var out mat.Dense
	out.Mul(&z, p.w2.T())
	addBias(&out, p.b2)
	return &out
}

// Predict runs a single feature vector through the network.
func (p *Predictor) Predict(features []float64) ([]float64, error) {
	if len(features) != p.inputDim {
		return nil, fmt.Errorf("model: feature vector has %d slots, input width is %d",
			len(features), p.inputDim)
	}
	row := make([]float64, len(features))
	copy(row, features)

	out := p.Forward(mat.NewDense(1, p.inputDim, row))
	return mat.Row(nil, 0, out), nil
}

// addBias adds b to every row of m.
func addBias(m *mat.Dense, b *mat.VecDense) {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.Set(i, j, m.At(i, j)+b.AtVec(j))
		}
	}
}

func reluInPlace(m *mat.Dense) {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if m.At(i, j) < 0 {
				m.Set(i, j, 0)
			}
		}
	}
}
