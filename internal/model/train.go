package model

import (
	"gonum.org/v1/gonum/mat"
)

// TrainEpoch runs one pass of mini-batch gradient descent over the
// training set, in order, dropping the last partial batch. Returns the
// mean batch loss, or zero when the set holds no full batch.
func (p *Predictor) TrainEpoch(x, y *mat.Dense, opt *Adam, batchSize int) float64 {
	n, _ := x.Dims()
	numBatches := n / batchSize
	if numBatches == 0 {
		return 0
	}

	var total float64
	for i := 0; i < numBatches; i++ {
		lo, hi := i*batchSize, (i+1)*batchSize
		xb := x.Slice(lo, hi, 0, p.inputDim).(*mat.Dense)
		yb := y.Slice(lo, hi, 0, p.outputDim).(*mat.Dense)
		total += p.step(xb, yb, opt)
	}
	return total / float64(numBatches)
}

// Evaluate computes the mean batch MSE without updating weights, with
// the same truncating batch policy as TrainEpoch.
func (p *Predictor) Evaluate(x, y *mat.Dense, batchSize int) float64 {
	n, _ := x.Dims()
	numBatches := n / batchSize
	if numBatches == 0 {
		return 0
	}

	var total float64
	for i := 0; i < numBatches; i++ {
		lo, hi := i*batchSize, (i+1)*batchSize
		xb := x.Slice(lo, hi, 0, p.inputDim).(*mat.Dense)
		yb := y.Slice(lo, hi, 0, p.outputDim).(*mat.Dense)
		total += mse(p.Forward(xb), yb)
	}
	return total / float64(numBatches)
}

// step runs forward and backward passes on one batch and applies the
// optimizer update. Returns the batch loss.
func (p *Predictor) step(xb, yb *mat.Dense, opt *Adam) float64 {
	n, _ := xb.Dims()

	// Forward, keeping the pre-activation for the ReLU gradient.
	var z mat.Dense // n x hidden
	z.Mul(xb, p.w1.T())
	addBias(&z, p.b1)

	var h mat.Dense
	h.CloneFrom(&z)
	reluInPlace(&h)

	var out mat.Dense // n x output
	out.Mul(&h, p.w2.T())
	addBias(&out, p.b2)

	// MSE over every element; dL/dOut = 2 (out - y) / (n * outputDim).
	var diff mat.Dense
	diff.Sub(&out, yb)
	loss := sumSquares(&diff) / float64(n*p.outputDim)

	var dOut mat.Dense
	dOut.Scale(2.0/float64(n*p.outputDim), &diff)

	var dW2 mat.Dense // output x hidden
	dW2.Mul(dOut.T(), &h)
	db2 := colSums(&dOut)

	var dH mat.Dense // n x hidden
	dH.Mul(&dOut, p.w2)
	zeroWhereInactive(&dH, &z)

	var dW1 mat.Dense // hidden x input
	dW1.Mul(dH.T(), xb)
	db1 := colSums(&dH)

	opt.Update("fc1.weight", p.w1.RawMatrix().Data, dW1.RawMatrix().Data)
	opt.Update("fc1.bias", p.b1.RawVector().Data, db1)
	opt.Update("fc2.weight", p.w2.RawMatrix().Data, dW2.RawMatrix().Data)
	opt.Update("fc2.bias", p.b2.RawVector().Data, db2)

	return loss
}

// mse is the mean squared error over every element of the batch.
func mse(pred, target *mat.Dense) float64 {
	var diff mat.Dense
	diff.Sub(pred, target)
	r, c := diff.Dims()
	return sumSquares(&diff) / float64(r*c)
}

func sumSquares(m *mat.Dense) float64 {
	r, c := m.Dims()
	var sum float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := m.At(i, j)
			sum += v * v
		}
	}
	return sum
}

// colSums sums m over rows, yielding one value per column.
func colSums(m *mat.Dense) []float64 {
	r, c := m.Dims()
	sums := make([]float64, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			sums[j] += m.At(i, j)
		}
	}
	return sums
}

// zeroWhereInactive zeroes grad entries where the pre-activation was
// not positive.
func zeroWhereInactive(grad, z *mat.Dense) {
	r, c := grad.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if z.At(i, j) <= 0 {
				grad.Set(i, j, 0)
			}
		}
	}
}
