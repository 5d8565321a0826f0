package model

import "math"

// Adam implements the Adam update rule with the defaults the training
// pipeline was tuned against (lr 0.001, betas 0.9/0.999, eps 1e-8).
type Adam struct {
	LR    float64
	Beta1 float64
	Beta2 float64
	Eps   float64

	states map[string]*adamState
}

type adamState struct {
	t int
	m []float64
	v []float64
}

// NewAdam creates an optimizer with the given learning rate and default
// moment coefficients.
func NewAdam(lr float64) *Adam {
	return &Adam{
		LR:     lr,
		Beta1:  0.9,
		Beta2:  0.999,
		Eps:    1e-8,
		states: make(map[string]*adamState),
	}
}

// Update applies one Adam step to param in place. Moment estimates are
// tracked per parameter name; each name must be updated exactly once
// per batch.
func (a *Adam) Update(name string, param, grad []float64) {
	st := a.states[name]
	if st == nil {
		st = &adamState{m: make([]float64, len(param)), v: make([]float64, len(param))}
		a.states[name] = st
	}
	st.t++

	corr1 := 1 - math.Pow(a.Beta1, float64(st.t))
	corr2 := 1 - math.Pow(a.Beta2, float64(st.t))

	for i := range param {
		g := grad[i]
		st.m[i] = a.Beta1*st.m[i] + (1-a.Beta1)*g
		st.v[i] = a.Beta2*st.v[i] + (1-a.Beta2)*g*g

		mHat := st.m[i] / corr1
		vHat := st.v[i] / corr2
		param[i] -= a.LR * mHat / (math.Sqrt(vHat) + a.Eps)
	}
}
