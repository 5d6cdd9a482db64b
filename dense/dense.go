// Package dense implements a trainable affine projection layer,
// y = activation(W·x + b), over gonum matrices.
//
// Layers are built with a small configuration builder:
//
//	proj, err := dense.New(inDim, outDim).
//		WithActivation(activations.TypeRelu).
//		WithRand(rng).
//		Done()
//
// The forward pass (Apply) never mutates the weights; an external training
// loop may update them in place through Weights and Bias between forward
// calls.
package dense

import (
	"math"
	"math/rand/v2"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/arbenson/GraphSAGE/activations"
)

// Layer applies activation(W·x + b), mapping vectors of width InputDim to
// vectors of width OutputDim.
type Layer struct {
	weight     *mat.Dense // outDim x inDim
	bias       *mat.VecDense
	activation activations.Type
}

// Config is created with New and configured with its methods; call Done to
// build the Layer.
type Config struct {
	inDim, outDim int
	activation    activations.Type
	rng           *rand.Rand
	weight        *mat.Dense
	bias          *mat.VecDense

	err error
}

// New starts the configuration of a Layer mapping inDim to outDim.
func New(inDim, outDim int) *Config {
	c := &Config{inDim: inDim, outDim: outDim}
	if inDim <= 0 || outDim <= 0 {
		c.err = errors.Errorf("dense.New: dimensions must be > 0, got %d→%d", inDim, outDim)
	}
	return c
}

// WithActivation sets the nonlinearity. The default is activations.TypeNone.
func (c *Config) WithActivation(activation activations.Type) *Config {
	c.activation = activation
	return c
}

// WithRand sets the random stream used to initialize the weights. If not
// set, the process-global stream is used.
func (c *Config) WithRand(rng *rand.Rand) *Config {
	c.rng = rng
	return c
}

// WithWeights sets explicit initial weights and bias instead of the default
// Glorot-uniform initialization. The matrices are retained, not copied.
func (c *Config) WithWeights(weight *mat.Dense, bias *mat.VecDense) *Config {
	if c.err != nil {
		return c
	}
	r, cols := weight.Dims()
	if r != c.outDim || cols != c.inDim {
		c.err = errors.Errorf("dense.WithWeights: weight is %dx%d, layer needs %dx%d",
			r, cols, c.outDim, c.inDim)
		return c
	}
	if bias.Len() != c.outDim {
		c.err = errors.Errorf("dense.WithWeights: bias has length %d, layer needs %d",
			bias.Len(), c.outDim)
		return c
	}
	c.weight, c.bias = weight, bias
	return c
}

// Done builds the Layer.
func (c *Config) Done() (*Layer, error) {
	if c.err != nil {
		return nil, c.err
	}
	l := &Layer{weight: c.weight, bias: c.bias, activation: c.activation}
	if l.weight == nil {
		l.weight = glorotUniform(c.outDim, c.inDim, c.rng)
	}
	if l.bias == nil {
		l.bias = mat.NewVecDense(c.outDim, nil)
	}
	return l, nil
}

// glorotUniform draws rows x cols values uniformly from
// [-limit, limit], limit = sqrt(6 / (fanIn + fanOut)).
func glorotUniform(rows, cols int, rng *rand.Rand) *mat.Dense {
	limit := math.Sqrt(6.0 / float64(rows+cols))
	data := make([]float64, rows*cols)
	for i := range data {
		var u float64
		if rng == nil {
			u = rand.Float64()
		} else {
			u = rng.Float64()
		}
		data[i] = (2*u - 1) * limit
	}
	return mat.NewDense(rows, cols, data)
}

// Identity builds a square Layer with identity weights, zero bias and the
// given activation. Handy for tests and for wiring a no-op projection.
func Identity(dim int, activation activations.Type) *Layer {
	weight := mat.NewDense(dim, dim, nil)
	for i := range dim {
		weight.Set(i, i, 1)
	}
	return &Layer{
		weight:     weight,
		bias:       mat.NewVecDense(dim, nil),
		activation: activation,
	}
}

// Apply computes activation(W·x + b). The input is not modified; the
// returned slice is freshly allocated.
//
// The input width is a construction-time invariant of the caller: Apply
// panics if len(x) != InputDim.
func (l *Layer) Apply(x []float64) []float64 {
	out := mat.NewVecDense(l.OutputDim(), nil)
	out.MulVec(l.weight, mat.NewVecDense(len(x), x))
	out.AddVec(out, l.bias)
	return activations.Apply(l.activation, out.RawVector().Data)
}

// InputDim returns the width of the input vectors.
func (l *Layer) InputDim() int {
	_, cols := l.weight.Dims()
	return cols
}

// OutputDim returns the width of the output vectors.
func (l *Layer) OutputDim() int {
	rows, _ := l.weight.Dims()
	return rows
}

// Weights returns the weight matrix (OutputDim x InputDim). The trainer may
// mutate it in place between forward calls.
func (l *Layer) Weights() *mat.Dense { return l.weight }

// Bias returns the bias vector. The trainer may mutate it in place between
// forward calls.
func (l *Layer) Bias() *mat.VecDense { return l.bias }

// Activation returns the configured nonlinearity.
func (l *Layer) Activation() activations.Type { return l.activation }
