package dense

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/arbenson/GraphSAGE/activations"
)

func TestApply(t *testing.T) {
	// y = Wx + b with explicit weights.
	layer, err := New(2, 3).
		WithWeights(
			mat.NewDense(3, 2, []float64{
				1, 0,
				0, 1,
				1, 1,
			}),
			mat.NewVecDense(3, []float64{0, 0, 10})).
		Done()
	require.NoError(t, err)
	assert.Equal(t, 2, layer.InputDim())
	assert.Equal(t, 3, layer.OutputDim())

	x := []float64{3, 4}
	got := layer.Apply(x)
	assert.Equal(t, []float64{3, 4, 17}, got)
	assert.Equal(t, []float64{3, 4}, x, "Apply must not modify its input")
}

func TestApplyActivation(t *testing.T) {
	layer, err := New(2, 1).
		WithWeights(
			mat.NewDense(1, 2, []float64{1, 1}),
			mat.NewVecDense(1, []float64{-10})).
		WithActivation(activations.TypeRelu).
		Done()
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, layer.Apply([]float64{3, 4}))
	assert.Equal(t, []float64{2}, layer.Apply([]float64{6, 6}))
}

func TestIdentity(t *testing.T) {
	layer := Identity(4, activations.TypeNone)
	x := []float64{1, -2, 3, -4}
	assert.Equal(t, x, layer.Apply(x))

	relu := Identity(4, activations.TypeRelu)
	assert.Equal(t, []float64{1, 0, 3, 0}, relu.Apply(x))
}

func TestGlorotInit(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	layer, err := New(10, 6).WithRand(rng).Done()
	require.NoError(t, err)

	limit := math.Sqrt(6.0 / 16.0)
	rows, cols := layer.Weights().Dims()
	require.Equal(t, 6, rows)
	require.Equal(t, 10, cols)
	var nonZero int
	for i := range rows {
		for j := range cols {
			w := layer.Weights().At(i, j)
			assert.LessOrEqual(t, math.Abs(w), limit)
			if w != 0 {
				nonZero++
			}
		}
	}
	assert.NotZero(t, nonZero)

	// Bias starts at zero.
	for i := range layer.Bias().Len() {
		assert.Zero(t, layer.Bias().AtVec(i))
	}

	// Same seed, same weights.
	layer2, err := New(10, 6).WithRand(rand.New(rand.NewPCG(1, 2))).Done()
	require.NoError(t, err)
	assert.True(t, mat.Equal(layer.Weights(), layer2.Weights()))
}

func TestTrainerMutation(t *testing.T) {
	layer := Identity(2, activations.TypeNone)
	layer.Weights().Set(0, 1, 5)
	layer.Bias().SetVec(1, -1)
	assert.Equal(t, []float64{11, 1}, layer.Apply([]float64{1, 2}))
}

func TestConfigErrors(t *testing.T) {
	_, err := New(0, 3).Done()
	assert.Error(t, err)
	_, err = New(3, -1).Done()
	assert.Error(t, err)

	_, err = New(2, 3).
		WithWeights(mat.NewDense(2, 3, nil), mat.NewVecDense(3, nil)).
		Done()
	assert.Error(t, err, "transposed weight shape must be rejected")

	_, err = New(2, 3).
		WithWeights(mat.NewDense(3, 2, nil), mat.NewVecDense(2, nil)).
		Done()
	assert.Error(t, err, "bias length must match the output width")
}
