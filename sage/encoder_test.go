package sage

import (
	"math/rand/v2"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbenson/GraphSAGE/activations"
	"github.com/arbenson/GraphSAGE/dense"
	"github.com/arbenson/GraphSAGE/features"
	"github.com/arbenson/GraphSAGE/graph"
)

// chainFixture is a small path-ish graph with 6 nodes and enough edges to
// make two-layer receptive fields interesting.
func chainFixture(t *testing.T) (*graph.Directed, features.Source) {
	g := graph.FromEdges(6, []graph.Edge{
		{Source: 1, Target: 0},
		{Source: 2, Target: 0},
		{Source: 3, Target: 1},
		{Source: 4, Target: 1},
		{Source: 5, Target: 2},
		{Source: 0, Target: 5},
	})
	rows := make([][]float64, 6)
	for i := range rows {
		rows[i] = []float64{float64(i), float64(i) / 2, 1}
	}
	table, err := features.FromRows(rows)
	require.NoError(t, err)
	return g, table
}

func TestBuildValidation(t *testing.T) {
	_, src := chainFixture(t)
	base := Config{
		DimIn:       3,
		DimH:        4,
		DimOut:      2,
		Aggregators: []AggregatorType{AggregatorMean, AggregatorMean},
		SampleCaps:  []int{5, 5},
	}

	for name, breakIt := range map[string]func(*Config){
		"empty layer list":   func(c *Config) { c.Aggregators = nil },
		"mismatched lengths": func(c *Config) { c.SampleCaps = []int{5} },
		"negative cap":       func(c *Config) { c.SampleCaps = []int{5, -1} },
		"zero DimIn":         func(c *Config) { c.DimIn = 0 },
		"zero DimH":          func(c *Config) { c.DimH = 0 },
		"zero DimOut":        func(c *Config) { c.DimOut = 0 },
		"unknown aggregator": func(c *Config) { c.Aggregators = []AggregatorType{AggregatorMean, AggregatorType(42)} },
		"DimIn mismatch":     func(c *Config) { c.DimIn = 7 },
	} {
		cfg := base
		breakIt(&cfg)
		_, err := Build(src, cfg)
		assert.Truef(t, errors.Is(err, ErrConfiguration), "%s: got %v", name, err)
	}

	_, err := Build(nil, base)
	assert.True(t, errors.Is(err, ErrConfiguration), "nil source: got %v", err)

	// DimH is irrelevant for a single layer.
	_, err = Build(src, Config{
		DimIn:       3,
		DimOut:      2,
		Aggregators: []AggregatorType{AggregatorMean},
		SampleCaps:  []int{Uncapped},
	})
	assert.NoError(t, err)
}

func TestBuildWiring(t *testing.T) {
	_, src := chainFixture(t)
	enc, err := Build(src, Config{
		DimIn:       3,
		DimH:        4,
		DimOut:      2,
		Aggregators: []AggregatorType{AggregatorMean, AggregatorMaxPooling, AggregatorGraphConvMean},
		SampleCaps:  []int{5, 5, 5},
		Activation:  activations.TypeRelu,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, enc.Depth())
	assert.Equal(t, 2, enc.OutputDim())

	projections := enc.Projections()
	require.Len(t, projections, 3)
	// Layer 1 concatenates self‖mean over raw features: 2*3 → 4.
	assert.Equal(t, 6, projections[0].Projector().InputDim())
	assert.Equal(t, 4, projections[0].Dim())
	// Layer 2 max-pooling over hidden width 4: 2*4 → 4.
	assert.Equal(t, 8, projections[1].Projector().InputDim())
	assert.Equal(t, 4, projections[1].Dim())
	// Layer 3 graph-conv folds self and neighbors: 4 → 2.
	assert.Equal(t, 4, projections[2].Projector().InputDim())
	assert.Equal(t, 2, projections[2].Dim())
}

func TestForwardShapeAndOrder(t *testing.T) {
	g, src := chainFixture(t)
	enc, err := Build(src, Config{
		DimIn:       3,
		DimH:        4,
		DimOut:      2,
		Aggregators: []AggregatorType{AggregatorMean, AggregatorSum},
		SampleCaps:  []int{2, 3},
		Activation:  activations.TypeTanh,
		Rand:        rand.New(rand.NewPCG(5, 5)),
	})
	require.NoError(t, err)

	targets := []int32{5, 0, 3, 0}
	embeddings, err := enc.Forward(g, targets, rand.New(rand.NewPCG(1, 1)))
	require.NoError(t, err)
	require.Len(t, embeddings, len(targets))
	for i, emb := range embeddings {
		assert.Lenf(t, emb, 2, "embedding %d", i)
	}
}

func TestForwardSeedDeterminism(t *testing.T) {
	g, src := chainFixture(t)
	enc, err := Build(src, Config{
		DimIn:       3,
		DimH:        4,
		DimOut:      2,
		Aggregators: []AggregatorType{AggregatorMean, AggregatorMean},
		SampleCaps:  []int{1, 1},
		Activation:  activations.TypeRelu,
		Rand:        rand.New(rand.NewPCG(5, 5)),
	})
	require.NoError(t, err)

	targets := []int32{0, 1, 5}
	a, err := enc.Forward(g, targets, rand.New(rand.NewPCG(2, 3)))
	require.NoError(t, err)
	b, err := enc.Forward(g, targets, rand.New(rand.NewPCG(2, 3)))
	require.NoError(t, err)
	assert.Equal(t, a, b, "same sampling seed, same embeddings")
}

func TestForwardUncappedIsSeedIndependent(t *testing.T) {
	g, src := chainFixture(t)
	enc, err := Build(src, Config{
		DimIn:       3,
		DimH:        4,
		DimOut:      2,
		Aggregators: []AggregatorType{AggregatorMean, AggregatorMean},
		SampleCaps:  []int{Uncapped, Uncapped},
		Activation:  activations.TypeRelu,
		Rand:        rand.New(rand.NewPCG(5, 5)),
	})
	require.NoError(t, err)

	// With no cap the whole neighborhood is always taken: different
	// sampling seeds cannot change the result.
	targets := []int32{0, 1, 2, 3, 4, 5}
	a, err := enc.Forward(g, targets, rand.New(rand.NewPCG(2, 3)))
	require.NoError(t, err)
	b, err := enc.Forward(g, targets, rand.New(rand.NewPCG(99, 101)))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEncoderForwardEmptyTargets(t *testing.T) {
	g, src := chainFixture(t)
	enc, err := Build(src, Config{
		DimIn:       3,
		DimOut:      2,
		Aggregators: []AggregatorType{AggregatorMean},
		SampleCaps:  []int{Uncapped},
	})
	require.NoError(t, err)
	_, err = enc.Forward(g, nil, nil)
	assert.True(t, errors.Is(err, ErrEmptyDependencySet), "got %v", err)
}

func TestNewEncoderCustomProjector(t *testing.T) {
	// Single mean layer with an identity projector: the embeddings are
	// exactly the pre-projection combined vectors of the worked example.
	g, src := triangleFixture(t)
	agg, err := NewAggregator(AggregatorMean)
	require.NoError(t, err)
	layer, err := NewSamplingLayer(RawFeatures(src), Uncapped, agg, nil)
	require.NoError(t, err)
	projection, err := NewProjection(layer, dense.Identity(4, activations.TypeNone))
	require.NoError(t, err)
	enc, err := NewEncoder([]*Projection{projection})
	require.NoError(t, err)

	embeddings, err := enc.Forward(g, []int32{1, 2, 3}, nil)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{
		{1, 0, 0, 1.5},
		{0, 1, 0, 0},
		{0, 2, 0, 0},
	}, embeddings)
}

func TestNewEncoderValidation(t *testing.T) {
	_, err := NewEncoder(nil)
	assert.True(t, errors.Is(err, ErrConfiguration), "got %v", err)

	_, src := triangleFixture(t)
	agg, err := NewAggregator(AggregatorMean)
	require.NoError(t, err)
	layer, err := NewSamplingLayer(RawFeatures(src), Uncapped, agg, nil)
	require.NoError(t, err)
	projection, err := NewProjection(layer, dense.Identity(4, activations.TypeNone))
	require.NoError(t, err)

	// A second stage reading the wrong width must be rejected.
	layer2, err := NewSamplingLayer(RawFeatures(src), Uncapped, agg, nil)
	require.NoError(t, err)
	projection2, err := NewProjection(layer2, dense.Identity(4, activations.TypeNone))
	require.NoError(t, err)
	_, err = NewEncoder([]*Projection{projection, projection2})
	assert.True(t, errors.Is(err, ErrConfiguration), "got %v", err)
}

func TestNewProjectionValidation(t *testing.T) {
	_, src := triangleFixture(t)
	agg, err := NewAggregator(AggregatorMean)
	require.NoError(t, err)
	layer, err := NewSamplingLayer(RawFeatures(src), Uncapped, agg, nil)
	require.NoError(t, err)

	_, err = NewProjection(layer, dense.Identity(3, activations.TypeNone))
	assert.True(t, errors.Is(err, ErrConfiguration), "got %v", err)
	_, err = NewProjection(nil, dense.Identity(4, activations.TypeNone))
	assert.True(t, errors.Is(err, ErrConfiguration), "got %v", err)
	_, err = NewProjection(layer, nil)
	assert.True(t, errors.Is(err, ErrConfiguration), "got %v", err)
}
