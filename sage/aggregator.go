// Package sage implements an inductive graph-representation-learning
// encoder in the GraphSAGE family: fixed-size node embeddings computed by
// recursive bounded neighbor sampling and learned aggregation, composed
// over a stack of projection layers.
//
// The usual entry point is Build, which assembles the full
// (SamplingLayer, Projection) chain:
//
//	enc, err := sage.Build(rawFeatures, sage.Config{
//		DimIn:       128,
//		DimH:        256,
//		DimOut:      64,
//		Aggregators: []sage.AggregatorType{sage.AggregatorMean, sage.AggregatorMean},
//		SampleCaps:  []int{10, 25},
//		Activation:  activations.TypeRelu,
//	})
//	embeddings, err := enc.Forward(g, targetNodes, rng)
//
// Training the projection weights is an external concern: the encoder
// exposes its trainable layers through Encoder.Projections and never
// mutates them during a forward pass.
package sage

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// AggregatorType is a closed enum of the neighbor combination rules.
type AggregatorType int

const (
	// AggregatorMean averages the neighbor vectors element-wise.
	AggregatorMean AggregatorType = iota
	// AggregatorSum sums the neighbor vectors element-wise.
	AggregatorSum
	// AggregatorMax takes the element-wise maximum of the neighbor vectors.
	AggregatorMax
	// AggregatorMaxPooling applies a trainable projection to every
	// neighbor vector independently, then takes the element-wise maximum
	// of the transformed vectors.
	AggregatorMaxPooling
	// AggregatorGraphConvMean averages the self vector folded together
	// with the neighbor vectors, the graph-convolution variant. Layers
	// using it skip the separate self‖neighbors concatenation the other
	// types use.
	AggregatorGraphConvMean
)

//go:generate enumer -type=AggregatorType -trimprefix=Aggregator -transform=kebab -values -text aggregator.go

// Projector is the trainable projection contract the encoder consumes: a
// learned map from vectors of width InputDim to vectors of width OutputDim.
// Apply must not retain or mutate its input, and must be reentrant.
// Differentiation and weight updates belong to an external training loop.
//
// dense.Layer implements it.
type Projector interface {
	Apply(x []float64) []float64
	InputDim() int
	OutputDim() int
}

// Aggregator combines a non-empty set of same-width neighbor vectors into
// one vector, per its AggregatorType. It is immutable; only the
// max-pooling variant carries trainable state (its pooling Projector).
type Aggregator struct {
	typ  AggregatorType
	pool Projector
}

// NewAggregator creates an Aggregator of the given type, for all types but
// AggregatorMaxPooling -- that one carries a trainable projection, use
// NewMaxPoolingAggregator.
func NewAggregator(typ AggregatorType) (*Aggregator, error) {
	if !typ.IsAAggregatorType() {
		return nil, errors.Wrapf(ErrConfiguration, "unknown aggregator type %d, options are %v",
			typ, AggregatorTypeValues())
	}
	if typ == AggregatorMaxPooling {
		return nil, errors.Wrap(ErrConfiguration,
			"max-pooling aggregator requires a pooling projection, use NewMaxPoolingAggregator")
	}
	return &Aggregator{typ: typ}, nil
}

// NewMaxPoolingAggregator creates an AggregatorMaxPooling aggregator with
// the given pooling projection.
func NewMaxPoolingAggregator(pool Projector) (*Aggregator, error) {
	if pool == nil {
		return nil, errors.Wrap(ErrConfiguration, "max-pooling aggregator given a nil pooling projection")
	}
	return &Aggregator{typ: AggregatorMaxPooling, pool: pool}, nil
}

// Type returns the combination rule of this aggregator.
func (a *Aggregator) Type() AggregatorType { return a.typ }

// outputDim returns the width of Aggregate's result given input vectors of
// width inputDim.
func (a *Aggregator) outputDim(inputDim int) int {
	if a.typ == AggregatorMaxPooling {
		return a.pool.OutputDim()
	}
	return inputDim
}

// Aggregate combines the given vectors into one. All vectors must have the
// same width and the set must be non-empty. It is a pure function of its
// inputs and, for max-pooling, of the pooling projection's weights.
func (a *Aggregator) Aggregate(vectors [][]float64) ([]float64, error) {
	if len(vectors) == 0 {
		return nil, errors.Wrap(ErrEmptyDependencySet, "aggregate over no vectors")
	}
	dim := len(vectors[0])
	for i, v := range vectors[1:] {
		if len(v) != dim {
			return nil, errors.Wrapf(ErrDimensionMismatch,
				"aggregate input %d has width %d, expected %d", i+1, len(v), dim)
		}
	}

	switch a.typ {
	case AggregatorMean, AggregatorGraphConvMean:
		out := make([]float64, dim)
		for _, v := range vectors {
			floats.Add(out, v)
		}
		floats.Scale(1/float64(len(vectors)), out)
		return out, nil

	case AggregatorSum:
		out := make([]float64, dim)
		for _, v := range vectors {
			floats.Add(out, v)
		}
		return out, nil

	case AggregatorMax:
		out := make([]float64, dim)
		copy(out, vectors[0])
		for _, v := range vectors[1:] {
			elementwiseMax(out, v)
		}
		return out, nil

	case AggregatorMaxPooling:
		out := a.pool.Apply(vectors[0])
		for _, v := range vectors[1:] {
			elementwiseMax(out, a.pool.Apply(v))
		}
		return out, nil
	}
	return nil, errors.Wrapf(ErrConfiguration, "unknown aggregator type %d", a.typ)
}

// elementwiseMax stores max(dst[i], v[i]) in dst.
func elementwiseMax(dst, v []float64) {
	for i, x := range v {
		if x > dst[i] {
			dst[i] = x
		}
	}
}
