package sage

import (
	"math/rand/v2"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/arbenson/GraphSAGE/activations"
	"github.com/arbenson/GraphSAGE/dense"
	"github.com/arbenson/GraphSAGE/features"
	"github.com/arbenson/GraphSAGE/graph"
)

// Config describes the encoder Build assembles. Aggregators and SampleCaps
// are ordered from the input layer outwards and must have the same length;
// their length is the encoder depth.
type Config struct {
	// DimIn is the width of the raw feature vectors.
	DimIn int
	// DimH is the hidden width between layers. Ignored for depth-1
	// encoders.
	DimH int
	// DimOut is the width of the final embeddings.
	DimOut int

	// Aggregators holds the combination rule of each layer.
	Aggregators []AggregatorType
	// SampleCaps holds each layer's neighbor sample bound; use Uncapped
	// for no bound.
	SampleCaps []int

	// Activation is the nonlinearity of every projection, including
	// max-pooling sub-projections. The zero value is activations.TypeNone.
	Activation activations.Type

	// Rand is the stream used to initialize projection weights. Nil uses
	// the process-global stream. Forward sampling takes its own stream
	// per call.
	Rand *rand.Rand
}

// Encoder is an immutable chain of (SamplingLayer, Projection) pairs.
// Build it once with Build (or NewEncoder for custom projectors) and call
// Forward many times; the forward pass never mutates the chain.
type Encoder struct {
	// projections are ordered from the input layer outwards.
	projections []*Projection
}

// Build assembles an Encoder of depth len(cfg.Aggregators) reading raw
// features from src. Layer 1 samples over raw features and projects to
// DimH (or straight to DimOut for depth 1); intermediate layers map DimH
// to DimH; the final layer maps to DimOut.
//
// It fails with ErrConfiguration for an empty layer list, mismatched
// Aggregators/SampleCaps lengths, non-positive dimensions, negative caps,
// unknown aggregator types, or a src whose width differs from DimIn.
func Build(src features.Source, cfg Config) (*Encoder, error) {
	depth := len(cfg.Aggregators)
	if src == nil {
		return nil, errors.Wrap(ErrConfiguration, "nil feature source")
	}
	if depth == 0 {
		return nil, errors.Wrap(ErrConfiguration, "at least one layer is required")
	}
	if len(cfg.SampleCaps) != depth {
		return nil, errors.Wrapf(ErrConfiguration,
			"%d aggregators but %d sample caps, they must pair up", depth, len(cfg.SampleCaps))
	}
	if cfg.DimIn <= 0 || cfg.DimOut <= 0 || (depth > 1 && cfg.DimH <= 0) {
		return nil, errors.Wrapf(ErrConfiguration,
			"dimensions must be > 0, got DimIn=%d DimH=%d DimOut=%d", cfg.DimIn, cfg.DimH, cfg.DimOut)
	}
	if src.Dim() != cfg.DimIn {
		return nil, errors.Wrapf(ErrConfiguration,
			"feature source has width %d, config declares DimIn=%d", src.Dim(), cfg.DimIn)
	}

	var child FeatureSource = rawSource{src: src}
	projections := make([]*Projection, 0, depth)
	for i, aggType := range cfg.Aggregators {
		agg, err := buildAggregator(aggType, child.Dim(), cfg)
		if err != nil {
			return nil, errors.WithMessagef(err, "layer %d", i+1)
		}
		layer, err := NewSamplingLayer(child, cfg.SampleCaps[i], agg, nil)
		if err != nil {
			return nil, errors.WithMessagef(err, "layer %d", i+1)
		}
		outDim := cfg.DimH
		if i == depth-1 {
			outDim = cfg.DimOut
		}
		proj, err := dense.New(layer.OutputDim(), outDim).
			WithActivation(cfg.Activation).
			WithRand(cfg.Rand).
			Done()
		if err != nil {
			return nil, errors.WithMessagef(err, "layer %d projection", i+1)
		}
		projection, err := NewProjection(layer, proj)
		if err != nil {
			return nil, errors.WithMessagef(err, "layer %d", i+1)
		}
		projections = append(projections, projection)
		child = projection
	}
	klog.V(1).Infof("built encoder: depth=%d, dims %d→%d (hidden %d), aggregators=%v",
		depth, cfg.DimIn, cfg.DimOut, cfg.DimH, cfg.Aggregators)
	return &Encoder{projections: projections}, nil
}

// buildAggregator creates the layer i aggregator; max-pooling gets a fresh
// selfDim→selfDim trainable pooling projection.
func buildAggregator(typ AggregatorType, selfDim int, cfg Config) (*Aggregator, error) {
	if typ != AggregatorMaxPooling {
		return NewAggregator(typ)
	}
	pool, err := dense.New(selfDim, selfDim).
		WithActivation(cfg.Activation).
		WithRand(cfg.Rand).
		Done()
	if err != nil {
		return nil, err
	}
	return NewMaxPoolingAggregator(pool)
}

// NewEncoder assembles an Encoder from pre-built projections, ordered from
// the input layer outwards, for callers that wire their own Projector
// implementations. Each projection must already use the previous one as
// its layer's feature source.
func NewEncoder(projections []*Projection) (*Encoder, error) {
	if len(projections) == 0 {
		return nil, errors.Wrap(ErrConfiguration, "at least one projection is required")
	}
	for i := 1; i < len(projections); i++ {
		if projections[i].layer.child.Dim() != projections[i-1].Dim() {
			return nil, errors.Wrapf(ErrConfiguration,
				"projection %d reads vectors of width %d, but projection %d produces width %d",
				i+1, projections[i].layer.child.Dim(), i, projections[i-1].Dim())
		}
	}
	return &Encoder{projections: projections}, nil
}

// Depth returns the number of (SamplingLayer, Projection) pairs.
func (e *Encoder) Depth() int { return len(e.projections) }

// OutputDim returns the width of the embeddings Forward produces.
func (e *Encoder) OutputDim() int { return e.projections[len(e.projections)-1].Dim() }

// Projections returns the chain ordered from the input layer outwards, for
// the external training loop to reach the trainable weights. Don't modify
// the slice.
func (e *Encoder) Projections() []*Projection { return e.projections }

// Forward returns one OutputDim embedding per target node, in target
// order. It delegates to the outermost projection, which recursively pulls
// the whole chain.
//
// Neighbor sampling draws from rng (nil for the process-global stream), so
// repeated calls only agree when seeded identically. The graph and the raw
// feature source are treated as read-only for the duration of the call.
func (e *Encoder) Forward(g graph.Graph, targets []int32, rng *rand.Rand) ([][]float64, error) {
	return e.projections[len(e.projections)-1].Features(g, targets, rng)
}
