package sage

import (
	"math/rand/v2"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/arbenson/GraphSAGE/features"
	"github.com/arbenson/GraphSAGE/graph"
)

// FeatureSource provides hidden vectors for a set of nodes. It is the
// recursive abstraction tying the layer stack together: the input layer
// reads raw features through it, and every other layer reads the previous
// layer's Projection through it.
//
// Features must return one vector per node, same order as nodes, all of
// width Dim.
type FeatureSource interface {
	Features(g graph.Graph, nodes []int32, rng *rand.Rand) ([][]float64, error)
	Dim() int
}

// RawFeatures adapts a raw per-node lookup to the FeatureSource consumed
// by an input-layer SamplingLayer. Build does this wiring itself; use it
// when assembling a chain by hand with NewSamplingLayer and NewEncoder.
func RawFeatures(src features.Source) FeatureSource {
	return rawSource{src: src}
}

// rawSource adapts a features.Source to a FeatureSource for the input
// layer. It checks every looked-up row against the declared width.
type rawSource struct {
	src features.Source
}

func (r rawSource) Dim() int { return r.src.Dim() }

func (r rawSource) Features(g graph.Graph, nodes []int32, rng *rand.Rand) ([][]float64, error) {
	out := make([][]float64, len(nodes))
	for i, node := range nodes {
		row, err := r.src.Lookup(node)
		if err != nil {
			return nil, errors.WithMessagef(err, "raw features for node %d", node)
		}
		if len(row) != r.src.Dim() {
			return nil, errors.Wrapf(ErrDimensionMismatch,
				"raw features for node %d have width %d, source declares %d",
				node, len(row), r.src.Dim())
		}
		out[i] = row
	}
	return out, nil
}

// SamplingLayer produces one combined vector per target node: the target's
// own hidden vector combined with an aggregate of a bounded random sample
// of its in-neighbors' hidden vectors, all obtained from the child feature
// source in a single call over the deduplicated union of targets and
// sampled neighbors.
//
// A SamplingLayer is constructed once and reused across forward calls; it
// holds no mutable state of its own, so concurrent Forward calls are safe
// as long as each uses an independent random stream.
type SamplingLayer struct {
	child      FeatureSource
	sampleCap  int
	agg        *Aggregator
	defaultVec []float64
}

// NewSamplingLayer creates a SamplingLayer reading hidden vectors from
// child, sampling at most k in-neighbors per target (k == Uncapped for no
// bound) and combining them with agg.
//
// defaultVec is used in place of the neighbor aggregate for targets whose
// sampled neighbor set is empty; its width must be the aggregate's width.
// Pass nil for a zero vector.
func NewSamplingLayer(child FeatureSource, k int, agg *Aggregator, defaultVec []float64) (*SamplingLayer, error) {
	if child == nil {
		return nil, errors.Wrap(ErrConfiguration, "sampling layer needs a feature source")
	}
	if agg == nil {
		return nil, errors.Wrap(ErrConfiguration, "sampling layer needs an aggregator")
	}
	if k < 0 {
		return nil, errors.Wrapf(ErrConfiguration, "sample cap must be positive or Uncapped, got %d", k)
	}
	aggDim := agg.outputDim(child.Dim())
	if defaultVec == nil {
		defaultVec = make([]float64, aggDim)
	} else if len(defaultVec) != aggDim {
		return nil, errors.Wrapf(ErrDimensionMismatch,
			"default vector has width %d, the neighbor aggregate has width %d",
			len(defaultVec), aggDim)
	}
	return &SamplingLayer{child: child, sampleCap: k, agg: agg, defaultVec: defaultVec}, nil
}

// Aggregator returns the layer's neighbor aggregator.
func (l *SamplingLayer) Aggregator() *Aggregator { return l.agg }

// SampleCap returns the neighbor sample bound, or Uncapped.
func (l *SamplingLayer) SampleCap() int { return l.sampleCap }

// OutputDim returns the width of the vectors Forward produces:
// the child width plus the aggregate width for the concatenating types, or
// just the child width for graph-conv-mean, which folds self and neighbors
// into one set.
func (l *SamplingLayer) OutputDim() int {
	if l.agg.typ == AggregatorGraphConvMean {
		return l.child.Dim()
	}
	return l.child.Dim() + l.agg.outputDim(l.child.Dim())
}

// Forward returns one combined vector per target, in target order.
//
// Sampling draws from rng, so two calls only agree when seeded
// identically; a nil rng uses the process-global stream. Forward fails
// with ErrEmptyDependencySet when targets is empty.
func (l *SamplingLayer) Forward(g graph.Graph, targets []int32, rng *rand.Rand) ([][]float64, error) {
	if len(targets) == 0 {
		return nil, errors.Wrap(ErrEmptyDependencySet, "no target nodes requested")
	}

	// Sample neighbors per target and build the union of everything this
	// layer needs previous-layer vectors for. Targets go in first so each
	// target's self vector is always present.
	sampled := make([][]int32, len(targets))
	deps := newFrontier[int32](2 * len(targets))
	for _, u := range targets {
		deps.Add(u)
	}
	for i, u := range targets {
		nbrs := sampleNeighbors(g.InNeighbors(u), l.sampleCap, rng)
		sampled[i] = nbrs
		for _, v := range nbrs {
			deps.Add(v)
		}
	}
	if deps.Len() == 0 {
		return nil, errors.Wrap(ErrEmptyDependencySet, "union of targets and sampled neighbors is empty")
	}
	klog.V(2).Infof("sampling layer: %d targets, %d unique dependencies", len(targets), deps.Len())

	hidden, err := l.child.Features(g, deps.Nodes(), rng)
	if err != nil {
		return nil, err
	}
	if len(hidden) != deps.Len() {
		return nil, errors.Wrapf(ErrDimensionMismatch,
			"feature source returned %d rows for %d requested nodes", len(hidden), deps.Len())
	}

	out := make([][]float64, len(targets))
	for i, u := range targets {
		self := hidden[deps.IndexOf(u)]
		nbrs := sampled[i]

		if l.agg.typ == AggregatorGraphConvMean {
			// Graph-convolution folds self and neighbors into one set; a
			// target with no neighbors folds just itself.
			joint := make([][]float64, 0, len(nbrs)+1)
			joint = append(joint, self)
			for _, v := range nbrs {
				joint = append(joint, hidden[deps.IndexOf(v)])
			}
			combined, err := l.agg.Aggregate(joint)
			if err != nil {
				return nil, err
			}
			out[i] = combined
			continue
		}

		aggregated := l.defaultVec
		if len(nbrs) > 0 {
			vectors := make([][]float64, len(nbrs))
			for j, v := range nbrs {
				vectors[j] = hidden[deps.IndexOf(v)]
			}
			aggregated, err = l.agg.Aggregate(vectors)
			if err != nil {
				return nil, err
			}
		}
		row := make([]float64, 0, len(self)+len(aggregated))
		row = append(row, self...)
		row = append(row, aggregated...)
		out[i] = row
	}
	return out, nil
}
