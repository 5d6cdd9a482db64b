package sage

import (
	"math/rand/v2"

	"github.com/pkg/errors"

	"github.com/arbenson/GraphSAGE/graph"
)

// Projection pairs a SamplingLayer with its trainable projector. It
// implements FeatureSource, which is how it becomes the feature source of
// the layer above it -- every layer except the input one reads exactly the
// previous layer's Projection.
type Projection struct {
	layer *SamplingLayer
	proj  Projector
}

// NewProjection pairs layer with proj. The projector's input width must be
// the layer's output width.
func NewProjection(layer *SamplingLayer, proj Projector) (*Projection, error) {
	if layer == nil || proj == nil {
		return nil, errors.Wrap(ErrConfiguration, "projection needs both a sampling layer and a projector")
	}
	if proj.InputDim() != layer.OutputDim() {
		return nil, errors.Wrapf(ErrConfiguration,
			"projector takes vectors of width %d, but its sampling layer produces width %d",
			proj.InputDim(), layer.OutputDim())
	}
	return &Projection{layer: layer, proj: proj}, nil
}

// Layer returns the paired sampling layer.
func (p *Projection) Layer() *SamplingLayer { return p.layer }

// Projector returns the trainable projector.
func (p *Projection) Projector() Projector { return p.proj }

// Dim implements FeatureSource: the projector's output width.
func (p *Projection) Dim() int { return p.proj.OutputDim() }

// Features implements FeatureSource: it runs the paired layer's forward
// pass on nodes and projects every combined vector, preserving order.
func (p *Projection) Features(g graph.Graph, nodes []int32, rng *rand.Rand) ([][]float64, error) {
	rows, err := p.layer.Forward(g, nodes, rng)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		rows[i] = p.proj.Apply(row)
	}
	return rows, nil
}
