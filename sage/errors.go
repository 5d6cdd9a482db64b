package sage

import "github.com/pkg/errors"

// Sentinel errors of the encoder. They are wrapped with context at the
// point of detection and propagate unchanged to the caller; match them with
// errors.Is.
var (
	// ErrConfiguration reports malformed construction arguments: an empty
	// layer list, mismatched layer/cap lengths, an unknown aggregator
	// type, or non-positive dimensions.
	ErrConfiguration = errors.New("invalid encoder configuration")

	// ErrEmptyDependencySet reports a forward call whose
	// union-of-dependencies resolved to nothing, which only happens for an
	// empty target list.
	ErrEmptyDependencySet = errors.New("empty dependency set")

	// ErrDimensionMismatch reports a feature vector or aggregation input
	// whose width disagrees with the configured dimension.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)
