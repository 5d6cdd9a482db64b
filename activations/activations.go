// Package activations implements the nonlinearities applied by projection
// layers, and a generic Apply to apply an activation by its type.
//
// There is also FromName to convert an activation name (string) to its type.
package activations

import (
	"math"

	. "github.com/gomlx/exceptions"
)

// Type is an enum for the supported activation functions.
//
// It is converted to snake-format strings (e.g.: TypeLeakyRelu ->
// "leaky_relu"), and can be converted back with TypeString or FromName.
type Type int

const (
	TypeNone Type = iota
	TypeRelu
	TypeLeakyRelu
	TypeSigmoid
	TypeTanh
)

//go:generate enumer -type=Type -trimprefix=Type -transform=snake -values -text activations.go

// LeakyReluAlpha is the slope used by TypeLeakyRelu for negative inputs.
const LeakyReluAlpha = 0.3

// Apply the given activation type to every element of x, in place, and
// returns x. The TypeNone activation is a no-op.
//
// See TypeValues for valid values.
func Apply(activation Type, x []float64) []float64 {
	switch activation {
	case TypeNone:
	case TypeRelu:
		for i, v := range x {
			if v < 0 {
				x[i] = 0
			}
		}
	case TypeLeakyRelu:
		for i, v := range x {
			if v < 0 {
				x[i] = LeakyReluAlpha * v
			}
		}
	case TypeSigmoid:
		for i, v := range x {
			x[i] = 1 / (1 + math.Exp(-v))
		}
	case TypeTanh:
		for i, v := range x {
			x[i] = math.Tanh(v)
		}
	default:
		Panicf("Apply got invalid activation value %q: options are %v", activation, TypeValues())
	}
	return x
}

// FromName converts the name of an activation to its type.
// It panics with a helpful message if name is invalid.
//
// An empty string is converted to TypeNone.
func FromName(activationName string) Type {
	if activationName == "" {
		return TypeNone
	}
	activation, err := TypeString(activationName)
	if err != nil {
		Panicf("invalid activation name %q: options are %v", activationName, TypeValues())
	}
	return activation
}
