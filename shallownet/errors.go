package shallow

import "github.com/pkg/errors"

var (
	// ErrInvalidConfiguration is returned when a network is constructed with a non-positive dimension.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrDimensionMismatch is returned when an input or target vector does not fit the topology.
	// The caller may skip or fix the offending pattern; the network never pads or truncates.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrNotActivated is returned by Backpropagate when no forward pass precedes it.
	ErrNotActivated = errors.New("backpropagate called without a prior activate")
)

func mismatch(what string, got, want int) error {
	return errors.Wrapf(ErrDimensionMismatch, "%s has length %d, expected %d", what, got, want)
}
