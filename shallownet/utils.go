package shallow

import (
	"github.com/pkg/errors"
	"gorgonia.org/vecf32"
)

// checkPatterns reports the first pattern that does not fit the topology.
func (n *Net) checkPatterns(patterns []Pattern, targets bool) error {
	for i, p := range patterns {
		if len(p.Input) != n.Input {
			return errors.WithMessagef(mismatch("input", len(p.Input), n.Input), "pattern %d", i)
		}
		if targets && len(p.Target) != n.Output {
			return errors.WithMessagef(mismatch("target", len(p.Target), n.Output), "pattern %d", i)
		}
	}
	return nil
}

// sqErr is half the summed squared difference of target and output.
func sqErr(target, output []float32) float32 {
	diff := borrowF32(len(target))
	defer returnF32(diff)
	copy(diff, target)
	vecf32.Sub(diff, output)
	vecf32.Mul(diff, diff)
	vecf32.Scale(diff, 0.5)
	return vecf32.Sum(diff)
}

func cloneF32(a []float32) []float32 {
	retVal := make([]float32, len(a))
	copy(retVal, a)
	return retVal
}
