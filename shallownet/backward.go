package shallow

import (
	"github.com/pkg/errors"
	"gorgonia.org/vecf32"
)

// Backpropagate adjusts the weights against target using the activations of the most recent forward pass,
// and returns that pattern's total squared error. It must follow Activate or Forward on the same pattern;
// otherwise it fails with ErrNotActivated. A forward pass can only be backpropagated once.
func (n *Net) Backpropagate(target []float32, learningRate, momentum float32) (float32, error) {
	if !n.primed {
		return 0, errors.WithStack(ErrNotActivated)
	}
	if len(target) != n.Output {
		return 0, mismatch("target", len(target), n.Output)
	}
	n.primed = false
	return n.backward(n.inputs, n.hidden, n.outputs, target, learningRate, momentum), nil
}

// Backward is Backpropagate with the forward pass made explicit.
func (n *Net) Backward(p Pass, target []float32, learningRate, momentum float32) (float32, error) {
	switch {
	case len(p.input) != n.Input+1:
		return 0, mismatch("pass input", len(p.input), n.Input+1)
	case len(p.hidden) != n.Hidden:
		return 0, mismatch("pass hidden", len(p.hidden), n.Hidden)
	case len(p.output) != n.Output:
		return 0, mismatch("pass output", len(p.output), n.Output)
	case len(target) != n.Output:
		return 0, mismatch("target", len(target), n.Output)
	}
	return n.backward(p.input, p.hidden, p.output, target, learningRate, momentum), nil
}

// backward computes the error signals of both layers and applies the momentum updates.
// The stored change is the raw gradient term, not the applied (scaled) update.
func (n *Net) backward(inputs, hidden, outputs, target []float32, lr, m float32) (cost float32) {
	diff := borrowF32(len(target))
	outDeltas := borrowF32(len(outputs))
	hidDeltas := borrowF32(len(hidden))
	defer returnF32(diff)
	defer returnF32(outDeltas)
	defer returnF32(hidDeltas)

	copy(diff, target)
	vecf32.Sub(diff, outputs)
	for k, d := range diff {
		outDeltas[k] = dtanh(outputs[k]) * d
	}

	// hidden error signals use the hidden-output weights before they are updated
	for j, h := range hidden {
		var e float32
		for k, d := range outDeltas {
			e += d * n.ho[j][k]
		}
		hidDeltas[j] = dtanh(h) * e
	}

	for j, h := range hidden {
		row, prev := n.ho[j], n.dho[j]
		for k, d := range outDeltas {
			change := d * h
			row[k] += lr*change + m*prev[k]
			prev[k] = change
		}
	}

	for i, a := range inputs {
		row, prev := n.ih[i], n.dih[i]
		for j, d := range hidDeltas {
			change := d * a
			row[j] += lr*change + m*prev[j]
			prev[j] = change
		}
	}

	return sqErr(target, outputs)
}
