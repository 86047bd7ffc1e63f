package shallow

import "github.com/chewxy/math32"

// Pass is the result of one forward pass. It holds its own copies of the activations,
// so it stays valid after later passes and can be handed to Backward.
type Pass struct {
	input  []float32 // includes the bias unit
	hidden []float32
	output []float32
}

// Input returns the input activations of the pass, bias unit last.
func (p Pass) Input() []float32 { return cloneF32(p.input) }

// Hidden returns the hidden activations of the pass.
func (p Pass) Hidden() []float32 { return cloneF32(p.hidden) }

// Output returns the output activations of the pass.
func (p Pass) Output() []float32 { return cloneF32(p.output) }

// Forward runs the network on input and returns the resulting activations.
func (n *Net) Forward(input []float32) (Pass, error) {
	if err := n.activate(input); err != nil {
		return Pass{}, err
	}
	return Pass{
		input:  cloneF32(n.inputs),
		hidden: cloneF32(n.hidden),
		output: cloneF32(n.outputs),
	}, nil
}

// Activate runs the network on input and returns a copy of the output activations.
// Every output lies in [-1, 1]: float32 tanh rounds to exactly ±1 once the weighted sum exceeds about 9 in magnitude.
func (n *Net) Activate(input []float32) ([]float32, error) {
	if err := n.activate(input); err != nil {
		return nil, err
	}
	return cloneF32(n.outputs), nil
}

func (n *Net) activate(input []float32) error {
	if len(input) != n.Input {
		return mismatch("input", len(input), n.Input)
	}
	copy(n.inputs, input)
	n.inputs[n.Input] = 1

	for j := range n.hidden {
		var sum float32
		for i, a := range n.inputs {
			sum += a * n.ih[i][j]
		}
		n.hidden[j] = math32.Tanh(sum)
	}

	for k := range n.outputs {
		var sum float32
		for j, a := range n.hidden {
			sum += a * n.ho[j][k]
		}
		n.outputs[k] = math32.Tanh(sum)
	}
	n.primed = true
	return nil
}

// dtanh is the derivative of tanh expressed in terms of its output y = tanh(x).
func dtanh(y float32) float32 { return 1 - y*y }
