package shallow

import (
	"math/rand"

	"github.com/pkg/errors"
	"gorgonia.org/tensor"
	"gorgonia.org/tensor/native"
)

// initRange bounds the uniform weight initialization: every weight starts in [-initRange, initRange).
const initRange = 2.0

// Net is a fully connected feed forward network with one hidden layer, trained by backpropagation with momentum.
//
// A bias unit is appended to the input layer, so the input activations have length Input+1 and the last one is always 1.
// A Net is not safe for concurrent use: every forward pass overwrites the same scratch activations.
type Net struct {
	Config

	// scratch activations of the most recent forward pass
	inputs  []float32
	hidden  []float32
	outputs []float32
	primed  bool // set by a forward pass, consumed by Backpropagate

	// weights, (Input+1)×Hidden and Hidden×Output
	wIH, wHO *tensor.Dense
	// previous raw weight changes, same shapes as the weights
	cIH, cHO *tensor.Dense

	// row views into the tensors above
	ih, ho   [][]float32
	dih, dho [][]float32
}

// New returns a new *Net with fresh random weights drawn from a generator seeded with conf.Seed.
func New(conf Config) (*Net, error) {
	return NewWithRand(conf, rand.New(rand.NewSource(conf.Seed)))
}

// NewWithRand returns a new *Net whose weights are drawn from r. The generator is only used during construction.
func NewWithRand(conf Config, r *rand.Rand) (*Net, error) {
	if err := conf.check(); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, errors.Wrap(ErrInvalidConfiguration, "nil random source")
	}
	retVal := &Net{
		Config:  conf,
		inputs:  make([]float32, conf.Input+1),
		hidden:  make([]float32, conf.Hidden),
		outputs: make([]float32, conf.Output),

		wIH: newMatrix(conf.Input+1, conf.Hidden),
		wHO: newMatrix(conf.Hidden, conf.Output),
		cIH: newMatrix(conf.Input+1, conf.Hidden),
		cHO: newMatrix(conf.Hidden, conf.Output),
	}
	initWeights(retVal.wIH, r)
	initWeights(retVal.wHO, r)
	if err := retVal.view(); err != nil {
		return nil, err
	}
	return retVal, nil
}

func newMatrix(rows, cols int) *tensor.Dense {
	return tensor.New(tensor.WithShape(rows, cols), tensor.WithBacking(make([]float32, rows*cols)))
}

func initWeights(t *tensor.Dense, r *rand.Rand) {
	data := t.Data().([]float32)
	for i := range data {
		data[i] = float32(r.Float64()*2*initRange - initRange)
	}
}

// view (re)creates the row views of the weight and momentum tensors.
func (n *Net) view() (err error) {
	if n.ih, err = native.MatrixF32(n.wIH); err != nil {
		return errors.Wrapf(err, "view of input-hidden weights failed")
	}
	if n.ho, err = native.MatrixF32(n.wHO); err != nil {
		return errors.Wrapf(err, "view of hidden-output weights failed")
	}
	if n.dih, err = native.MatrixF32(n.cIH); err != nil {
		return errors.Wrapf(err, "view of input-hidden momentum failed")
	}
	if n.dho, err = native.MatrixF32(n.cHO); err != nil {
		return errors.Wrapf(err, "view of hidden-output momentum failed")
	}
	return nil
}

// Weights returns copies of the input-hidden and hidden-output weight matrices.
func (n *Net) Weights() (ih, ho *tensor.Dense) {
	return n.wIH.Clone().(*tensor.Dense), n.wHO.Clone().(*tensor.Dense)
}

// Momentum returns copies of the previous raw weight changes, in the same layout as Weights.
func (n *Net) Momentum() (ih, ho *tensor.Dense) {
	return n.cIH.Clone().(*tensor.Dense), n.cHO.Clone().(*tensor.Dense)
}

// Clone returns an independent copy of the network: weights, momentum and configuration.
// The clone shares no state with n, so it may be used from another goroutine.
func (n *Net) Clone() *Net {
	n2 := &Net{
		Config:  n.Config,
		inputs:  make([]float32, len(n.inputs)),
		hidden:  make([]float32, len(n.hidden)),
		outputs: make([]float32, len(n.outputs)),
	}
	n2.wIH, n2.wHO = n.Weights()
	n2.cIH, n2.cHO = n.Momentum()
	if err := n2.view(); err != nil {
		// the tensors were valid matrices in n
		panic(err)
	}
	return n2
}
