package shallow

import (
	"github.com/pkg/errors"
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

type maebe struct {
	err error
}

// generic monad... may be useful
func (m *maebe) do(f func() (*G.Node, error)) (retVal *G.Node) {
	if m.err != nil {
		return nil
	}
	if retVal, m.err = f(); m.err != nil {
		m.err = errors.WithStack(m.err)
	}
	return
}

// dense is a fully connected layer without bias: tanh(input × w).
// The weights are constants lifted from a trained *Net.
func (m *maebe) dense(input *G.Node, w *tensor.Dense, name string) *G.Node {
	if m.err != nil {
		return nil
	}
	weights := G.NewMatrix(input.Graph(), Float, G.WithShape(w.Shape().Clone()...), G.WithName(name+"_w"), G.WithValue(w))
	xw := m.do(func() (*G.Node, error) { return G.Mul(input, weights) })
	return m.do(func() (*G.Node, error) { return G.Tanh(xw) })
}
