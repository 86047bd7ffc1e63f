package shallow

import (
	"bytes"
	"log"

	"github.com/pkg/errors"
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

var Float = G.Float32

// Inferencer is a struct that holds a snapshot of a trained *Net compiled into a gorgonia VM.
// It runs batched inference without touching the network it was created from.
type Inferencer struct {
	conf  Config
	batch int

	g      *G.ExprGraph
	m      G.VM
	planes *G.Node
	output G.Value

	input *tensor.Dense
	buf   *bytes.Buffer
}

// Infer takes a trained *Net, and creates an inference data structure that evaluates batchSize inputs per run.
// Later training of n does not affect the Inferencer.
func Infer(n *Net, batchSize int, toLog bool) (*Inferencer, error) {
	if batchSize < 1 {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "batch size %d", batchSize)
	}
	ih, ho := n.Weights()
	retVal := &Inferencer{
		conf:  n.Config,
		batch: batchSize,
		g:     G.NewGraph(),
		input: tensor.New(tensor.WithShape(batchSize, n.Input+1), tensor.Of(Float)),
		buf:   new(bytes.Buffer),
	}
	retVal.planes = G.NewMatrix(retVal.g, Float, G.WithShape(batchSize, n.Input+1), G.WithName("Planes"))

	var m maebe
	hidden := m.dense(retVal.planes, ih, "Hidden")
	output := m.dense(hidden, ho, "Output")
	if m.err != nil {
		return nil, m.err
	}
	G.Read(output, &retVal.output)

	if toLog {
		logger := log.New(retVal.buf, "", 0)
		retVal.m = G.NewTapeMachine(retVal.g,
			G.WithLogger(logger),
			G.WithWatchlist(),
			G.TraceExec(),
			G.WithValueFmt("%+1.3v"),
			G.WithNaNWatch(),
		)
	} else {
		retVal.m = G.NewTapeMachine(retVal.g)
	}
	return retVal, nil
}

// BatchSize is the number of inputs evaluated per VM run.
func (m *Inferencer) BatchSize() int { return m.batch }

// Infer runs the inputs through the network, batch by batch, and returns one output vector per input.
func (m *Inferencer) Infer(inputs [][]float32) ([][]float32, error) {
	width := m.conf.Input + 1
	retVal := make([][]float32, 0, len(inputs))
	for start := 0; start < len(inputs); start += m.batch {
		end := start + m.batch
		if end > len(inputs) {
			end = len(inputs)
		}

		m.input.Zero()
		data := m.input.Data().([]float32)
		for i, in := range inputs[start:end] {
			if len(in) != m.conf.Input {
				return nil, errors.WithMessagef(mismatch("input", len(in), m.conf.Input), "input %d", start+i)
			}
			row := data[i*width : (i+1)*width]
			copy(row, in)
			row[m.conf.Input] = 1
		}

		m.m.Reset()
		m.buf.Reset()
		if err := G.Let(m.planes, m.input); err != nil {
			return nil, errors.WithStack(err)
		}
		if err := m.m.RunAll(); err != nil {
			return nil, errors.WithStack(err)
		}
		out := m.output.Data().([]float32)
		for i := 0; i < end-start; i++ {
			retVal = append(retVal, cloneF32(out[i*m.conf.Output:(i+1)*m.conf.Output]))
		}
	}
	return retVal, nil
}

// ExecLog returns the execution log. If Infer was called with toLog = false, then it will return an empty string
func (m *Inferencer) ExecLog() string { return m.buf.String() }

// Close implements a closer, because well, a gorgonia VM is a resource.
func (m *Inferencer) Close() error { return m.m.Close() }
