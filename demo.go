package ann

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"math/rand"
	"strings"

	shallow "github.com/LaurianeGelebart/ArtificialNeuralNetworks/shallownet"
	"github.com/pkg/errors"
)

// Demo is the top level structure and the entry point of the API.
// It owns the editable pattern grid and retrains a fresh network every time the grid changes.
type Demo struct {
	// state
	Statistics
	grid    *Grid
	nn      *shallow.Net
	agent   *Agent
	outputs [][]float32
	cost    float32
	run     int
	seeds   *rand.Rand

	// config
	name   string
	nnConf shallow.Config
	eps    float32

	// io
	outEnc OutputEncoder
	buf    bytes.Buffer
	logger *log.Logger
}

// New creates a demo over g. A nil grid means the default grid fitted to conf.NNConf.
// The demo has not been trained yet: call Run.
func New(g *Grid, conf Config) (*Demo, error) {
	if !conf.NNConf.IsValid() {
		return nil, errors.Wrapf(shallow.ErrInvalidConfiguration, "NNConf %+v", conf.NNConf)
	}
	if conf.Epsilon < 0 {
		return nil, errors.Wrapf(shallow.ErrInvalidConfiguration, "epsilon %v", conf.Epsilon)
	}
	if g == nil {
		g = DefaultGrid(conf.NNConf.Input, conf.NNConf.Output)
	}
	if g.Inputs() != conf.NNConf.Input {
		return nil, errors.Wrapf(shallow.ErrDimensionMismatch, "grid has %d input columns, network has %d inputs", g.Inputs(), conf.NNConf.Input)
	}
	if g.Outputs() != conf.NNConf.Output {
		return nil, errors.Wrapf(shallow.ErrDimensionMismatch, "grid has %d target columns, network has %d outputs", g.Outputs(), conf.NNConf.Output)
	}

	retVal := &Demo{
		Statistics: makeStatistics(),
		grid:       g,
		seeds:      rand.New(rand.NewSource(conf.NNConf.Seed)),
		name:       conf.Name,
		nnConf:     conf.NNConf,
		eps:        conf.Epsilon,
		outEnc:     conf.OutputEncoder,
	}
	retVal.logger = log.New(&retVal.buf, "", log.Ltime)
	return retVal, nil
}

// Run builds a network with fresh random weights, trains it on the grid and infers every row.
func (d *Demo) Run() error {
	run := d.run + 1
	conf := d.nnConf
	conf.Seed = d.seeds.Int63()
	nn, err := shallow.New(conf)
	if err != nil {
		return err
	}

	patterns := d.grid.Patterns()
	d.buf.Reset()
	d.logger.Printf("Run %d, seed %d", run, conf.Seed)
	d.logger.SetPrefix("\t")
	observe := func(epoch int, cost float32) { d.update(run, epoch, cost) }
	err = nn.Train(patterns, shallow.WithLogger(d.logger), shallow.WithObserver(observe))
	d.logger.SetPrefix("")
	if err != nil {
		return errors.WithMessage(err, "Train fail")
	}

	outputs, err := nn.Infer(patterns)
	if err != nil {
		return err
	}
	cost, err := nn.Cost(patterns)
	if err != nil {
		return err
	}
	d.logger.Printf("Final error %v", cost)
	log.Printf("Run %d: error %v", run, cost)

	if d.agent != nil {
		if err = d.agent.Close(); err != nil {
			log.Printf("Closing the previous agent: %v", err)
		}
		d.agent = nil
	}
	d.nn = nn
	d.outputs = outputs
	d.cost = cost
	d.run = run

	if d.outEnc != nil {
		return d.outEnc.Encode(d)
	}
	return nil
}

// ToggleInput flips an input cell and retrains.
func (d *Demo) ToggleInput(row, col int) error {
	if err := d.grid.ToggleInput(row, col); err != nil {
		return err
	}
	return d.Run()
}

// ToggleTarget flips a target cell and retrains.
func (d *Demo) ToggleTarget(row, col int) error {
	if err := d.grid.ToggleTarget(row, col); err != nil {
		return err
	}
	return d.Run()
}

// Invert flips every cell of the grid and retrains.
func (d *Demo) Invert() error {
	d.grid.Invert()
	return d.Run()
}

// Reset restores the default grid and retrains.
func (d *Demo) Reset() error {
	d.grid = DefaultGrid(d.nnConf.Input, d.nnConf.Output)
	return d.Run()
}

// Net returns the network of the latest run, or nil before the first run.
func (d *Demo) Net() *shallow.Net { return d.nn }

// Predict runs one input through the latest network on its inference pool.
func (d *Demo) Predict(input []float32) ([]float32, error) {
	if d.nn == nil {
		return nil, errors.New("the demo has not been run")
	}
	if d.agent == nil {
		a := NewAgent(d.nn.Clone())
		if err := a.SwitchToInference(0); err != nil {
			a.Close()
			return nil, err
		}
		d.agent = a
	}
	return d.agent.Predict(input)
}

// Results pairs every grid row with the output of the latest run.
func (d *Demo) Results() []Result {
	if d.outputs == nil {
		return nil
	}
	retVal := make([]Result, d.grid.Rows())
	for i := range retVal {
		out := make([]float32, len(d.outputs[i]))
		copy(out, d.outputs[i])
		retVal[i] = Result{
			Input:    d.grid.Input(i),
			Expected: d.grid.Target(i),
			Output:   out,
		}
	}
	return retVal
}

// Shades classifies the outputs of the latest run.
func (d *Demo) Shades() [][]Shade {
	retVal := make([][]Shade, len(d.outputs))
	for i, row := range d.outputs {
		retVal[i] = make([]Shade, len(row))
		for j, v := range row {
			retVal[i][j] = Classify(v, d.eps)
		}
	}
	return retVal
}

// Report writes one line per grid row: its input, its expected output and what the network produced.
func (d *Demo) Report(w io.Writer) error {
	for _, r := range d.Results() {
		if _, err := fmt.Fprintf(w, "Input : %s, Expected outputs : %s -> Output : %s\n", join(r.Input), join(r.Expected), join(r.Output)); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}

func join(a []float32) string {
	s := make([]string, len(a))
	for i, v := range a {
		s[i] = fmt.Sprint(v)
	}
	return strings.Join(s, ", ")
}

// Log writes the training log of the latest run.
func (d *Demo) Log(w io.Writer) {
	fmt.Fprintf(w, "%s", d.buf.String())
}

// Close releases the inference pool, if any.
func (d *Demo) Close() error {
	if d.agent == nil {
		return nil
	}
	err := d.agent.Close()
	d.agent = nil
	return err
}

/* MetaState implementation */

func (d *Demo) Name() string         { return d.name }
func (d *Demo) RunNumber() int       { return d.run }
func (d *Demo) Grid() *Grid          { return d.grid }
func (d *Demo) Outputs() [][]float32 { return d.outputs }
func (d *Demo) Cost() float32        { return d.cost }
func (d *Demo) Epsilon() float32     { return d.eps }

func (d *Demo) String() string { return d.grid.Board(d.outputs, d.eps) }
