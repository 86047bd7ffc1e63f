package ann

import (
	"io"

	shallow "github.com/LaurianeGelebart/ArtificialNeuralNetworks/shallownet"
)

type Config struct {
	Name    string
	NNConf  shallow.Config
	Epsilon float32 // tolerance used to shade outputs

	// extensions
	OutputEncoder OutputEncoder
}

// DefaultConfig is the configuration of the pattern demo: a 4-10-2 network over the default grid.
func DefaultConfig() Config {
	return Config{
		Name:    "Shallow Network",
		NNConf:  shallow.DefaultConf(4, 10, 2),
		Epsilon: 0.1,
	}
}

// OutputEncoder encodes the entire meta state as whatever.
//
// An example OutputEncoder is the GifEncoder. Another example would be a logger.
type OutputEncoder interface {
	Encode(ms MetaState) error
	Flush() error
}

// MetaState is the state of a demo after a run.
type MetaState interface {
	Name() string
	RunNumber() int // number of the training run, starting at 1
	Grid() *Grid
	Outputs() [][]float32
	Cost() float32
	Epsilon() float32
}

// Result is the outcome of one grid row after a run.
type Result struct {
	Input    []float32
	Expected []float32
	Output   []float32
}

// Inferer is anything that can infer given a batch of inputs.
type Inferer interface {
	Infer(a [][]float32) ([][]float32, error)
	io.Closer
}

// ExecLogger is anything that can return the execution log.
type ExecLogger interface {
	ExecLog() string
}
