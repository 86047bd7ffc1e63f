package ann

import (
	"log"
	"runtime"
	"sync"

	shallow "github.com/LaurianeGelebart/ArtificialNeuralNetworks/shallownet"
	"github.com/pkg/errors"
)

var numCPU = runtime.NumCPU()

// An Agent answers inference queries against a snapshot of a trained network.
type Agent struct {
	NN *shallow.Net
	sync.RWMutex // Predict holds the read lock, SwitchToInference and Close the write lock

	inferer  chan Inferer
	inferers []Inferer
	closed   bool
}

var errAgentClosed = errors.New("agent closed")

// NewAgent creates an agent for nn. Call SwitchToInference before Predict.
func NewAgent(nn *shallow.Net) *Agent {
	return &Agent{
		NN:       nn,
		inferers: make([]Inferer, 0),
	}
}

// SwitchToInference compiles one inference machine per worker. workers < 1 means one per CPU.
func (a *Agent) SwitchToInference(workers int) (err error) {
	if workers < 1 {
		workers = numCPU
	}
	a.Lock()
	defer a.Unlock()
	if a.closed {
		return errAgentClosed
	}
	a.inferer = make(chan Inferer, workers)
	for i := 0; i < workers; i++ {
		var inf Inferer
		if inf, err = shallow.Infer(a.NN, 1, false); err != nil {
			return err
		}
		a.inferers = append(a.inferers, inf)
		a.inferer <- inf
	}
	return nil
}

// Predict returns the network output for one input. It is safe for concurrent use,
// including with Close: a prediction after Close fails with an error.
func (a *Agent) Predict(input []float32) ([]float32, error) {
	a.RLock()
	defer a.RUnlock()
	if a.closed {
		return nil, errAgentClosed
	}
	if a.inferer == nil {
		return nil, errors.New("agent has not been switched to inference")
	}
	inf, ok := <-a.inferer
	if !ok {
		return nil, errAgentClosed
	}
	out, err := inf.Infer([][]float32{input})
	a.inferer <- inf
	if err != nil {
		if el, ok := inf.(ExecLogger); ok {
			log.Println(el.ExecLog())
		}
		return nil, err
	}
	return out[0], nil
}

// Close waits for the predictions in flight, then releases every inference machine.
func (a *Agent) Close() error {
	a.Lock()
	defer a.Unlock()
	a.closed = true
	if a.inferer != nil {
		close(a.inferer)
		a.inferer = nil
	}
	var allErrs manyErr
	for _, inferer := range a.inferers {
		if err := inferer.Close(); err != nil {
			allErrs = append(allErrs, err)
		}
	}
	a.inferers = a.inferers[:0]
	if len(allErrs) > 0 {
		return allErrs
	}
	return nil
}
