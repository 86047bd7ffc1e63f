package shallow

import (
	"log"

	"github.com/pkg/errors"
)

// Pattern is one example: an input vector and the output vector it should produce.
type Pattern struct {
	Input  []float32
	Target []float32
}

// Observer receives the summed error of an epoch. It is advisory only.
type Observer func(epoch int, cost float32)

// TrainOpt overrides a training hyperparameter for one call to Train.
type TrainOpt func(t *trainer)

type trainer struct {
	learnRate  float32
	momentum   float32
	iterations int
	every      int

	logger   *log.Logger
	observer Observer
}

// WithLearnRate sets the learning rate.
func WithLearnRate(eta float32) TrainOpt { return func(t *trainer) { t.learnRate = eta } }

// WithMomentum sets the momentum factor applied to the previous weight change.
func WithMomentum(m float32) TrainOpt { return func(t *trainer) { t.momentum = m } }

// WithIterations sets the number of epochs.
func WithIterations(iters int) TrainOpt { return func(t *trainer) { t.iterations = iters } }

// WithLogEvery sets the sampling cadence of the epoch telemetry. 0 disables it.
func WithLogEvery(every int) TrainOpt { return func(t *trainer) { t.every = every } }

// WithLogger logs the sampled epoch errors to l.
func WithLogger(l *log.Logger) TrainOpt { return func(t *trainer) { t.logger = l } }

// WithObserver sends the sampled epoch errors to f.
func WithObserver(f Observer) TrainOpt { return func(t *trainer) { t.observer = f } }

func (t *trainer) report(epoch int, cost float32) {
	if t.every <= 0 || epoch%t.every != 0 {
		return
	}
	if t.logger != nil {
		t.logger.Printf("epoch %d\terror %v", epoch, cost)
	}
	if t.observer != nil {
		t.observer(epoch, cost)
	}
}

// Train runs exactly the configured number of epochs over patterns, in order.
// Each pattern is activated then backpropagated. There is no early stopping, and a NaN or Inf
// epoch error does not stop training either: it only shows up in the telemetry.
//
// All patterns are checked before any weight changes, so a pattern that does not fit
// the topology fails the call with ErrDimensionMismatch and leaves the network untouched.
func (n *Net) Train(patterns []Pattern, opts ...TrainOpt) error {
	t := trainer{
		learnRate:  n.LearningRate,
		momentum:   n.Config.Momentum,
		iterations: n.Iterations,
		every:      n.LogEvery,
	}
	for _, opt := range opts {
		opt(&t)
	}
	if t.iterations < 1 {
		return errors.Wrapf(ErrInvalidConfiguration, "iterations %d", t.iterations)
	}
	if err := n.checkPatterns(patterns, true); err != nil {
		return err
	}

	for i := 0; i < t.iterations; i++ {
		var cost float32
		for _, p := range patterns {
			if err := n.activate(p.Input); err != nil {
				return err
			}
			n.primed = false
			cost += n.backward(n.inputs, n.hidden, n.outputs, p.Target, t.learnRate, t.momentum)
		}
		t.report(i, cost)
	}
	return nil
}

// Infer activates every pattern's input and returns the outputs in the same order.
// Targets are ignored and the weights are not modified.
func (n *Net) Infer(patterns []Pattern) ([][]float32, error) {
	if err := n.checkPatterns(patterns, false); err != nil {
		return nil, err
	}
	retVal := make([][]float32, 0, len(patterns))
	for _, p := range patterns {
		out, err := n.Activate(p.Input)
		if err != nil {
			return nil, err
		}
		retVal = append(retVal, out)
	}
	return retVal, nil
}

// Cost returns the summed squared error of the network over patterns without training.
func (n *Net) Cost(patterns []Pattern) (float32, error) {
	outputs, err := n.Infer(patterns)
	if err != nil {
		return 0, err
	}
	if err = n.checkPatterns(patterns, true); err != nil {
		return 0, err
	}
	var cost float32
	for i, out := range outputs {
		cost += sqErr(patterns[i].Target, out)
	}
	return cost, nil
}
