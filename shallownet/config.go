package shallow

import "github.com/pkg/errors"

// Config configures the neural network
type Config struct {
	Input  int // number of input units, excluding the bias unit
	Hidden int // number of hidden units
	Output int // number of output units

	Iterations   int     // training epochs per call to Train
	LearningRate float32 // default learning rate
	Momentum     float32 // default momentum factor
	LogEvery     int     // epoch sampling cadence of the training telemetry

	Seed int64 // seed of the weight initialization
}

func DefaultConf(input, hidden, output int) Config {
	return Config{
		Input:  input,
		Hidden: hidden,
		Output: output,

		Iterations:   5000,
		LearningRate: 0.5,
		Momentum:     0.1,
		LogEvery:     100,
		Seed:         1337,
	}
}

func (conf Config) IsValid() bool {
	return conf.Input >= 1 &&
		conf.Hidden >= 1 &&
		conf.Output >= 1 &&
		conf.Iterations >= 1 &&
		conf.LogEvery >= 0
}

// check is IsValid with a reason.
func (conf Config) check() error {
	switch {
	case conf.Input < 1:
		return errors.Wrapf(ErrInvalidConfiguration, "input size %d", conf.Input)
	case conf.Hidden < 1:
		return errors.Wrapf(ErrInvalidConfiguration, "hidden size %d", conf.Hidden)
	case conf.Output < 1:
		return errors.Wrapf(ErrInvalidConfiguration, "output size %d", conf.Output)
	case conf.Iterations < 1:
		return errors.Wrapf(ErrInvalidConfiguration, "iterations %d", conf.Iterations)
	case conf.LogEvery < 0:
		return errors.Wrapf(ErrInvalidConfiguration, "log cadence %d", conf.LogEvery)
	}
	return nil
}
