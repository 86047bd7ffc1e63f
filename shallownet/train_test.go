package shallow

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/chewxy/math32"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func xorPatterns() []Pattern {
	return []Pattern{
		{Input: []float32{0, 0}, Target: []float32{0}},
		{Input: []float32{0, 1}, Target: []float32{1}},
		{Input: []float32{1, 0}, Target: []float32{1}},
		{Input: []float32{1, 1}, Target: []float32{0}},
	}
}

func TestTrainXOR(t *testing.T) {
	const seeds = 8
	var converged int
	for seed := int64(0); seed < seeds; seed++ {
		conf := DefaultConf(2, 4, 1)
		conf.Seed = seed
		conf.Iterations = 2000
		n, err := New(conf)
		if err != nil {
			t.Fatal(err)
		}

		var last float32
		if err = n.Train(xorPatterns(), WithLearnRate(0.5), WithMomentum(0.1), WithLogEvery(1), WithObserver(func(epoch int, cost float32) { last = cost })); err != nil {
			t.Fatal(err)
		}
		t.Logf("seed %d: final epoch error %v", seed, last)
		if last < 0.05 {
			converged++
		}
	}
	// convergence is statistical: a few initializations may sit in a local minimum
	if converged < seeds-3 {
		t.Errorf("Expected most initializations to learn XOR. %d of %d did", converged, seeds)
	}
}

func TestTrainDeterminism(t *testing.T) {
	conf := DefaultConf(2, 3, 1)
	conf.Iterations = 300
	a, err := New(conf)
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(conf)
	if err != nil {
		t.Fatal(err)
	}
	if err = a.Train(xorPatterns()); err != nil {
		t.Fatal(err)
	}
	if err = b.Train(xorPatterns()); err != nil {
		t.Fatal(err)
	}

	aih, aho := a.Weights()
	bih, bho := b.Weights()
	if diff := cmp.Diff(aih.Data(), bih.Data()); diff != "" {
		t.Errorf("input-hidden weights differ (-a +b):\n%s", diff)
	}
	if diff := cmp.Diff(aho.Data(), bho.Data()); diff != "" {
		t.Errorf("hidden-output weights differ (-a +b):\n%s", diff)
	}

	aout, err := a.Infer(xorPatterns())
	if err != nil {
		t.Fatal(err)
	}
	bout, err := b.Infer(xorPatterns())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(aout, bout); diff != "" {
		t.Errorf("outputs differ (-a +b):\n%s", diff)
	}
}

func TestTrainMismatch(t *testing.T) {
	tests := []struct {
		name     string
		patterns []Pattern
	}{
		{"short input", []Pattern{{Input: []float32{0, 0}, Target: []float32{0}}, {Input: []float32{1}, Target: []float32{1}}}},
		{"long target", []Pattern{{Input: []float32{0, 0}, Target: []float32{0}}, {Input: []float32{1, 1}, Target: []float32{1, 0}}}},
		{"missing target", []Pattern{{Input: []float32{0, 0}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := New(DefaultConf(2, 2, 1))
			if err != nil {
				t.Fatal(err)
			}
			ih, ho := n.Weights()
			if err = n.Train(tt.patterns, WithIterations(5)); !errors.Is(err, ErrDimensionMismatch) {
				t.Errorf("Expected ErrDimensionMismatch. Got %v", err)
			}
			ih2, ho2 := n.Weights()
			assert.Equal(t, ih.Data(), ih2.Data(), "weights must be untouched")
			assert.Equal(t, ho.Data(), ho2.Data(), "weights must be untouched")
		})
	}
}

func TestTrainTelemetry(t *testing.T) {
	assert := assert.New(t)
	conf := DefaultConf(2, 2, 1)
	conf.Iterations = 350
	n, err := New(conf)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	var epochs []int
	err = n.Train(xorPatterns(),
		WithLogger(log.New(&buf, "", 0)),
		WithObserver(func(epoch int, cost float32) { epochs = append(epochs, epoch) }),
	)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal([]int{0, 100, 200, 300}, epochs)
	assert.Equal(4, strings.Count(buf.String(), "\n"))
	assert.True(strings.HasPrefix(buf.String(), "epoch 0\terror "), buf.String())

	epochs = epochs[:0]
	if err = n.Train(xorPatterns(), WithIterations(10), WithLogEvery(0), WithObserver(func(epoch int, cost float32) { epochs = append(epochs, epoch) })); err != nil {
		t.Fatal(err)
	}
	assert.Empty(epochs, "LogEvery 0 disables the telemetry")
}

func TestTrainOverflowRunsEveryEpoch(t *testing.T) {
	assert := assert.New(t)
	conf := DefaultConf(2, 2, 1)
	conf.Iterations = 500
	n, err := New(conf)
	if err != nil {
		t.Fatal(err)
	}
	patterns := []Pattern{
		{Input: []float32{0, 1}, Target: []float32{3e38}},
		{Input: []float32{1, 0}, Target: []float32{-3e38}},
	}

	var epochs int
	var last float32
	err = n.Train(patterns, WithLogEvery(1), WithObserver(func(epoch int, cost float32) {
		epochs++
		last = cost
	}))
	assert.NoError(err, "an overflowing error is reported, not raised")
	assert.Equal(500, epochs)
	assert.True(math32.IsNaN(last) || math32.IsInf(last, 0), "Expected a non finite error. Got %v", last)
}

func TestTrainInvalidIterations(t *testing.T) {
	n, err := New(DefaultConf(2, 2, 1))
	if err != nil {
		t.Fatal(err)
	}
	if err = n.Train(xorPatterns(), WithIterations(0)); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("Expected ErrInvalidConfiguration. Got %v", err)
	}
}

func TestInferIdempotent(t *testing.T) {
	conf := DefaultConf(2, 2, 1)
	conf.Iterations = 100
	n, err := New(conf)
	if err != nil {
		t.Fatal(err)
	}
	if err = n.Train(xorPatterns()); err != nil {
		t.Fatal(err)
	}
	ih, _ := n.Weights()

	first, err := n.Infer(xorPatterns())
	if err != nil {
		t.Fatal(err)
	}
	second, err := n.Infer(xorPatterns())
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, first, second)
	assert.Len(t, first, 4)

	ih2, _ := n.Weights()
	assert.Equal(t, ih.Data(), ih2.Data(), "inference must not change the weights")
}

func TestInferIgnoresTargets(t *testing.T) {
	n, err := New(DefaultConf(2, 2, 1))
	if err != nil {
		t.Fatal(err)
	}
	out, err := n.Infer([]Pattern{{Input: []float32{0, 1}}, {Input: []float32{1, 1}, Target: []float32{1, 2, 3}}})
	if err != nil {
		t.Fatal(err)
	}
	assert.Len(t, out, 2)

	if _, err = n.Infer([]Pattern{{Input: []float32{0, 1, 0}}}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Expected ErrDimensionMismatch. Got %v", err)
	}
}

func TestCost(t *testing.T) {
	conf := DefaultConf(2, 4, 1)
	conf.Iterations = 200
	n, err := New(conf)
	if err != nil {
		t.Fatal(err)
	}
	before, err := n.Cost(xorPatterns())
	if err != nil {
		t.Fatal(err)
	}
	if err = n.Train(xorPatterns()); err != nil {
		t.Fatal(err)
	}
	after, err := n.Cost(xorPatterns())
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("cost before %v, after %v", before, after)
	assert.True(t, after < before, "training should reduce the cost")
}
