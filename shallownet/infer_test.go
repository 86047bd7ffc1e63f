package shallow

import (
	"runtime"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestInferencerMatchesNet(t *testing.T) {
	conf := DefaultConf(4, 10, 2)
	conf.Iterations = 200
	n, err := New(conf)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	patterns := []Pattern{
		{Input: []float32{0, 0, 1, 1}, Target: []float32{0, 0}},
		{Input: []float32{0, 1, 0, 0}, Target: []float32{1, 0}},
		{Input: []float32{1, 0, 1, 0}, Target: []float32{1, 1}},
		{Input: []float32{1, 1, 0, 1}, Target: []float32{0, 1}},
		{Input: []float32{1, 1, 1, 1}, Target: []float32{0, 0}},
	}
	if err = n.Train(patterns); err != nil {
		t.Fatal(err)
	}
	want, err := n.Infer(patterns)
	if err != nil {
		t.Fatal(err)
	}

	// a batch size that does not divide the pattern count exercises the padding of the last batch
	inferer, err := Infer(n, 2, false)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	defer inferer.Close()

	inputs := make([][]float32, len(patterns))
	for i, p := range patterns {
		inputs[i] = p.Input
	}
	got, err := inferer.Infer(inputs)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if !assert.Len(t, got, len(want)) {
		return
	}
	for i := range want {
		assert.InDeltaSlice(t, want[i], got[i], 1e-5, "pattern %d", i)
	}
	runtime.GC()
}

func TestInferencerSnapshot(t *testing.T) {
	n, err := New(DefaultConf(2, 2, 1))
	if err != nil {
		t.Fatal(err)
	}
	inferer, err := Infer(n, 4, false)
	if err != nil {
		t.Fatal(err)
	}
	defer inferer.Close()

	inputs := [][]float32{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	before, err := inferer.Infer(inputs)
	if err != nil {
		t.Fatal(err)
	}
	if err = n.Train(xorPatterns(), WithIterations(50)); err != nil {
		t.Fatal(err)
	}
	after, err := inferer.Infer(inputs)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, before, after, "training the network must not affect an existing Inferencer")
}

func TestInferencerMismatch(t *testing.T) {
	n, err := New(DefaultConf(2, 2, 1))
	if err != nil {
		t.Fatal(err)
	}
	if _, err = Infer(n, 0, false); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("Expected ErrInvalidConfiguration. Got %v", err)
	}

	inferer, err := Infer(n, 2, false)
	if err != nil {
		t.Fatal(err)
	}
	defer inferer.Close()
	if _, err = inferer.Infer([][]float32{{0, 1}, {1}}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Expected ErrDimensionMismatch. Got %v", err)
	}
}

func TestInferencer_ExecLog(t *testing.T) {
	n, err := New(DefaultConf(2, 2, 1))
	if err != nil {
		t.Fatal(err)
	}

	inferer, err := Infer(n, 1, false)
	if err != nil {
		t.Fatal(err)
	}
	defer inferer.Close()
	if _, err = inferer.Infer([][]float32{{1, 0}}); err != nil {
		t.Fatal(err)
	}

	if inferer.ExecLog() != "" {
		t.Error("Should not have any logs")
	}
}
