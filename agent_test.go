package ann

import (
	"sync"
	"testing"

	shallow "github.com/LaurianeGelebart/ArtificialNeuralNetworks/shallownet"
	"github.com/stretchr/testify/assert"
)

func TestAgentConcurrentPredict(t *testing.T) {
	conf := shallow.DefaultConf(4, 6, 2)
	conf.Iterations = 200
	nn, err := shallow.New(conf)
	if err != nil {
		t.Fatal(err)
	}
	g := DefaultGrid(4, 2)
	if err = nn.Train(g.Patterns()); err != nil {
		t.Fatal(err)
	}
	want, err := nn.Infer(g.Patterns())
	if err != nil {
		t.Fatal(err)
	}

	a := NewAgent(nn)
	if _, err = a.Predict(g.Input(0)); err == nil {
		t.Error("Expected an error before SwitchToInference")
	}
	if err = a.SwitchToInference(3); err != nil {
		t.Fatalf("%+v", err)
	}

	var wg sync.WaitGroup
	got := make([][]float32, 16)
	errs := make([]error, 16)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i], errs[i] = a.Predict(g.Input(i % g.Rows()))
		}(i)
	}
	wg.Wait()
	for i := range got {
		if errs[i] != nil {
			t.Fatalf("%+v", errs[i])
		}
		assert.InDeltaSlice(t, want[i%g.Rows()], got[i], 1e-5)
	}
	assert.NoError(t, a.Close())
}

func TestAgentPredictAfterClose(t *testing.T) {
	nn, err := shallow.New(shallow.DefaultConf(4, 6, 2))
	if err != nil {
		t.Fatal(err)
	}
	input := DefaultGrid(4, 2).Input(0)

	a := NewAgent(nn)
	if err = a.SwitchToInference(2); err != nil {
		t.Fatalf("%+v", err)
	}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// racing Close: either a full prediction or an error, never a panic
			if out, err := a.Predict(input); err == nil {
				assert.Len(t, out, 2)
			}
		}()
	}
	assert.NoError(t, a.Close())
	wg.Wait()

	out, err := a.Predict(input)
	assert.Error(t, err)
	assert.Nil(t, out)
	assert.Error(t, a.SwitchToInference(1), "a closed agent cannot be reused")
}
