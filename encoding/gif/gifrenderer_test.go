package gif

import (
	"bytes"
	"image/gif"
	"testing"

	ann "github.com/LaurianeGelebart/ArtificialNeuralNetworks"
	"github.com/stretchr/testify/assert"
)

func TestEncoder(t *testing.T) {
	assert := assert.New(t)
	conf := ann.DefaultConfig()
	conf.NNConf.Iterations = 50

	var buf bytes.Buffer
	enc := NewGifEncoder(300, 500)
	enc.Writer = &buf
	conf.OutputEncoder = enc

	d, err := ann.New(nil, conf)
	if err != nil {
		t.Fatal(err)
	}
	if err = d.Run(); err != nil {
		t.Fatalf("%+v", err)
	}
	if err = d.ToggleTarget(0, 0); err != nil {
		t.Fatalf("%+v", err)
	}
	if err = enc.Flush(); err != nil {
		t.Fatal(err)
	}

	decoded, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatal(err)
	}
	assert.Len(decoded.Image, 2, "one frame per run")
	assert.True(enc.W <= 500)
	assert.True(enc.H <= 300)
	assert.Equal(enc.W, decoded.Config.Width)
}
