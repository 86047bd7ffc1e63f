package main

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	ann "github.com/LaurianeGelebart/ArtificialNeuralNetworks"
	"github.com/LaurianeGelebart/ArtificialNeuralNetworks/gtp"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

func TestServer(t *testing.T) {
	assert := assert.New(t)
	enc := NewEncoder()
	conf := ann.DefaultConfig()
	conf.NNConf.Iterations = 50
	conf.OutputEncoder = enc
	d, err := ann.New(nil, conf)
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()
	if err = d.Run(); err != nil {
		t.Fatal(err)
	}

	in, out := gtp.New(d, conf.Name, "1", nil).Start()
	ts := httptest.NewServer(&server{enc: enc, in: in, out: out})
	defer ts.Close()

	c, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http"), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if err = c.WriteMessage(websocket.TextMessage, []byte("toggle_target 3 0")); err != nil {
		t.Fatal(err)
	}

	// the run and the reply may arrive in any order
	var reply string
	var r run
	for i := 0; i < 2; i++ {
		_, msg, err := c.ReadMessage()
		if err != nil {
			t.Fatal(err)
		}
		if strings.HasPrefix(string(msg), "{") {
			if err = json.Unmarshal(msg, &r); err != nil {
				t.Fatal(err)
			}
			continue
		}
		reply = string(msg)
	}
	assert.Equal("= \n\n", reply)
	assert.Equal(2, r.Run)
	assert.Equal(conf.Name, r.Name)
	assert.Equal([]float32{1, 1}, r.Targets[3])
	assert.Len(r.Outputs, 4)
	assert.Len(r.Shades, 4)
}
