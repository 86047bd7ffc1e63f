package main

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	ann "github.com/LaurianeGelebart/ArtificialNeuralNetworks"
	"github.com/gorilla/websocket"
)

// run is what a websocket client receives after every training run.
type run struct {
	Name    string      `json:"name"`
	Run     int         `json:"run"`
	Error   float32     `json:"error"`
	Inputs  [][]float32 `json:"inputs"`
	Targets [][]float32 `json:"targets"`
	Outputs [][]float32 `json:"outputs"`
	Shades  [][]string  `json:"shades"`
}

// Encoder broadcasts every run to the connected websocket clients. It implements ann.OutputEncoder.
type Encoder struct {
	sync.Mutex
	subs map[chan []byte]struct{}
}

var upgrader = websocket.Upgrader{} // use default options

func NewEncoder() *Encoder {
	return &Encoder{
		subs: make(map[chan []byte]struct{}),
	}
}

func (enc *Encoder) subscribe() chan []byte {
	ch := make(chan []byte, 8)
	enc.Lock()
	enc.subs[ch] = struct{}{}
	enc.Unlock()
	return ch
}

func (enc *Encoder) unsubscribe(ch chan []byte) {
	enc.Lock()
	delete(enc.subs, ch)
	enc.Unlock()
}

// Encode a run
func (enc *Encoder) Encode(ms ann.MetaState) error {
	g := ms.Grid()
	r := run{
		Name:    ms.Name(),
		Run:     ms.RunNumber(),
		Error:   ms.Cost(),
		Outputs: ms.Outputs(),
	}
	for i := 0; i < g.Rows(); i++ {
		r.Inputs = append(r.Inputs, g.Input(i))
		r.Targets = append(r.Targets, g.Target(i))
	}
	for _, row := range r.Outputs {
		shades := make([]string, len(row))
		for j, v := range row {
			shades[j] = ann.Classify(v, ms.Epsilon()).String()
		}
		r.Shades = append(r.Shades, shades)
	}
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}

	enc.Lock()
	defer enc.Unlock()
	for ch := range enc.subs {
		select {
		case ch <- b:
		default:
			log.Println("dropping a run for a slow client")
		}
	}
	return nil
}

// Flush ...
func (enc *Encoder) Flush() error { return nil }

// server answers commands sent over a websocket and streams runs back.
type server struct {
	sync.Mutex
	enc *Encoder
	in  chan<- string
	out <-chan string
}

func (s *server) do(cmd string) string {
	s.Lock()
	defer s.Unlock()
	s.in <- cmd
	return <-s.out
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Print("upgrade:", err)
		return
	}
	defer c.Close()

	runs := s.enc.subscribe()
	defer s.enc.unsubscribe(runs)

	done := make(chan struct{})
	defer close(done)
	replies := make(chan string)
	go func() {
		defer close(replies)
		for {
			_, msg, err := c.ReadMessage()
			if err != nil {
				return
			}
			select {
			case replies <- s.do(string(msg)):
			case <-done:
				return
			}
		}
	}()

	for {
		var b []byte
		select {
		case b = <-runs:
		case reply, ok := <-replies:
			if !ok {
				return
			}
			b = []byte(reply)
		case <-r.Context().Done():
			return
		}
		if err = c.WriteMessage(websocket.TextMessage, b); err != nil {
			log.Println("write:", err)
			return
		}
	}
}
