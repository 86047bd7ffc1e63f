package mjpeg

import (
	"bytes"
	"image/jpeg"
	"log"
	"net/http"

	ann "github.com/LaurianeGelebart/ArtificialNeuralNetworks"
	"github.com/LaurianeGelebart/ArtificialNeuralNetworks/encoding"
	"github.com/mattn/go-mjpeg"
)

// Encoder streams the frame of the latest run as motion JPEG over HTTP. It implements ann.OutputEncoder.
type Encoder struct {
	encoding.Renderer

	stream *mjpeg.Stream
}

func (e *Encoder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	e.stream.ServeHTTP(w, r)
}

// NewEncoder with height and width
func NewEncoder(h, w int) *Encoder {
	return &Encoder{
		Renderer: encoding.NewRenderer(h, w),
		stream:   mjpeg.NewStream(),
	}
}

// Encode a run
func (enc *Encoder) Encode(ms ann.MetaState) error {
	im := enc.Render(ms)
	var b bytes.Buffer
	err := jpeg.Encode(&b, im, nil)
	if err != nil {
		log.Println(err)
		return err
	}
	err = enc.stream.Update(b.Bytes())
	if err != nil {
		log.Println(err)
		return err
	}
	return nil
}

func (enc *Encoder) Flush() error { return nil }
