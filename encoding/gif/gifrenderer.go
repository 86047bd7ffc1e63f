package gif

import (
	"image/gif"
	"io"

	ann "github.com/LaurianeGelebart/ArtificialNeuralNetworks"
	"github.com/LaurianeGelebart/ArtificialNeuralNetworks/encoding"
)

// Encoder collects one frame per run and writes them as an animated GIF. It implements ann.OutputEncoder.
type Encoder struct {
	encoding.Renderer

	out *gif.GIF
	io.Writer
}

// NewGifEncoder with height and width
func NewGifEncoder(h, w int) *Encoder {
	return &Encoder{
		Renderer: encoding.NewRenderer(h, w),
		out:      &gif.GIF{LoopCount: -1},
	}
}

// Encode a run
func (enc *Encoder) Encode(ms ann.MetaState) error {
	enc.out.Image = append(enc.out.Image, enc.Render(ms))
	enc.out.Delay = append(enc.out.Delay, 100)
	return nil
}

// Flush writes the gif into the writer
func (enc *Encoder) Flush() error { return gif.EncodeAll(enc.Writer, enc.out) }
