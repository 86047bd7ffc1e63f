// Package encoding draws the state of a demo as an image. The gif and mjpeg subpackages
// turn those images into output encoders.
package encoding

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	ann "github.com/LaurianeGelebart/ArtificialNeuralNetworks"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"
)

var regular *truetype.Font

const (
	dpi             = 144.0
	fontsize        = 12.0
	lineheight      = 1.2
	dummyLongString = `Run 100000, Error: 0.0000`

	cell = 24 // side of a grid cell in pixels
	gap  = 12 // space between the input, target and output blocks
)

func init() {
	var err error
	if regular, err = truetype.Parse(gomono.TTF); err != nil {
		panic(err)
	}
}

// Undecided is the colour of a cell that is neither close to 0 nor close to 1.
var Undecided = color.RGBA{255, 0, 0, 255}

// Palette is 255 levels of grey, for the cells and the antialiased text, plus Undecided.
var Palette = func() color.Palette {
	retVal := make(color.Palette, 0, 256)
	for i := 0; i < 255; i++ {
		retVal = append(retVal, color.Gray{uint8(i * 255 / 254)})
	}
	return append(retVal, Undecided)
}()

// Renderer draws one frame per run: the grid rows as cells, black for 1, white for 0 and red
// for anything further than epsilon from both, with the outputs next to the targets,
// followed by the name and the error of the run.
type Renderer struct {
	H, W int
	font.Drawer

	face font.Face

	maxH, maxW  int // maxHeight and maxWidth
	padH, padW  int // padding so everything don't start at the topleft
	initialized bool
}

// NewRenderer with maximum height and width
func NewRenderer(h, w int) Renderer {
	return Renderer{
		H:    -1,
		W:    -1,
		maxH: h,
		maxW: w,
		padH: 10,
		padW: 10,

		Drawer: font.Drawer{
			Src: image.Black,
		},
	}
}

// Render a run. The frame size is fixed by the first call.
func (r *Renderer) Render(ms ann.MetaState) *image.Paletted {
	g := ms.Grid()
	outputs := ms.Outputs()
	dy := int(math.Ceil(fontsize * lineheight * dpi / 72))

	if !r.initialized {
		// lazy init of specifications
		r.face = truetype.NewFace(regular, &truetype.Options{
			Size:    fontsize,
			DPI:     dpi,
			Hinting: font.HintingFull,
		})
		r.Drawer.Src = image.Black
		r.Drawer.Face = r.face

		cols := g.Inputs() + 2*g.Outputs()
		maxW := maxInt(cols*cell+2*gap, maxInt(font.MeasureString(r.Face, dummyLongString).Ceil(), font.MeasureString(r.Face, ms.Name()).Ceil()))
		w := maxW + 2*r.padW
		h := g.Rows()*cell + 2*dy + gap + 2*r.padH // 2 lines of text: name and run

		w = minInt(w, r.maxW)
		h = minInt(h, r.maxH)

		if w == r.maxW {
			r.padW = 0
		}
		if h == r.maxH {
			r.padH = 0
		}

		r.H = h
		r.W = w
		r.initialized = true
	}

	im := image.NewPaletted(image.Rect(0, 0, r.W, r.H), Palette)
	draw.Draw(im, im.Bounds(), image.White, image.Point{}, draw.Src)

	eps := ms.Epsilon()
	y := r.padH
	for i := 0; i < g.Rows(); i++ {
		x := r.padW
		x = drawCells(im, x, y, g.Input(i), eps) + gap
		x = drawCells(im, x, y, g.Target(i), eps) + gap
		if i < len(outputs) {
			drawCells(im, x, y, outputs[i], eps)
		}
		y += cell
	}
	y += gap + dy

	r.Dst = im
	r.Dot = fixed.P(r.padW, y)
	r.DrawString(ms.Name())
	y += dy
	r.Dot = fixed.P(r.padW, y)
	r.DrawString(fmt.Sprintf("Run %d, Error: %.4f", ms.RunNumber(), ms.Cost()))
	return im
}

// drawCells draws one cell per value and returns the x after the last cell.
func drawCells(im *image.Paletted, x, y int, vals []float32, eps float32) int {
	for _, v := range vals {
		outer := image.Rect(x+1, y+1, x+cell-1, y+cell-1)
		draw.Draw(im, outer, image.NewUniform(color.Gray{160}), image.Point{}, draw.Src)
		draw.Draw(im, outer.Inset(1), image.NewUniform(Colour(ann.Classify(v, eps))), image.Point{}, draw.Src)
		x += cell
	}
	return x
}

// Colour of a shaded cell.
func Colour(s ann.Shade) color.Color {
	switch s {
	case ann.White:
		return color.Gray{255}
	case ann.Black:
		return color.Gray{0}
	}
	return Undecided
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
