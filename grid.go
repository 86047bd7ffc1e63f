package ann

import (
	"bytes"
	"fmt"

	shallow "github.com/LaurianeGelebart/ArtificialNeuralNetworks/shallownet"
	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"gorgonia.org/vecf32"
)

var (
	defaultInputs = [][]float32{
		{0, 0, 1, 1},
		{0, 1, 0, 0},
		{1, 0, 1, 0},
		{1, 1, 0, 1},
	}
	defaultTargets = [][]float32{
		{0, 0},
		{1, 0},
		{1, 1},
		{0, 1},
	}
)

// Grid is the editable set of patterns: one row per pattern, input cells then target cells.
type Grid struct {
	rows, inputs, outputs int

	in  []float32 // rows × inputs
	out []float32 // rows × outputs
}

// DefaultGrid returns the four default patterns fitted to the given widths.
// Rows wider than requested are truncated, narrower ones are padded with zeros.
func DefaultGrid(inputs, outputs int) *Grid {
	return &Grid{
		rows:    len(defaultInputs),
		inputs:  inputs,
		outputs: outputs,
		in:      fit(defaultInputs, inputs),
		out:     fit(defaultTargets, outputs),
	}
}

// NewGrid creates a grid from explicit rows. All input rows must have the same width, as must all target rows.
func NewGrid(inputs, targets [][]float32) (*Grid, error) {
	if len(inputs) != len(targets) {
		return nil, errors.Errorf("%d input rows but %d target rows", len(inputs), len(targets))
	}
	if len(inputs) == 0 {
		return nil, errors.New("a grid needs at least one row")
	}
	w, h := len(inputs[0]), len(targets[0])
	for i := range inputs {
		if len(inputs[i]) != w {
			return nil, errors.Wrapf(shallow.ErrDimensionMismatch, "input row %d has %d cells, expected %d", i, len(inputs[i]), w)
		}
		if len(targets[i]) != h {
			return nil, errors.Wrapf(shallow.ErrDimensionMismatch, "target row %d has %d cells, expected %d", i, len(targets[i]), h)
		}
	}
	return &Grid{
		rows:    len(inputs),
		inputs:  w,
		outputs: h,
		in:      fit(inputs, w),
		out:     fit(targets, h),
	}, nil
}

func fit(rows [][]float32, width int) []float32 {
	retVal := make([]float32, len(rows)*width)
	for i, row := range rows {
		copy(retVal[i*width:(i+1)*width], row)
	}
	return retVal
}

func (g *Grid) Rows() int    { return g.rows }
func (g *Grid) Inputs() int  { return g.inputs }
func (g *Grid) Outputs() int { return g.outputs }

// Input returns a copy of the input cells of a row.
func (g *Grid) Input(row int) []float32 {
	return cloneRow(g.in, row, g.inputs)
}

// Target returns a copy of the target cells of a row.
func (g *Grid) Target(row int) []float32 {
	return cloneRow(g.out, row, g.outputs)
}

func cloneRow(a []float32, row, width int) []float32 {
	retVal := make([]float32, width)
	copy(retVal, a[row*width:(row+1)*width])
	return retVal
}

// ToggleInput flips an input cell between 0 and 1.
func (g *Grid) ToggleInput(row, col int) error {
	if row < 0 || row >= g.rows || col < 0 || col >= g.inputs {
		return errors.Errorf("no input cell at (%d, %d) in a %d×%d grid", row, col, g.rows, g.inputs)
	}
	toggle(g.in, row*g.inputs+col)
	return nil
}

// ToggleTarget flips a target cell between 0 and 1.
func (g *Grid) ToggleTarget(row, col int) error {
	if row < 0 || row >= g.rows || col < 0 || col >= g.outputs {
		return errors.Errorf("no target cell at (%d, %d) in a %d×%d grid", row, col, g.rows, g.outputs)
	}
	toggle(g.out, row*g.outputs+col)
	return nil
}

func toggle(a []float32, i int) { a[i] = math32.Abs(1 - a[i]) }

// Invert flips every input and target cell: v becomes 1 - v.
func (g *Grid) Invert() {
	for _, a := range [][]float32{g.in, g.out} {
		ones := make([]float32, len(a))
		for i := range ones {
			ones[i] = 1
		}
		vecf32.Sub(ones, a)
		copy(a, ones)
	}
}

// Patterns returns the rows as training patterns. The slices are copies.
func (g *Grid) Patterns() []shallow.Pattern {
	retVal := make([]shallow.Pattern, g.rows)
	for i := range retVal {
		retVal[i] = shallow.Pattern{
			Input:  g.Input(i),
			Target: g.Target(i),
		}
	}
	return retVal
}

// Board draws the grid, one row per pattern, with the given outputs shaded next to the targets.
// outputs may be nil.
func (g *Grid) Board(outputs [][]float32, eps float32) string {
	var buf bytes.Buffer
	for i := 0; i < g.rows; i++ {
		fmt.Fprint(&buf, "⎢ ")
		for _, v := range g.Input(i) {
			fmt.Fprintf(&buf, "%s ", Classify(v, eps))
		}
		fmt.Fprint(&buf, "│ ")
		for _, v := range g.Target(i) {
			fmt.Fprintf(&buf, "%s ", Classify(v, eps))
		}
		if i < len(outputs) {
			fmt.Fprint(&buf, "│ ")
			for _, v := range outputs[i] {
				fmt.Fprintf(&buf, "%s ", Classify(v, eps))
			}
		}
		fmt.Fprintln(&buf, "⎥")
	}
	return buf.String()
}

func (g *Grid) String() string { return g.Board(nil, 0) }
