package shallow

import (
	"fmt"

	"github.com/awalterschulze/gographviz"
	"github.com/chewxy/math32"
)

// ToDot renders the network as a graphviz digraph. Edges are labelled with their weights;
// positive weights are blue, negative ones red, and the pen width grows with the magnitude.
func (n *Net) ToDot() string {
	g := gographviz.NewGraph()
	if err := g.SetName("G"); err != nil {
		panic(err)
	}
	g.SetDir(true)
	g.AddAttr("G", "rankdir", "LR")

	layer := func(prefix string, size int, bias bool) {
		for i := 0; i < size; i++ {
			label := fmt.Sprintf("%s%d", prefix, i)
			shape := "circle"
			if bias && i == size-1 {
				label = "bias"
				shape = "box"
			}
			g.AddNode("G", fmt.Sprintf("%s%d", prefix, i), map[string]string{
				"label": fmt.Sprintf("%q", label),
				"shape": shape,
			})
		}
	}
	layer("x", n.Input+1, true)
	layer("h", n.Hidden, false)
	layer("y", n.Output, false)

	edges := func(src, dst string, w [][]float32) {
		for i, row := range w {
			for j, v := range row {
				g.AddEdge(fmt.Sprintf("%s%d", src, i), fmt.Sprintf("%s%d", dst, j), true, edgeAttrs(v))
			}
		}
	}
	edges("x", "h", n.ih)
	edges("h", "y", n.ho)
	return g.String()
}

func edgeAttrs(w float32) map[string]string {
	colour := "blue"
	if w < 0 {
		colour = "red"
	}
	width := 0.5 + math32.Min(math32.Abs(w), 4)
	return map[string]string{
		"label":    fmt.Sprintf("%q", fmt.Sprintf("%.3f", w)),
		"color":    colour,
		"penwidth": fmt.Sprintf("%.2f", width),
	}
}
