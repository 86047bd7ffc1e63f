package ann

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Shade is how a value is displayed: close to 0, close to 1, or neither.
type Shade int32

const (
	Grey Shade = iota // undecided
	White
	Black
)

// Classify shades v: White when |v| <= eps, Black when |v-1| <= eps, Grey otherwise.
// Network outputs never reach 0 or 1 exactly, so exact comparison would always give Grey.
func Classify(v, eps float32) Shade {
	switch {
	case math32.Abs(v) <= eps:
		return White
	case math32.Abs(v-1) <= eps:
		return Black
	}
	return Grey
}

// Bit is the binary value of a decided shade. ok is false for Grey.
func (s Shade) Bit() (v float32, ok bool) {
	switch s {
	case White:
		return 0, true
	case Black:
		return 1, true
	}
	return 0, false
}

func (s Shade) Format(st fmt.State, c rune) {
	switch c {
	case 's': // used in boards
		switch s {
		case Grey:
			fmt.Fprint(st, "▒")
		case White:
			fmt.Fprint(st, "·")
		case Black:
			fmt.Fprint(st, "█")
		}
	default:
		switch s {
		case Grey:
			fmt.Fprint(st, "Grey")
		case White:
			fmt.Fprint(st, "White")
		case Black:
			fmt.Fprint(st, "Black")
		}
	}
}

func (s Shade) String() string { return fmt.Sprintf("%v", s) }
