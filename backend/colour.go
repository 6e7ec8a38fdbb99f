package main

import "fmt"

type Colour struct {
	R uint8
	G uint8
	B uint8
}

var (
	PacificPoint    = Colour{R: 1, G: 128, B: 181}
	RealRed         = Colour{R: 199, G: 44, B: 58}
	OldOlive        = Colour{R: 138, G: 151, B: 71}
	DaffodilDelight = Colour{R: 255, G: 211, B: 92}
)

// Palette returns a fresh copy of the board colours, in display order.
func Palette() []Colour {
	return []Colour{PacificPoint, RealRed, OldOlive, DaffodilDelight}
}

func (c Colour) String() string {
	switch c {
	case PacificPoint:
		return "Pacific Point"
	case RealRed:
		return "Real Red"
	case OldOlive:
		return "Old Olive"
	case DaffodilDelight:
		return "Daffodil Delight"
	default:
		return c.Hex()
	}
}

func (c Colour) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
