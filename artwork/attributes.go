// Package artwork selects rendering attributes from a 256-bit seed and
// renders them as a self-contained SVG document.
package artwork

import "github.com/holiman/uint256"

// ShapeKind selects the foreground composition of an artwork.
type ShapeKind int

const (
	ShapeCircles ShapeKind = iota
	ShapeRectangles
	ShapeStar
)

// DisplayName returns the human-readable trait value for the shape.
func (k ShapeKind) DisplayName() string {
	switch k {
	case ShapeCircles:
		return "Concentric Circles"
	case ShapeRectangles:
		return "Rounded Rectangles"
	case ShapeStar:
		return "Star Polygon"
	}
	return "Unknown"
}

// Attributes are the seed-derived rendering inputs: two 24-bit colors
// and a shape kind.
type Attributes struct {
	ColorA uint32
	ColorB uint32
	Shape  ShapeKind
}

var three = uint256.NewInt(3)

// Select decomposes a seed into attributes: ColorA is seed bits
// [24:48), ColorB is bits [48:72), and the shape is seed mod 3.
func Select(seed *uint256.Int) Attributes {
	colorA := uint32(new(uint256.Int).Rsh(seed, 24).Uint64() & 0xFFFFFF)
	colorB := uint32(new(uint256.Int).Rsh(seed, 48).Uint64() & 0xFFFFFF)
	kind := ShapeKind(new(uint256.Int).Mod(seed, three).Uint64())

	return Attributes{
		ColorA: colorA,
		ColorB: colorB,
		Shape:  kind,
	}
}
