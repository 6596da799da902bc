package artwork

import (
	"bytes"
	"fmt"
	"math"

	"github.com/artmint/go-artmint/encode"
)

// Visual constants for rendering
const (
	canvasSize = 400.0
	centerX    = 200.0
	centerY    = 200.0
	labelY     = 380.0

	outerCircleRadius  = 120.0
	innerCircleRadius  = 70.0
	outerCircleOpacity = 0.95
	innerCircleOpacity = 0.85

	outerRectSize    = 240.0
	innerRectSize    = 180.0
	outerRectRadius  = 30.0
	innerRectRadius  = 25.0
	innerRectOpacity = 0.9
	rectRotation     = 25.0

	starSpikes      = 10
	starOuterRadius = 140.0
	starInnerRadius = 60.0
	starCoreRadius  = 45.0
)

// RenderSVG builds the 400x400 artwork document for an asset: a linear
// gradient background from ColorA to ColorB, a shape-specific
// foreground, and the asset's label. The result is a complete
// standalone SVG string.
func RenderSVG(id uint64, attrs Attributes) string {
	fillA := "#" + encode.Hex24(attrs.ColorA)
	fillB := "#" + encode.Hex24(attrs.ColorB)

	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`,
		canvasSize, canvasSize, canvasSize, canvasSize))

	// Background gradient
	buf.WriteString(`<defs>`)
	buf.WriteString(`<linearGradient id="bg" x1="0" y1="0" x2="1" y2="1">`)
	buf.WriteString(fmt.Sprintf(`<stop offset="0%%" stop-color="%s"/>`, fillA))
	buf.WriteString(fmt.Sprintf(`<stop offset="100%%" stop-color="%s"/>`, fillB))
	buf.WriteString(`</linearGradient>`)
	buf.WriteString(`</defs>`)
	buf.WriteString(fmt.Sprintf(`<rect width="%.0f" height="%.0f" fill="url(#bg)"/>`, canvasSize, canvasSize))

	switch attrs.Shape {
	case ShapeCircles:
		drawCircles(&buf, fillA, fillB)
	case ShapeRectangles:
		drawRectangles(&buf, fillA, fillB)
	case ShapeStar:
		drawStar(&buf, fillA, fillB)
	}

	drawLabel(&buf, id)

	buf.WriteString(`</svg>`)

	return buf.String()
}

func drawCircles(buf *bytes.Buffer, fillA, fillB string) {
	buf.WriteString(fmt.Sprintf(`<circle cx="%.0f" cy="%.0f" r="%.0f" fill="%s" fill-opacity="%.2f"/>`,
		centerX, centerY, outerCircleRadius, fillA, outerCircleOpacity))
	buf.WriteString(fmt.Sprintf(`<circle cx="%.0f" cy="%.0f" r="%.0f" fill="%s" fill-opacity="%.2f"/>`,
		centerX, centerY, innerCircleRadius, fillB, innerCircleOpacity))
}

func drawRectangles(buf *bytes.Buffer, fillA, fillB string) {
	rotate := fmt.Sprintf(`rotate(%.0f %.0f %.0f)`, rectRotation, centerX, centerY)

	buf.WriteString(fmt.Sprintf(`<rect x="%.0f" y="%.0f" width="%.0f" height="%.0f" rx="%.0f" fill="%s" transform="%s"/>`,
		centerX-outerRectSize/2, centerY-outerRectSize/2, outerRectSize, outerRectSize, outerRectRadius, fillA, rotate))
	buf.WriteString(fmt.Sprintf(`<rect x="%.0f" y="%.0f" width="%.0f" height="%.0f" rx="%.0f" fill="%s" fill-opacity="%.2f" transform="%s"/>`,
		centerX-innerRectSize/2, centerY-innerRectSize/2, innerRectSize, innerRectSize, innerRectRadius, fillB, innerRectOpacity, rotate))
}

func drawStar(buf *bytes.Buffer, fillA, fillB string) {
	buf.WriteString(fmt.Sprintf(`<polygon points="%s" fill="%s"/>`, starPoints(), fillA))
	buf.WriteString(fmt.Sprintf(`<circle cx="%.0f" cy="%.0f" r="%.0f" fill="%s"/>`,
		centerX, centerY, starCoreRadius, fillB))
}

func drawLabel(buf *bytes.Buffer, id uint64) {
	buf.WriteString(fmt.Sprintf(`<text x="%.0f" y="%.0f" text-anchor="middle" font-family="system-ui, Arial" font-size="20" fill="#ffffff">AI Artwork #%s</text>`,
		centerX, labelY, encode.Uint(id)))
}

// starPoints builds the vertex list for the fixed star outline: spikes
// alternate between the outer and inner radius, with the first spike
// pointing straight up.
func starPoints() string {
	var buf bytes.Buffer
	step := math.Pi / starSpikes
	for i := 0; i < starSpikes*2; i++ {
		r := starOuterRadius
		if i%2 == 1 {
			r = starInnerRadius
		}
		angle := -math.Pi/2 + float64(i)*step
		x := centerX + r*math.Cos(angle)
		y := centerY + r*math.Sin(angle)
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
	}
	return buf.String()
}
