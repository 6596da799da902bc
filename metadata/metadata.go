// Package metadata assembles the self-describing token document: a
// data: URI wrapping a JSON object whose image field is itself a data:
// URI wrapping the rendered SVG.
package metadata

import (
	"strings"

	"github.com/artmint/go-artmint/artwork"
	"github.com/artmint/go-artmint/encode"
)

const (
	jsonPrefix = "data:application/json;utf8,"
	svgPrefix  = "data:image/svg+xml;utf8,"

	namePrefix  = "AI Artwork #"
	description = "Generative artwork with a seed-derived palette and composition."
)

// TokenDocument builds the metadata document for an asset from its
// seed-derived attributes. The document is assembled fresh on every
// call; nothing is cached.
func TokenDocument(id uint64, attrs artwork.Attributes) string {
	name := namePrefix + encode.Uint(id)
	palette := "#" + encode.Hex24(attrs.ColorA) + " / #" + encode.Hex24(attrs.ColorB)
	image := svgPrefix + artwork.RenderSVG(id, attrs)

	var b strings.Builder
	b.Grow(len(image) + 512)
	b.WriteString(jsonPrefix)
	b.WriteString(`{"name":"`)
	b.WriteString(encode.EscapeJSON(name))
	b.WriteString(`","description":"`)
	b.WriteString(encode.EscapeJSON(description))
	b.WriteString(`","attributes":[{"trait_type":"palette","value":"`)
	b.WriteString(palette)
	b.WriteString(`"},{"trait_type":"shape","value":"`)
	b.WriteString(attrs.Shape.DisplayName())
	b.WriteString(`"}],"image":"`)
	b.WriteString(encode.EscapeJSON(image))
	b.WriteString(`"}`)
	return b.String()
}
