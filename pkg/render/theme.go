package render

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// PaletteSize is the number of entries in every fill and mark palette.
const PaletteSize = 10

// Theme is the set of colors used by [Draw].
type Theme struct {
	Dark             bool
	Background       color.Color
	Stroke           color.Color // node borders
	Text             color.Color // node text and bounding-box captions
	Edge             color.Color
	EdgeLabel        color.Color
	NodeLabel        color.Color // node label text and octagon border
	NodeLabelOutline color.Color // erase indicator and label backdrop
	Role             color.Color // "(role)" caption under a node

	// Fill colors nodes by component; also used for bounding boxes.
	Fill [PaletteSize]color.Color
	// Marks holds the user-selectable mark colors. Only indices from
	// settings.MarkColorFirst are meaningful.
	Marks [PaletteSize]color.Color
	// Pen is the mark palette of the opposite theme; pen strokes use it so
	// they stand out from marked nodes.
	Pen [PaletteSize]color.Color
}

var (
	fillLight = hexes("#9ece7e", "#dd7878", "#7287ed", "#dfae5d", "#70b05b", "#dc8a68", "#309fc5", "#37c2b9", "#ea76cb", "#a879ef")
	fillDark  = hexes("#536333", "#7d3838", "#42479d", "#7f5e0d", "#40603b", "#8c4a28", "#104f85", "#176249", "#7a366b", "#58398f")
	markLight = hexes("#bcc0cc", "#bcc0cc", "#bcc0cc", "#e64553", "#fe640b", "#df8e1d", "#40a02b", "#209fb5", "#1e66f5", "#8839ef")
	markDark  = hexes("#45475a", "#45475a", "#45475a", "#a8323d", "#b84a0a", "#a86c15", "#2e7520", "#17788a", "#1649b3", "#6326b0")
)

// Light returns the theme for light backgrounds.
func Light() Theme {
	return Theme{
		Background:       colorful.Hsl(0, 0, 0.98),
		Stroke:           colorful.Hsl(0, 0, 0.10),
		Text:             colorful.Hsl(0, 0, 0.10),
		Edge:             colorful.Hsl(0, 0, 0.10),
		EdgeLabel:        colorful.Hsl(30, 0.50, 0.40),
		NodeLabel:        colorful.Hsl(30, 0.80, 0.50),
		NodeLabelOutline: colorful.Hsl(10, 0.02, 0.70),
		Role:             color.NRGBA{A: 204},
		Fill:             fillLight,
		Marks:            markLight,
		Pen:              markDark,
	}
}

// Dark returns the theme for dark backgrounds.
func Dark() Theme {
	return Theme{
		Dark:             true,
		Background:       colorful.Hsl(0, 0, 0.08),
		Stroke:           colorful.Hsl(0, 0, 0.90),
		Text:             colorful.Hsl(0, 0, 0.90),
		Edge:             colorful.Hsl(0, 0, 0.90),
		EdgeLabel:        colorful.Hsl(30, 0.70, 0.60),
		NodeLabel:        colorful.Hsl(30, 1.00, 0.50),
		NodeLabelOutline: colorful.Hsl(10, 0.02, 0.30),
		Role:             color.NRGBA{R: 255, G: 255, B: 255, A: 204},
		Fill:             fillDark,
		Marks:            markDark,
		Pen:              markLight,
	}
}

// ThemeFor picks [Dark] or [Light].
func ThemeFor(dark bool) Theme {
	if dark {
		return Dark()
	}
	return Light()
}

// FillColor returns the palette entry for a component or case index.
func (t Theme) FillColor(i int) color.Color {
	return t.Fill[mod(i, PaletteSize)]
}

// MarkColor returns the mark palette entry for index i.
func (t Theme) MarkColor(i int) color.Color {
	return t.Marks[mod(i, PaletteSize)]
}

// PenColor returns the pen palette entry for mark index i.
func (t Theme) PenColor(i int) color.Color {
	return t.Pen[mod(i, PaletteSize)]
}

// Rainbow returns the pen color for the cycling "rainbow" mark at the given
// hue in degrees.
func (t Theme) Rainbow(hue float64) color.Color {
	if t.Dark {
		return colorful.Hsl(hue, 0.70, 0.70)
	}
	return colorful.Hsl(hue, 0.70, 0.30)
}

// Hex formats c as "#rrggbb", ignoring alpha. Fully transparent colors
// format as "none".
func Hex(c color.Color) string {
	if c == nil {
		return "none"
	}
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return "none"
	}
	return cc.Clamped().Hex()
}

// Alpha returns the alpha channel of c in [0, 1].
func Alpha(c color.Color) float64 {
	if c == nil {
		return 0
	}
	_, _, _, a := c.RGBA()
	return float64(a) / 0xffff
}

func hexes(s ...string) [PaletteSize]color.Color {
	var out [PaletteSize]color.Color
	for i, h := range s {
		c, err := colorful.Hex(h)
		if err != nil {
			panic(err)
		}
		out[i] = c
	}
	return out
}

func mod(i, n int) int {
	return ((i % n) + n) % n
}
