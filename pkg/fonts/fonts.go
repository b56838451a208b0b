// Package fonts provides the monospace face used for node and edge text.
//
// The Go Mono font ships with golang.org/x/image, so it is compiled into
// the binary and needs no system font lookup. Bitmap output rasterizes it
// with freetype; SVG output names it in the font-family list.
package fonts

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// FontFamily is the CSS font-family list written into SVG text.
const FontFamily = `'Go Mono', 'JetBrains Mono', monospace`

// AdvanceRatio approximates the advance of one Go Mono glyph relative to
// the font size.
const AdvanceRatio = 0.6

// Parsed font and faces are computed once on first access.
var (
	mono     *truetype.Font
	monoErr  error
	monoOnce sync.Once

	facesMu sync.Mutex
	faces   = map[float64]font.Face{}
)

// Mono returns the parsed Go Mono font.
func Mono() (*truetype.Font, error) {
	monoOnce.Do(func() {
		mono, monoErr = truetype.Parse(gomono.TTF)
	})
	return mono, monoErr
}

// Face returns a Go Mono face at the given pixel size. Faces are cached per
// size and shared; callers must not Close them.
func Face(size float64) (font.Face, error) {
	f, err := Mono()
	if err != nil {
		return nil, err
	}
	facesMu.Lock()
	defer facesMu.Unlock()
	if face, ok := faces[size]; ok {
		return face, nil
	}
	face := truetype.NewFace(f, &truetype.Options{Size: size, Hinting: font.HintingFull})
	faces[size] = face
	return face, nil
}

// TextWidth estimates the rendered width of s at the given size without
// rasterizing it.
func TextWidth(s string, size float64) float64 {
	return AdvanceRatio * size * float64(len([]rune(s)))
}
