// Package raster provides the degraded fallback for elements whose
// outlines have no matrix representation: instead of attempting and
// failing a vector reconstruction, the element is flattened into a
// raster stand-in that preserves its footprint and fill.
package raster

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"golang.org/x/image/draw"
)

// renderScale is the oversampling factor applied before downscaling,
// which keeps the placeholder edges smooth at typical deck zoom.
const renderScale = 2

// Flatten renders a w×h point box filled with the given hex color
// and returns it as a PNG data URI. Width and height are clamped to
// at least one pixel so degenerate geometry still produces an image.
func Flatten(w, h float64, hexFill string) (string, error) {
	pw := int(math.Max(1, math.Round(w)))
	ph := int(math.Max(1, math.Round(h)))

	fill, err := ParseHex(hexFill)
	if err != nil {
		fill = color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
	}

	src := image.NewNRGBA(image.Rect(0, 0, pw*renderScale, ph*renderScale))
	draw.Draw(src, src.Bounds(), image.NewUniform(fill), image.Point{}, draw.Src)

	dst := image.NewNRGBA(image.Rect(0, 0, pw, ph))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return "", fmt.Errorf("raster: encoding placeholder: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// ParseHex parses a #rgb or #rrggbb color string.
func ParseHex(s string) (color.NRGBA, error) {
	if len(s) == 0 || s[0] != '#' {
		return color.NRGBA{}, fmt.Errorf("raster: %q is not a hex color", s)
	}
	hex := s[1:]
	var r, g, b uint8
	switch len(hex) {
	case 3:
		n, err := fmt.Sscanf(hex, "%1x%1x%1x", &r, &g, &b)
		if n != 3 || err != nil {
			return color.NRGBA{}, fmt.Errorf("raster: bad hex color %q", s)
		}
		r, g, b = r*17, g*17, b*17
	case 6:
		n, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
		if n != 3 || err != nil {
			return color.NRGBA{}, fmt.Errorf("raster: bad hex color %q", s)
		}
	default:
		return color.NRGBA{}, fmt.Errorf("raster: bad hex color %q", s)
	}
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}
