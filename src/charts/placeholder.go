package charts

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Blank returns a plain white image of the given size.
func Blank(w, h int) *image.RGBA {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 255}), image.Point{}, draw.Src)
	return img
}

// Placeholder is the empty-panel image: the chart title centred at the top and msg as a hint.
func Placeholder(w, h int, title, msg string) image.Image {
	img := Blank(w, h)
	if t := strings.TrimSpace(title); t != "" {
		face := basicfont.Face7x13
		dr := &font.Drawer{Dst: img, Src: image.NewUniform(color.RGBA{R: 51, G: 51, B: 51, A: 255}), Face: face}
		tw := dr.MeasureString(t).Ceil()
		x := (w - tw) / 2
		if x < 8 {
			x = 8
		}
		dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(8 + face.Metrics().Ascent.Ceil() + 12)}
		dr.DrawString(t)
	}
	return DrawHint(img, msg)
}

// DrawHint draws a small hint string onto the provided image near the bottom-left.
func DrawHint(img image.Image, text string) image.Image {
	if img == nil || strings.TrimSpace(text) == "" {
		return img
	}
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)
	pad := 6
	face := basicfont.Face7x13
	textCol := image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	shadowCol := image.NewUniform(color.RGBA{R: 0, G: 0, B: 0, A: 180})
	dr := &font.Drawer{Dst: rgba, Src: textCol, Face: face}
	tw := dr.MeasureString(text).Ceil()
	x := b.Min.X + 8
	y := b.Max.Y - 6
	// semi-opaque box behind the text
	bg := image.NewUniform(color.RGBA{R: 0, G: 0, B: 0, A: 200})
	rect := image.Rect(x-pad, y-face.Metrics().Ascent.Ceil()-pad, x+tw+pad, y+pad/2)
	draw.Draw(rgba, rect, bg, image.Point{}, draw.Over)
	drShadow := &font.Drawer{Dst: rgba, Src: shadowCol, Face: face, Dot: fixed.Point26_6{X: fixed.I(x + 1), Y: fixed.I(y + 1)}}
	drShadow.DrawString(text)
	dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	dr.DrawString(text)
	return rgba
}
