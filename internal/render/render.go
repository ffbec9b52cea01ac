// Package render draws viewer frames: the image placed under a viewport
// state, the optional metadata panel and the zoom label.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/anthonynsimon/bild/transform"
	imgops "github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/phany/internal/imaging"
	"github.com/ironsheep/phany/internal/viewport"
)

// PanelWidth is the width of the metadata panel in pixels.
const PanelWidth = 320

// LoadingText is drawn while no image is available.
const LoadingText = "Loading..."

var (
	// DefaultBackground fills frames when Options.Background is nil.
	DefaultBackground = color.NRGBA{R: 32, G: 32, B: 36, A: 255}
	panelColor        = color.NRGBA{R: 20, G: 20, B: 24, A: 255}
	textColor         = color.NRGBA{R: 230, G: 230, B: 230, A: 255}
	labelBackground   = color.NRGBA{A: 160}
)

var face = basicfont.Face7x13

// Options controls a single frame.
type Options struct {
	Width, Height int

	// Background fills the frame; DefaultBackground when nil.
	Background color.Color

	// Filename and Info feed the metadata panel. Info may be nil.
	Filename string
	Info     *imaging.ImageInfo
}

// Frame renders src under st into a new Width x Height image. A nil src draws
// the loading placeholder. Frames smaller than 1x1 are clamped to 1x1. The
// image is drawn at st.Drawn() scale; the zoom label shows st.Scale.
func Frame(src image.Image, st viewport.State, opts Options) *image.NRGBA {
	w, h := max(opts.Width, 1), max(opts.Height, 1)
	bg := opts.Background
	if bg == nil {
		bg = DefaultBackground
	}
	dst := imgops.New(w, h, bg)

	if src == nil {
		tw := textWidth(LoadingText)
		drawText(dst, LoadingText, (w-tw)/2, h/2+face.Ascent/2)
		return dst
	}

	view := image.Rect(0, 0, w, h)
	if st.DisplayMetadata {
		view.Min.X = min(PanelWidth, w)
		drawPanel(dst, view.Min.X, opts)
	}
	if !view.Empty() {
		placeImage(dst, src, st.Drawn(), view)
	}
	drawZoomLabel(dst, st.Percent())
	return dst
}

// Visible returns the part of src, in src's own coordinates, that a viewW x
// viewH viewport shows under st.Drawn(). The result is empty when nothing is
// visible.
func Visible(src image.Rectangle, st viewport.State, viewW, viewH int) image.Rectangle {
	st = st.Drawn()
	if !(st.Scale > 0) || math.IsInf(st.Scale, 0) {
		return image.Rectangle{}
	}
	m := viewport.Placement(st, src.Dx(), src.Dy(), viewW, viewH)
	inv, ok := m.Invert()
	if !ok {
		return image.Rectangle{}
	}

	x0, y0 := inv.Apply(0, 0)
	x1, y1 := inv.Apply(float64(viewW), float64(viewH))
	w, h := float64(src.Dx()), float64(src.Dy())
	r := image.Rect(
		bound(math.Floor(math.Min(x0, x1)), w), bound(math.Floor(math.Min(y0, y1)), h),
		bound(math.Ceil(math.Max(x0, x1)), w), bound(math.Ceil(math.Max(y0, y1)), h),
	)
	return r.Add(src.Min).Intersect(src)
}

// bound limits v to [-1, limit+1] so far-off pans convert to int safely. NaN
// maps to -1.
func bound(v, limit float64) int {
	if math.IsNaN(v) {
		return -1
	}
	return int(math.Min(math.Max(v, -1), limit+1))
}

// rotate turns img clockwise by q quarter turns. imgops rotates
// counter-clockwise, hence the swapped calls.
func rotate(img image.Image, q viewport.Quarter) image.Image {
	switch q {
	case 1:
		return imgops.Rotate270(img)
	case 2:
		return imgops.Rotate180(img)
	case 3:
		return imgops.Rotate90(img)
	default:
		return img
	}
}

func placeImage(dst *image.NRGBA, src image.Image, st viewport.State, view image.Rectangle) {
	rotated := rotate(src, st.Rotation)
	upright := st
	upright.Rotation = 0

	vw, vh := view.Dx(), view.Dy()
	region := Visible(rotated.Bounds(), upright, vw, vh)
	if region.Empty() {
		return
	}

	m := viewport.Placement(upright, rotated.Bounds().Dx(), rotated.Bounds().Dy(), vw, vh)
	local := region.Sub(rotated.Bounds().Min)
	x0, y0 := m.Apply(float64(local.Min.X), float64(local.Min.Y))
	x1, y1 := m.Apply(float64(local.Max.X), float64(local.Max.Y))
	ox, oy := int(math.Round(x0)), int(math.Round(y0))
	sw, sh := int(math.Round(x1))-ox, int(math.Round(y1))-oy
	if sw <= 0 || sh <= 0 {
		return
	}

	scaled := transform.Resize(imgops.Crop(rotated, region), sw, sh, transform.Linear)

	// Compose inside the view only so the picture never covers the panel.
	canvas := imgops.Crop(dst, view)
	placed := imgops.Overlay(canvas, scaled, image.Pt(ox, oy), 1.0)
	draw.Draw(dst, view, placed, image.Point{}, draw.Src)
}

func drawPanel(dst *image.NRGBA, width int, opts Options) {
	draw.Draw(dst, image.Rect(0, 0, width, dst.Bounds().Dy()), image.NewUniform(panelColor), image.Point{}, draw.Src)

	name := opts.Filename
	if name == "" {
		name = "image"
	}
	lineHeight := face.Height + 4
	y := 8 + face.Ascent
	drawText(dst, name, (width-textWidth(name))/2, y)
	y += lineHeight + 8

	if opts.Info == nil {
		return
	}
	for _, line := range opts.Info.Lines() {
		drawText(dst, line, 20, y)
		y += lineHeight
	}
}

func drawZoomLabel(dst *image.NRGBA, label string) {
	const pad = 6
	b := dst.Bounds()
	tw := textWidth(label)
	box := image.Rect(b.Max.X-tw-3*pad, b.Max.Y-face.Height-3*pad, b.Max.X-pad, b.Max.Y-pad)
	draw.Draw(dst, box, image.NewUniform(labelBackground), image.Point{}, draw.Over)
	drawText(dst, label, box.Min.X+pad, box.Max.Y-pad-face.Descent)
}

func drawText(dst draw.Image, s string, x, y int) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(textColor),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func textWidth(s string) int {
	return font.MeasureString(face, s).Ceil()
}
