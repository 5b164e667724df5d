// seehuhn.de/go/gridfill - fill grid regions on PDF pages
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package raster draws grid tables into an in-memory image.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"
	"golang.org/x/text/unicode/norm"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/gridfill"
	"seehuhn.de/go/gridfill/table"
	"seehuhn.de/go/gridfill/textwidth"
)

// Options can be used to change the behaviour of a [Canvas].
type Options struct {
	// DPI is the image resolution.  The default is 72, so that one pixel
	// corresponds to one PDF unit.
	DPI float64

	// Fonts gives the fonts used for the different font types.
	// Font types without an entry use the Go Regular font.
	Fonts map[gridfill.FontType]*textwidth.Font

	// Ink is the colour used for lines and text.  The default is black.
	Ink color.Color

	// Background is the colour of the empty page.  The default is white.
	Background color.Color
}

// Canvas draws onto an RGBA image.
type Canvas struct {
	Image  *image.RGBA
	Raster *vector.Rasterizer
	Width  int
	Height int
	DPI    float64

	// Err is the first error which occurred while loading a font.
	Err error

	page      rect.Rect
	lineWidth float64
	ink       image.Image
	fonts     map[gridfill.FontType]*textwidth.Font
}

var _ table.Canvas = (*Canvas)(nil)

// New allocates a Canvas which covers the given page area.
func New(page rect.Rect, opt *Options) *Canvas {
	if opt == nil {
		opt = &Options{}
	}
	dpi := opt.DPI
	if dpi <= 0 {
		dpi = 72
	}
	ink := opt.Ink
	if ink == nil {
		ink = color.Black
	}
	bg := opt.Background
	if bg == nil {
		bg = color.White
	}

	scale := dpi / 72
	width := max(int(math.Ceil(page.Dx()*scale)), 1)
	height := max(int(math.Ceil(page.Dy()*scale)), 1)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	fonts := make(map[gridfill.FontType]*textwidth.Font, len(opt.Fonts))
	for k, v := range opt.Fonts {
		fonts[k] = v
	}

	return &Canvas{
		Image:     img,
		Raster:    vector.NewRasterizer(width, height),
		Width:     width,
		Height:    height,
		DPI:       dpi,
		page:      page,
		lineWidth: 1,
		ink:       image.NewUniform(ink),
		fonts:     fonts,
	}
}

// WritePNG encodes the image in PNG format.
func (c *Canvas) WritePNG(w io.Writer) error {
	return png.Encode(w, c.Image)
}

// SetLineWidth implements the [table.Canvas] interface.
func (c *Canvas) SetLineWidth(w float64) {
	c.lineWidth = w
}

// StrokeLine implements the [table.Canvas] interface.
// The line is drawn as a filled quadrilateral, without line caps.
func (c *Canvas) StrokeLine(x0, y0, x1, y1 float64) {
	w := c.lineWidth * c.DPI / 72 / 2
	if w < 0.5 {
		w = 0.5
	}

	ax, ay := c.deviceCoords(x0, y0)
	bx, by := c.deviceCoords(x1, y1)
	vx, vy := bx-ax, by-ay
	vl := math.Sqrt(vx*vx + vy*vy)
	if vl == 0 {
		return
	}
	nx, ny := -vy/vl*w, vx/vl*w

	c.Raster.Reset(c.Width, c.Height)
	c.Raster.MoveTo(float32(ax+nx), float32(ay+ny))
	c.Raster.LineTo(float32(bx+nx), float32(by+ny))
	c.Raster.LineTo(float32(bx-nx), float32(by-ny))
	c.Raster.LineTo(float32(ax-nx), float32(ay-ny))
	c.Raster.ClosePath()
	c.Raster.Draw(c.Image, c.Image.Bounds(), c.ink, image.Point{})
}

// ShowText implements the [table.Canvas] interface.
func (c *Canvas) ShowText(font gridfill.FontType, size, x, y float64, text string) {
	F := c.font(font)
	if F == nil {
		return
	}

	c.Raster.Reset(c.Width, c.Height)
	sink := &glyphSink{c: c, size: size, x: x, y: y}
	for _, r := range norm.NFC.String(text) {
		gid := F.GID(r)
		F.DrawGlyph(gid, sink)
		sink.x += F.GlyphWidth(gid) * size
	}
	c.Raster.Draw(c.Image, c.Image.Bounds(), c.ink, image.Point{})
}

func (c *Canvas) font(font gridfill.FontType) *textwidth.Font {
	if F, ok := c.fonts[font]; ok {
		return F
	}
	F, err := textwidth.GoRegular()
	if err != nil {
		if c.Err == nil {
			c.Err = err
		}
		return nil
	}
	c.fonts[font] = F
	return F
}

// deviceCoords maps PDF coordinates to pixel coordinates.
func (c *Canvas) deviceCoords(x, y float64) (float64, float64) {
	scale := c.DPI / 72
	dx := (x - c.page.LLx) * scale
	dy := float64(c.Height) - (y-c.page.LLy)*scale
	return dx, dy
}

// glyphSink places glyph outlines, given in font size units, at the
// current pen position.
type glyphSink struct {
	c          *Canvas
	size, x, y float64
}

func (s *glyphSink) point(gx, gy float64) (float32, float32) {
	dx, dy := s.c.deviceCoords(s.x+gx*s.size, s.y+gy*s.size)
	return float32(dx), float32(dy)
}

func (s *glyphSink) MoveTo(x, y float64) {
	s.c.Raster.MoveTo(s.point(x, y))
}

func (s *glyphSink) LineTo(x, y float64) {
	s.c.Raster.LineTo(s.point(x, y))
}

func (s *glyphSink) QuadTo(x1, y1, x2, y2 float64) {
	ax, ay := s.point(x1, y1)
	bx, by := s.point(x2, y2)
	s.c.Raster.QuadTo(ax, ay, bx, by)
}

func (s *glyphSink) CubeTo(x1, y1, x2, y2, x3, y3 float64) {
	ax, ay := s.point(x1, y1)
	bx, by := s.point(x2, y2)
	cx, cy := s.point(x3, y3)
	s.c.Raster.CubeTo(ax, ay, bx, by, cx, cy)
}

func (s *glyphSink) ClosePath() {
	s.c.Raster.ClosePath()
}
