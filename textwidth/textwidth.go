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

// Package textwidth measures text using the metrics of an OpenType or
// TrueType font.
package textwidth

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/unicode/norm"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyph"
)

// Font gives access to the glyph widths and outlines of a font.
// A Font can be used concurrently by multiple goroutines.
type Font struct {
	info *sfnt.Font
	cmap cmap.Subtable

	// Ascent and Descent are given in units of the font size.
	// Descent is negative.
	Ascent  float64
	Descent float64
}

// New reads a font from the given OpenType or TrueType data.
func New(data []byte) (*Font, error) {
	info, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("textwidth: %w", err)
	}
	subtable, err := info.CMapTable.GetBest()
	if err != nil {
		return nil, fmt.Errorf("textwidth: cmap: %w", err)
	}

	q := 1 / float64(info.UnitsPerEm)
	F := &Font{
		info:    info,
		cmap:    subtable,
		Ascent:  info.Ascent.AsFloat(q),
		Descent: info.Descent.AsFloat(q),
	}
	return F, nil
}

// Load reads a font file.
func Load(fname string) (*Font, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	return New(data)
}

// GoRegular returns the Go Regular font.
func GoRegular() (*Font, error) {
	return goRegular()
}

// GoMono returns the Go Mono font.
func GoMono() (*Font, error) {
	return goMono()
}

var (
	goRegular = sync.OnceValues(func() (*Font, error) { return New(goregular.TTF) })
	goMono    = sync.OnceValues(func() (*Font, error) { return New(gomono.TTF) })
)

// PostScriptName returns the PostScript name of the font.
func (F *Font) PostScriptName() string {
	return F.info.PostScriptName()
}

// GID returns the glyph used for the rune r.  Runes not present in the
// font are mapped to glyph 0.
func (F *Font) GID(r rune) glyph.ID {
	return F.cmap.Lookup(r)
}

// GlyphWidth returns the advance width of a glyph, in units of the font
// size.
func (F *Font) GlyphWidth(gid glyph.ID) float64 {
	return F.info.GlyphWidthPDF(gid) / 1000
}

// TextWidth returns the width of text set in the given font size.
// This implements the gridfill.TextMeasurer interface.
func (F *Font) TextWidth(text string, fontSize float64) float64 {
	var w float64
	for _, r := range norm.NFC.String(text) {
		w += F.GlyphWidth(F.GID(r))
	}
	return w * fontSize
}

// PathSink receives the outline of a glyph.
type PathSink interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadTo(x1, y1, x2, y2 float64)
	CubeTo(x1, y1, x2, y2, x3, y3 float64)
	ClosePath()
}

// DrawGlyph sends the outline of a glyph to sink.  Coordinates are given
// in units of the font size, with the origin at the start of the baseline.
// It reports false if the font has no outlines.
func (F *Font) DrawGlyph(gid glyph.ID, sink PathSink) bool {
	if F.info.Outlines == nil {
		return false
	}
	q := 1 / F.UnitsPerEm()
	for cmd, pts := range F.info.Outlines.Path(gid) {
		switch cmd {
		case path.CmdMoveTo:
			sink.MoveTo(pts[0].X*q, pts[0].Y*q)
		case path.CmdLineTo:
			sink.LineTo(pts[0].X*q, pts[0].Y*q)
		case path.CmdQuadTo:
			sink.QuadTo(pts[0].X*q, pts[0].Y*q, pts[1].X*q, pts[1].Y*q)
		case path.CmdCubeTo:
			sink.CubeTo(pts[0].X*q, pts[0].Y*q, pts[1].X*q, pts[1].Y*q, pts[2].X*q, pts[2].Y*q)
		case path.CmdClose:
			sink.ClosePath()
		}
	}
	return true
}

// UnitsPerEm returns the number of font design units per em.
func (F *Font) UnitsPerEm() float64 {
	return float64(F.info.UnitsPerEm)
}
