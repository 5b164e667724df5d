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

// Package table implements a [gridfill.Renderer] which lays out grid
// tables and draws them onto a [Canvas].
//
// Cells fill a table row by row.  All cells in a row get the height of the
// tallest cell, which is determined by the number of text lines after word
// wrapping.  Drawing happens only when the table is flushed.
package table

import (
	"errors"
	"fmt"

	"seehuhn.de/go/gridfill"
)

// A Canvas is the drawing surface used by a [Renderer].
// Coordinates are given in PDF units, with y pointing up.
type Canvas interface {
	SetLineWidth(w float64)
	StrokeLine(x0, y0, x1, y1 float64)

	// ShowText draws a single line of text, with the start of the baseline
	// at (x, y).
	ShowText(font gridfill.FontType, size, x, y float64, text string)
}

// Options can be used to change the behaviour of a [Renderer].
type Options struct {
	// Fonts gives the text measurers for the different font types.
	// Font types without an entry use the measurer passed to [New].
	Fonts map[gridfill.FontType]gridfill.TextMeasurer

	// LineHeight is the distance between baselines, as a multiple of the
	// font size.  The default is 1.2.
	LineHeight float64
}

// DefaultLineHeight is the line spacing used if [Options.LineHeight] is
// not set.
const DefaultLineHeight = 1.2

// descent is the space below the baseline, as a multiple of the font size.
const descent = 0.2

// ErrTableFlushed is returned when a table is modified or drawn after it
// has been flushed.
var ErrTableFlushed = errors.New("table: table already flushed")

// Renderer lays out tables and draws them onto a canvas.
// A Renderer must not be used concurrently by multiple goroutines.
type Renderer struct {
	canvas     Canvas
	measure    gridfill.TextMeasurer
	fonts      map[gridfill.FontType]gridfill.TextMeasurer
	lineHeight float64

	cache map[fontKey]map[string]float64
}

type fontKey struct {
	font gridfill.FontType
	size float64
}

var _ gridfill.Renderer = (*Renderer)(nil)

// New allocates a new Renderer which draws onto c.  The measurer m is used
// for all font types not listed in opt.Fonts.
func New(c Canvas, m gridfill.TextMeasurer, opt *Options) *Renderer {
	if opt == nil {
		opt = &Options{}
	}
	r := &Renderer{
		canvas:     c,
		measure:    m,
		fonts:      opt.Fonts,
		lineHeight: opt.LineHeight,
		cache:      make(map[fontKey]map[string]float64),
	}
	if r.lineHeight <= 0 {
		r.lineHeight = DefaultLineHeight
	}
	return r
}

// Table is the table type created by a [Renderer].
type Table struct {
	owner    *Renderer
	widths   []float64
	defaults gridfill.TableDefaults

	cells []*entry
	col   int
	row   int

	flushed bool
}

type entry struct {
	cell     gridfill.Cell
	row, col int
	span     int
}

// SetDefaults implements the [gridfill.Table] interface.
func (t *Table) SetDefaults(d *gridfill.TableDefaults) {
	t.defaults = *d
}

// Columns returns the number of columns of the table.
func (t *Table) Columns() int {
	return len(t.widths)
}

// ColumnWidths returns the widths of the table columns.
func (t *Table) ColumnWidths() []float64 {
	return append([]float64(nil), t.widths...)
}

// Rows returns the number of started rows.
func (t *Table) Rows() int {
	if t.col > 0 {
		return t.row + 1
	}
	return t.row
}

// CreateTable implements the [gridfill.Renderer] interface.
func (r *Renderer) CreateTable(columns int, width float64, proportions []int) (gridfill.Table, error) {
	if columns < 1 {
		return nil, fmt.Errorf("table: invalid number of columns %d", columns)
	}
	if len(proportions) != columns {
		return nil, fmt.Errorf("table: %d proportions for %d columns", len(proportions), columns)
	}
	if !(width > 0) {
		return nil, fmt.Errorf("table: invalid width %g", width)
	}
	total := 0
	for _, p := range proportions {
		if p < 0 {
			return nil, fmt.Errorf("table: negative column proportion %d", p)
		}
		total += p
	}
	if total == 0 {
		return nil, errors.New("table: all column proportions are zero")
	}

	widths := make([]float64, columns)
	for i, p := range proportions {
		widths[i] = width * float64(p) / float64(total)
	}
	return &Table{owner: r, widths: widths}, nil
}

// AddCell implements the [gridfill.Renderer] interface.
// A cell which extends past the end of the current row is clipped.
func (r *Renderer) AddCell(t gridfill.Table, c *gridfill.Cell) error {
	tt, err := r.table(t)
	if err != nil {
		return err
	}
	tt.add(*c)
	return nil
}

// AddEmptyCell implements the [gridfill.Renderer] interface.
func (r *Renderer) AddEmptyCell(t gridfill.Table, borderWidth float64) error {
	tt, err := r.table(t)
	if err != nil {
		return err
	}
	tt.add(gridfill.Cell{
		ColSpan:     1,
		BorderWidth: borderWidth,
		Border:      gridfill.BorderBox,
	})
	return nil
}

func (t *Table) add(c gridfill.Cell) {
	span := min(c.Span(), len(t.widths)-t.col)
	c.ColSpan = span
	t.cells = append(t.cells, &entry{cell: c, row: t.row, col: t.col, span: span})
	t.col += span
	if t.col == len(t.widths) {
		t.col = 0
		t.row++
	}
}

// FlushTable implements the [gridfill.Renderer] interface.
//
// An incomplete last row is completed using empty cells without border.
// The return value is the y coordinate of the lower edge of the table.
func (r *Renderer) FlushTable(t gridfill.Table, left, top float64) (float64, error) {
	tt, err := r.table(t)
	if err != nil {
		return 0, err
	}

	// The table is only modified once all cells could be laid out, so that
	// a failed flush leaves the table usable.
	layout := make([]*cellLayout, 0, len(tt.cells)+len(tt.widths))
	for _, e := range tt.cells {
		L, err := r.layoutCell(tt, e)
		if err != nil {
			return 0, err
		}
		layout = append(layout, L)
	}

	for tt.col > 0 {
		tt.add(gridfill.Cell{ColSpan: 1, Border: gridfill.BorderNone})
		L, err := r.layoutCell(tt, tt.cells[len(tt.cells)-1])
		if err != nil {
			return 0, err
		}
		layout = append(layout, L)
	}
	tt.flushed = true

	heights := make([]float64, tt.row)
	for i, e := range tt.cells {
		heights[e.row] = max(heights[e.row], layout[i].height)
	}

	xPos := make([]float64, len(tt.widths)+1)
	xPos[0] = left
	for i, w := range tt.widths {
		xPos[i+1] = xPos[i] + w
	}
	yPos := make([]float64, len(heights)+1)
	yPos[0] = top
	for i, h := range heights {
		yPos[i+1] = yPos[i] - h
	}

	for i, e := range tt.cells {
		box := box{
			left:   xPos[e.col],
			right:  xPos[e.col+e.span],
			top:    yPos[e.row],
			bottom: yPos[e.row+1],
		}
		r.drawCell(tt, e, layout[i], box)
	}

	return yPos[len(heights)], nil
}

func (r *Renderer) table(t gridfill.Table) (*Table, error) {
	tt, ok := t.(*Table)
	if !ok || tt.owner != r {
		return nil, fmt.Errorf("table: foreign table %T", t)
	}
	if tt.flushed {
		return nil, ErrTableFlushed
	}
	return tt, nil
}

type box struct {
	left, right, top, bottom float64
}

// cellLayout describes the text of a cell after line breaking.
type cellLayout struct {
	size    float64
	padding float64
	lines   []string
	widths  []float64
	height  float64
}

func (r *Renderer) layoutCell(t *Table, e *entry) (*cellLayout, error) {
	c := &e.cell
	L := &cellLayout{
		size:    c.FontSize,
		padding: c.Padding,
	}
	if L.size <= 0 {
		L.size = gridfill.DefaultFontSize
	}
	if L.padding <= 0 {
		L.padding = t.defaults.Padding
	}

	if c.Content != "" {
		width := func(s string) float64 { return 0 }
		if c.HAlign != gridfill.AlignLeft || !c.NoWrap {
			m := r.measurer(c.Font)
			if m == nil {
				return nil, fmt.Errorf("table: no measurer for font type %d", c.Font)
			}
			width = r.cachedWidth(m, c.Font, L.size)
		}

		if c.NoWrap {
			L.lines = []string{c.Content}
		} else {
			inner := 0.0
			for _, w := range t.widths[e.col : e.col+e.span] {
				inner += w
			}
			inner -= 2 * L.padding
			L.lines = wrapLines(c.Content, inner, width)
		}
		L.widths = make([]float64, len(L.lines))
		for i, line := range L.lines {
			L.widths[i] = width(line)
		}
	}

	if c.FixedHeight > 0 {
		L.height = c.FixedHeight
	} else {
		textHeight := float64(len(L.lines))*L.size*r.lineHeight + 2*L.padding
		L.height = max(t.defaults.RowHeight, textHeight)
	}
	return L, nil
}

func (r *Renderer) measurer(font gridfill.FontType) gridfill.TextMeasurer {
	if m, ok := r.fonts[font]; ok {
		return m
	}
	return r.measure
}

// cachedWidth returns a width function for the given font and size which
// remembers the widths of all strings it has seen.
func (r *Renderer) cachedWidth(m gridfill.TextMeasurer, font gridfill.FontType, size float64) func(string) float64 {
	key := fontKey{font: font, size: size}
	cache := r.cache[key]
	if cache == nil {
		cache = make(map[string]float64)
		r.cache[key] = cache
	}
	return func(s string) float64 {
		w, ok := cache[s]
		if !ok {
			w = m.TextWidth(s, size)
			cache[s] = w
		}
		return w
	}
}

func (r *Renderer) drawCell(t *Table, e *entry, L *cellLayout, b box) {
	c := &e.cell

	bw := c.BorderWidth
	if bw <= 0 {
		bw = t.defaults.BorderWidth
	}
	if c.Border != gridfill.BorderNone && bw > 0 {
		r.canvas.SetLineWidth(bw)
		if c.Border&gridfill.BorderTop != 0 {
			r.canvas.StrokeLine(b.left, b.top, b.right, b.top)
		}
		if c.Border&gridfill.BorderBottom != 0 {
			r.canvas.StrokeLine(b.left, b.bottom, b.right, b.bottom)
		}
		if c.Border&gridfill.BorderLeft != 0 {
			r.canvas.StrokeLine(b.left, b.top, b.left, b.bottom)
		}
		if c.Border&gridfill.BorderRight != 0 {
			r.canvas.StrokeLine(b.right, b.top, b.right, b.bottom)
		}
	}

	if len(L.lines) == 0 {
		return
	}

	lineStep := L.size * r.lineHeight
	blockHeight := float64(len(L.lines)) * lineStep
	var blockTop float64
	switch c.VAlign {
	case gridfill.AlignTop:
		blockTop = b.top - L.padding
	case gridfill.AlignBottom:
		blockTop = b.bottom + L.padding + blockHeight
	default:
		blockTop = (b.top+b.bottom)/2 + blockHeight/2
	}

	for i, line := range L.lines {
		var x float64
		switch c.HAlign {
		case gridfill.AlignCenter:
			x = (b.left + b.right - L.widths[i]) / 2
		case gridfill.AlignRight:
			x = b.right - L.padding - L.widths[i]
		default:
			x = b.left + L.padding
		}
		y := blockTop - float64(i+1)*lineStep + descent*L.size
		r.canvas.ShowText(c.Font, L.size, x, y, line)
	}
}
