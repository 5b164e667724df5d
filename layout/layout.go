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

// Package layout reads page layouts from TOML files and fills the regions
// described there.
//
// A layout file describes a page and a list of regions.  Each region lists
// the cells to be placed into it:
//
//	[page]
//	width = 595
//	height = 842
//
//	[[region]]
//	name = "items"
//	left = 10
//	bottom = 10
//	right = 200
//	top = 600
//	columns = 2
//	rows = 2
//
//	  [[region.cell]]
//	  text = "Cell1"
//
//	  [[region.cell]]
//	  text = "a long text which is wrapped"
//	  wrap_width = 80
package layout

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/gridfill"
)

// A4 is the page size used when a layout file does not specify one.
var A4 = Page{Width: 595.2756, Height: 841.8898}

// Document is the contents of a layout file.
type Document struct {
	Page    Page      `toml:"page"`
	Regions []*Region `toml:"region"`
}

// Page gives the size of the page, in PDF units.
type Page struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// Rect returns the page area.
func (p Page) Rect() rect.Rect {
	return rect.Rect{URx: p.Width, URy: p.Height}
}

// Region describes one grid region of the page.
type Region struct {
	Name string `toml:"name"`

	Left   float64 `toml:"left"`
	Bottom float64 `toml:"bottom"`
	Right  float64 `toml:"right"`
	Top    float64 `toml:"top"`

	Columns int `toml:"columns"`
	Rows    int `toml:"rows"`

	FontSize    float64 `toml:"font_size"`
	BorderWidth float64 `toml:"border_width"`
	RowHeight   float64 `toml:"row_height"`
	Proportions []int   `toml:"proportions"`

	// Split, if greater than one, divides the region horizontally into
	// this many parts, separated by Gap.
	Split int     `toml:"split"`
	Gap   float64 `toml:"gap"`

	// AutoFlush defaults to true.
	AutoFlush *bool `toml:"auto_flush"`
	Lenient   bool  `toml:"lenient"`

	Cells []*Cell `toml:"cell"`
}

// Rect returns the area covered by the region.
func (r *Region) Rect() *rect.Rect {
	return &rect.Rect{LLx: r.Left, LLy: r.Bottom, URx: r.Right, URy: r.Top}
}

// Cell describes one cell of a region.
type Cell struct {
	Text string `toml:"text"`
	Span int    `toml:"span"`

	// WrapWidth, if positive, makes this a wrap cell.  The number of grid
	// units used is estimated from the width of the text.
	WrapWidth float64 `toml:"wrap_width"`

	Align    string  `toml:"align"`
	VAlign   string  `toml:"valign"`
	Font     string  `toml:"font"`
	FontSize float64 `toml:"font_size"`

	// Empty cells have no content and use one grid unit.
	Empty bool `toml:"empty"`
}

// Parse reads a layout document in TOML format and checks it for
// consistency.  Unknown keys are reported as errors.
func Parse(data []byte) (*Document, error) {
	doc := &Document{}
	md, err := toml.Decode(string(data), doc)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return nil, fmt.Errorf("layout: unknown keys %s", strings.Join(keys, ", "))
	}

	err = doc.Check()
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Load reads a layout document from a file.
func Load(fname string) (*Document, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Check verifies the document and fills in default values.
func (doc *Document) Check() error {
	if doc.Page.Width == 0 && doc.Page.Height == 0 {
		doc.Page = A4
	}
	if doc.Page.Width <= 0 || doc.Page.Height <= 0 {
		return &gridfill.ConfigError{Op: "layout", Msg: "invalid page size"}
	}

	seen := make(map[string]bool)
	for i, reg := range doc.Regions {
		if reg.Name == "" {
			reg.Name = fmt.Sprintf("region%d", i+1)
		}
		if seen[reg.Name] {
			return &gridfill.ConfigError{
				Op:  "layout",
				Msg: fmt.Sprintf("duplicate region name %q", reg.Name),
			}
		}
		seen[reg.Name] = true

		err := reg.check(doc.Page)
		if err != nil {
			return fmt.Errorf("layout: region %q: %w", reg.Name, err)
		}
	}
	return nil
}

func (reg *Region) check(page Page) error {
	switch {
	case reg.Right <= reg.Left || reg.Top <= reg.Bottom:
		return &gridfill.ConfigError{Op: "region", Msg: "empty rectangle"}
	case reg.Left < 0 || reg.Bottom < 0 || reg.Right > page.Width || reg.Top > page.Height:
		return &gridfill.ConfigError{Op: "region", Msg: "rectangle extends beyond the page"}
	case reg.Columns < 1 || reg.Rows < 1:
		return &gridfill.ConfigError{
			Op:  "region",
			Msg: fmt.Sprintf("invalid grid size %dx%d", reg.Columns, reg.Rows),
		}
	case reg.Split < 0 || reg.Gap < 0:
		return &gridfill.ConfigError{Op: "region", Msg: "invalid split"}
	}
	if reg.Split == 0 {
		reg.Split = 1
	}

	for i, c := range reg.Cells {
		err := c.check()
		if err != nil {
			return fmt.Errorf("cell %d: %w", i+1, err)
		}
	}
	return nil
}

func (c *Cell) check() error {
	_, err := c.cell(0, 0)
	if err != nil {
		return err
	}
	switch {
	case c.Empty && (c.Text != "" || c.WrapWidth > 0 || c.Span > 1):
		return &gridfill.ConfigError{Op: "cell", Msg: "empty cell with content"}
	case c.WrapWidth > 0 && c.Span > 1:
		return &gridfill.ConfigError{Op: "cell", Msg: "wrap cells cannot span columns"}
	case c.Span < 0 || c.WrapWidth < 0:
		return &gridfill.ConfigError{Op: "cell", Msg: "negative size"}
	}
	return nil
}

// cell converts the description into a gridfill cell.  The given font size
// and border width are used unless the description overrides them.
func (c *Cell) cell(fontSize, borderWidth float64) (*gridfill.Cell, error) {
	res := gridfill.NewCell(c.Text)
	if c.FontSize > 0 {
		res.FontSize = c.FontSize
	} else if fontSize > 0 {
		res.FontSize = fontSize
	}
	res.BorderWidth = borderWidth
	res.ColSpan = max(c.Span, 1)
	res.MaxWidth = c.WrapWidth

	var err error
	res.HAlign, err = gridfill.ParseHAlign(c.Align)
	if err != nil {
		return nil, err
	}
	res.VAlign, err = parseVAlign(c.VAlign)
	if err != nil {
		return nil, err
	}
	res.Font, err = gridfill.ParseFontType(c.Font)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func parseVAlign(s string) (gridfill.VAlign, error) {
	switch strings.ToLower(s) {
	case "", "m", "middle":
		return gridfill.AlignMiddle, nil
	case "t", "top":
		return gridfill.AlignTop, nil
	case "b", "bottom":
		return gridfill.AlignBottom, nil
	}
	return 0, &gridfill.ConfigError{
		Op:  "layout",
		Msg: fmt.Sprintf("invalid vertical alignment %q", s),
	}
}
