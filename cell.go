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

package gridfill

import (
	"fmt"
	"strings"
)

// HAlign gives the horizontal alignment of text inside a cell.
type HAlign int

// These are the supported horizontal alignments.
const (
	AlignLeft HAlign = iota
	AlignCenter
	AlignRight
)

func (a HAlign) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return fmt.Sprintf("HAlign(%d)", int(a))
	}
}

// ParseHAlign converts the names "left", "center" and "right" (or their
// first letters) into an alignment code.
func ParseHAlign(s string) (HAlign, error) {
	switch strings.ToLower(s) {
	case "", "l", "left":
		return AlignLeft, nil
	case "c", "center":
		return AlignCenter, nil
	case "r", "right":
		return AlignRight, nil
	}
	return 0, newConfigError("ParseHAlign", fmt.Sprintf("invalid alignment %q", s))
}

// VAlign gives the vertical alignment of text inside a cell.
type VAlign int

// These are the supported vertical alignments.
// The zero value centres the text vertically.
const (
	AlignMiddle VAlign = iota
	AlignTop
	AlignBottom
)

// Border is a bit mask which selects the sides of a cell where the border
// is drawn.
type Border uint8

// Possible values for [Border].
const (
	BorderLeft Border = 1 << iota
	BorderTop
	BorderRight
	BorderBottom

	BorderBox  = BorderLeft | BorderTop | BorderRight | BorderBottom
	BorderNone = Border(0)
)

// FontType selects one of the fonts configured in the renderer.
type FontType int

// These are the font types understood by the renderers in this module.
const (
	// FontNormal is used for Latin text.
	FontNormal FontType = iota

	// FontDBCS is used for text in double byte character sets.
	FontDBCS
)

// ParseFontType converts the names "normal" and "dbcs" into a font type.
func ParseFontType(s string) (FontType, error) {
	switch strings.ToLower(s) {
	case "", "normal":
		return FontNormal, nil
	case "dbcs":
		return FontDBCS, nil
	}
	return 0, newConfigError("ParseFontType", fmt.Sprintf("invalid font type %q", s))
}

// DefaultFontSize is the font size used by [NewCell].
const DefaultFontSize = 8

// A Cell holds the content and styling information for one table cell.
//
// Cells are passed to the [Renderer] unchanged.  The zero value is not
// useful; use [NewCell] to get the default styling.
type Cell struct {
	Content  string
	FontSize float64
	Font     FontType

	// ColSpan is the number of grid columns covered by the cell.
	// It is also the number of capacity units consumed by the cell.
	ColSpan int

	BorderWidth float64
	Border      Border

	// Padding is the space between the border and the text.
	// If this is zero, the renderer default is used.
	Padding float64

	HAlign HAlign
	VAlign VAlign

	// FixedHeight, if positive, overrides the computed height of the cell.
	FixedHeight float64

	// NoWrap disables line breaking inside the cell.
	NoWrap bool

	// MaxWidth is the width available to a single line of text.  This is
	// only used for wrap cells, see [Region.AddWrapCell].
	MaxWidth float64
}

// NewCell returns a single-column cell with the default font size, a border
// of width zero on all sides, and left aligned text.
func NewCell(content string) *Cell {
	return &Cell{
		Content:  content,
		FontSize: DefaultFontSize,
		ColSpan:  1,
		Border:   BorderBox,
	}
}

// Span returns the number of capacity units the cell occupies.
func (c *Cell) Span() int {
	if c.ColSpan < 1 {
		return 1
	}
	return c.ColSpan
}

// Check verifies that the styling codes of the cell are valid.
func (c *Cell) Check() error {
	switch {
	case c.HAlign < AlignLeft || c.HAlign > AlignRight:
		return newConfigError("Cell", fmt.Sprintf("unknown horizontal alignment %d", c.HAlign))
	case c.VAlign < AlignMiddle || c.VAlign > AlignBottom:
		return newConfigError("Cell", fmt.Sprintf("unknown vertical alignment %d", c.VAlign))
	case c.Border&^BorderBox != 0:
		return newConfigError("Cell", fmt.Sprintf("unknown border code %d", c.Border))
	case c.Font != FontNormal && c.Font != FontDBCS:
		return newConfigError("Cell", fmt.Sprintf("unknown font type %d", c.Font))
	case c.FontSize < 0 || c.BorderWidth < 0 || c.Padding < 0:
		return newConfigError("Cell", "negative size")
	}
	return nil
}
