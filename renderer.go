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

// A Renderer creates and draws grid tables.
//
// Errors returned by a Renderer are not retried.  They are passed on to the
// caller of the [Region] or [Mediator] method which triggered them.
type Renderer interface {
	// CreateTable allocates a new table with the given number of columns.
	// The column widths are proportional to the entries of proportions,
	// and add up to width.
	CreateTable(columns int, width float64, proportions []int) (Table, error)

	// AddCell appends a cell to the table.  Cells fill the table row by row.
	AddCell(t Table, c *Cell) error

	// AddEmptyCell appends a single-column cell without content.
	AddEmptyCell(t Table, borderWidth float64) error

	// FlushTable draws the table with its top-left corner at (left, top)
	// and returns the y coordinate of the lower edge of the table.
	FlushTable(t Table, left, top float64) (float64, error)
}

// A Table is the opaque handle of a table created by a [Renderer].
type Table interface {
	// SetDefaults sets the styling used for cells which do not
	// carry their own values.
	SetDefaults(d *TableDefaults)
}

// TableDefaults contains the cell styling applied to a newly created table.
type TableDefaults struct {
	BorderWidth float64
	RowHeight   float64
	Padding     float64
}

// A TextMeasurer determines the width of rendered text.
// Implementations must not have side effects.
type TextMeasurer interface {
	// TextWidth returns the width of text set in the given font size,
	// in PDF units.
	TextWidth(text string, fontSize float64) float64
}
