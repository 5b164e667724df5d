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

import "math"

// WrapCost returns the number of capacity units reserved for a wrap cell in
// a grid with the given number of columns.
//
// Text which fits into c.MaxWidth costs one unit.  Longer text is assumed to
// continue over whole rows of the grid, so that the cost is
// 1 + floor(w/c.MaxWidth)*columns, where w is the measured text width.
// Costs too large for an int are reported as math.MaxInt.
func WrapCost(m TextMeasurer, c *Cell, columns int) (int, error) {
	switch {
	case c.Span() != 1:
		return 0, newConfigError("WrapCost", "wrap cells must span exactly one column")
	case !(c.MaxWidth > 0):
		return 0, newConfigError("WrapCost", "wrap cells need a positive maximum width")
	case m == nil:
		return 0, newConfigError("WrapCost", "no text measurer configured")
	}

	if columns < 1 {
		return 0, newConfigError("WrapCost", "invalid number of columns")
	}

	w := m.TextWidth(c.Content, c.FontSize)
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return 0, newConfigError("WrapCost", "text width is not a finite number")
	}
	if w <= c.MaxWidth {
		return 1, nil
	}
	// floor, not ceil: if w is an exact multiple of MaxWidth, the last
	// line does not get a row of its own.
	rows := math.Floor(w / c.MaxWidth)
	if rows > float64((math.MaxInt-1)/columns) {
		// more than any region can hold
		return math.MaxInt, nil
	}
	return 1 + int(rows)*columns, nil
}
