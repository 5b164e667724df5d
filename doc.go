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

// Package gridfill places cells into fixed-size grids on a page.
//
// A [Region] covers a rectangle of the page and holds a grid with a fixed
// number of columns and rows.  Cells are added one by one; each cell uses
// as many units of capacity as it spans columns.  Once all units are used,
// the region is drawn ("flushed") and its rectangle is updated to the
// lower edge of the drawn table:
//
//	pos := &rect.Rect{LLx: 10, LLy: 10, URx: 200, URy: 600}
//	g, err := gridfill.NewRegion(renderer, measurer, pos, 2, 2, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, s := range []string{"a", "b", "c", "d"} {
//	    err = g.AddText(s)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	}
//	// g is now flushed and pos.URy is the bottom of the table
//
// A [Mediator] spreads cells over several regions.  [SplitMediator] divides
// one region into columns placed side by side, and fills them from left to
// right.
//
// Drawing is delegated to a [Renderer].  The package
// seehuhn.de/go/gridfill/table provides an implementation which draws onto
// a PDF content stream or into an image.
package gridfill
