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

	"seehuhn.de/go/geom/rect"
)

// A Mediator distributes cells over a sequence of regions.  Each cell is
// placed into the first region, in order, which can still take it.
//
// The methods come in two forms: the AddXXX methods return [ErrRegionFull]
// if no region could take the cell, the TryAddXXX methods report this
// as a boolean instead.  In both cases, the returned error is non-nil for
// fatal conditions.
//
// A Mediator must only be used by one goroutine at a time.
type Mediator struct {
	regions []*Region
	pos     *rect.Rect
}

// NewMediator returns a mediator which passes all cells to the single
// region g.
func NewMediator(g *Region) (*Mediator, error) {
	if g == nil {
		return nil, newConfigError("NewMediator", "missing region")
	}
	return &Mediator{
		regions: []*Region{g},
		pos:     g.pos,
	}, nil
}

// SplitMediator divides the area of g into n columns of equal width,
// separated by gaps of the given size.  Each column becomes a clone of g.
// Cells are placed into the columns from left to right.
//
// The position of g is used as the replicator of all parts: after a part is
// flushed, the top edge of g's position is lowered to the bottom of the
// lowest part flushed so far.  The region g itself is not used for drawing.
func SplitMediator(g *Region, n int, gap float64) (*Mediator, error) {
	if g == nil {
		return nil, newConfigError("SplitMediator", "missing region")
	}
	pos := g.pos
	parts, err := SplitRect(pos, n, gap)
	if err != nil {
		return nil, err
	}

	regions := make([]*Region, n)
	for i, part := range parts {
		regions[i] = g.Clone()
		*regions[i].pos = part
		regions[i].replicator = pos
	}

	return &Mediator{
		regions: regions,
		pos:     pos,
	}, nil
}

// SplitRect divides pos into n rectangles of equal width, separated by gaps
// of the given size.  All parts have the same vertical extent as pos.
func SplitRect(pos *rect.Rect, n int, gap float64) ([]rect.Rect, error) {
	if n < 1 {
		return nil, newConfigError("SplitRect", fmt.Sprintf("invalid number of parts %d", n))
	}
	if gap < 0 {
		return nil, newConfigError("SplitRect", "negative gap")
	}

	width := (pos.Dx() - gap*float64(n-1)) / float64(n)
	if !(width > 0) {
		return nil, newConfigError("SplitRect", "gaps leave no room for the parts")
	}

	parts := make([]rect.Rect, n)
	left := pos.LLx
	for i := range parts {
		parts[i] = *pos
		parts[i].LLx = left
		parts[i].URx = left + width
		left += width + gap
	}
	// avoid rounding errors at the right edge
	parts[n-1].URx = pos.URx

	return parts, nil
}

// Regions returns the regions managed by the mediator, in placement order.
func (m *Mediator) Regions() []*Region {
	return m.regions
}

// Len returns the number of regions.
func (m *Mediator) Len() int {
	return len(m.regions)
}

// Position returns the rectangle of the original region.  For split
// mediators, the top edge is updated whenever a part is flushed.
func (m *Mediator) Position() *rect.Rect {
	return m.pos
}

// Capacity returns the total capacity of all regions.
func (m *Mediator) Capacity() int {
	total := 0
	for _, g := range m.regions {
		total += g.Capacity()
	}
	return total
}

// dispatch tries the regions in order until one accepts the cell.
//
// Regions which are already flushed are skipped.  A region reporting Full
// passes the cell on to the next region.  If no region accepts the cell,
// the result is Full.  Fatal errors stop the scan immediately.
func (m *Mediator) dispatch(place func(*Region) (Outcome, error)) (Outcome, error) {
	for _, g := range m.regions {
		if g.IsFlushed() {
			continue
		}
		o, err := place(g)
		if err != nil {
			return 0, err
		}
		if o == Accepted {
			return Accepted, nil
		}
	}
	return Full, nil
}

func strict(o Outcome, err error) error {
	if err != nil {
		return err
	}
	if o != Accepted {
		return ErrRegionFull
	}
	return nil
}

func tolerant(o Outcome, err error) (bool, error) {
	if err != nil {
		return false, err
	}
	return o == Accepted, nil
}

// Place adds the cell c to the first region which can take it.
func (m *Mediator) Place(c *Cell) (Outcome, error) {
	return m.dispatch(func(g *Region) (Outcome, error) {
		return g.Place(c)
	})
}

// PlaceEmpty adds an empty cell to the first region which can take it.
func (m *Mediator) PlaceEmpty() (Outcome, error) {
	return m.dispatch((*Region).PlaceEmpty)
}

// PlaceWrap adds a wrap cell to the first region which can take it.
// The cost of the cell is evaluated separately for each region tried.
func (m *Mediator) PlaceWrap(c *Cell) (Outcome, error) {
	return m.dispatch(func(g *Region) (Outcome, error) {
		return g.PlaceWrap(c)
	})
}

// AddCell adds the cell c to the first region which can take it.
// If there is no such region, [ErrRegionFull] is returned.
func (m *Mediator) AddCell(c *Cell) error {
	return strict(m.Place(c))
}

// TryAddCell adds the cell c to the first region which can take it,
// and reports whether this succeeded.
func (m *Mediator) TryAddCell(c *Cell) (bool, error) {
	return tolerant(m.Place(c))
}

// AddText adds a text cell, styled by the receiving region.
func (m *Mediator) AddText(text string) error {
	return strict(m.placeText(text))
}

// TryAddText is like [Mediator.AddText], but reports a full mediator as
// a boolean.
func (m *Mediator) TryAddText(text string) (bool, error) {
	return tolerant(m.placeText(text))
}

func (m *Mediator) placeText(text string) (Outcome, error) {
	return m.dispatch(func(g *Region) (Outcome, error) {
		return g.Place(g.textCell(text))
	})
}

// AddEmptyCell adds an empty cell.
func (m *Mediator) AddEmptyCell() error {
	return strict(m.PlaceEmpty())
}

// TryAddEmptyCell is like [Mediator.AddEmptyCell], but reports a full
// mediator as a boolean.
func (m *Mediator) TryAddEmptyCell() (bool, error) {
	return tolerant(m.PlaceEmpty())
}

// AddWrapCell adds a cell whose text may need more than one line.
func (m *Mediator) AddWrapCell(c *Cell) error {
	return strict(m.PlaceWrap(c))
}

// TryAddWrapCell is like [Mediator.AddWrapCell], but reports a full
// mediator as a boolean.
func (m *Mediator) TryAddWrapCell(c *Cell) (bool, error) {
	return tolerant(m.PlaceWrap(c))
}

// AddWrapText adds a wrap cell containing text, styled by the receiving
// region.
func (m *Mediator) AddWrapText(text string, maxWidth float64) error {
	return strict(m.placeWrapText(text, maxWidth))
}

// TryAddWrapText is like [Mediator.AddWrapText], but reports a full
// mediator as a boolean.
func (m *Mediator) TryAddWrapText(text string, maxWidth float64) (bool, error) {
	return tolerant(m.placeWrapText(text, maxWidth))
}

func (m *Mediator) placeWrapText(text string, maxWidth float64) (Outcome, error) {
	return m.dispatch(func(g *Region) (Outcome, error) {
		c := g.textCell(text)
		c.MaxWidth = maxWidth
		return g.PlaceWrap(c)
	})
}

// Flush renders all regions which have been created but not yet flushed.
// The return value reports whether any region was rendered.
func (m *Mediator) Flush() (bool, error) {
	return m.flush(false)
}

// FlushOnce renders the first region which has been created but not yet
// flushed.  The return value reports whether a region was rendered.
func (m *Mediator) FlushOnce() (bool, error) {
	return m.flush(true)
}

func (m *Mediator) flush(once bool) (bool, error) {
	flushed := false
	for _, g := range m.regions {
		if !g.IsCreated() || g.IsFlushed() {
			continue
		}
		if err := g.Flush(); err != nil {
			return flushed, err
		}
		flushed = true
		if once {
			break
		}
	}
	return flushed, nil
}
