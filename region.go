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
	"log/slog"
	"math"
	"slices"

	"seehuhn.de/go/geom/rect"
)

// Default values for [RegionOptions].
const (
	DefaultRegionFontSize = 9
	DefaultRowHeight      = 14
	DefaultPadding        = 0.2
)

// RegionOptions can be used to configure a [Region].
// The zero value selects the defaults.
type RegionOptions struct {
	// FontSize is used for cells added via [Region.AddText] and
	// [Region.AddWrapText].
	FontSize float64

	BorderWidth float64
	RowHeight   float64

	// Proportions gives the relative column widths.  If this is set, the
	// length must equal the number of columns.  By default all columns have
	// the same width.
	Proportions []int

	// DisableAutoFlush stops the region from rendering itself as soon as
	// the capacity is reached.
	DisableAutoFlush bool

	// LenientOvercapacity changes how an overfull region without auto-flush
	// reacts: instead of returning an [*OvercapacityError], a warning is
	// logged and the cell is rejected as if the region was full.
	LenientOvercapacity bool

	// Logger receives diagnostic messages.  If this is nil, nothing is
	// logged.
	Logger *slog.Logger
}

type regionState uint8

const (
	stateEmpty regionState = iota
	stateCreated
	stateFlushed
)

func (s regionState) String() string {
	switch s {
	case stateEmpty:
		return "empty"
	case stateCreated:
		return "created"
	case stateFlushed:
		return "flushed"
	default:
		return fmt.Sprintf("regionState(%d)", int(s))
	}
}

// Outcome describes the result of trying to place a cell into a region.
type Outcome int

// These are the possible outcomes of a placement.
const (
	// Accepted means that the cell was added to the region.
	Accepted Outcome = iota

	// Full means that the region had not enough capacity left.
	Full

	// Flushed means that the region was already rendered.
	Flushed
)

func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case Full:
		return "full"
	case Flushed:
		return "flushed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Err converts a non-fatal outcome into the corresponding error value.
// Accepted maps to nil.
func (o Outcome) Err() error {
	switch o {
	case Full:
		return ErrRegionFull
	case Flushed:
		return ErrRegionFlushed
	default:
		return nil
	}
}

// A Region is a rectangular area of a page which is filled with a grid of
// cells.  The grid has a fixed number of columns and rows.  Once the region
// is full, or when [Region.Flush] is called, the grid is drawn exactly once.
//
// A Region must only be used by one goroutine at a time.
type Region struct {
	r Renderer
	m TextMeasurer

	pos        *rect.Rect
	replicator *rect.Rect

	columns     int
	rows        int
	proportions []int

	fontSize    float64
	borderWidth float64
	rowHeight   float64

	autoFlush bool
	lenient   bool
	log       *slog.Logger

	table  Table
	filled int
	state  regionState
}

// NewRegion allocates a new region covering the rectangle pos.  The region
// keeps a reference to pos and moves its top edge down when the region is
// flushed.
//
// The measurer m is only needed for wrap cells and may be nil otherwise.
func NewRegion(r Renderer, m TextMeasurer, pos *rect.Rect, columns, rows int, opt *RegionOptions) (*Region, error) {
	if opt == nil {
		opt = &RegionOptions{}
	}
	switch {
	case r == nil:
		return nil, newConfigError("NewRegion", "missing renderer")
	case pos == nil:
		return nil, newConfigError("NewRegion", "missing position")
	case columns < 1 || rows < 1:
		return nil, newConfigError("NewRegion",
			fmt.Sprintf("invalid grid size %dx%d", columns, rows))
	case pos.Dx() <= 0:
		return nil, newConfigError("NewRegion", "region has no width")
	}

	g := &Region{
		r:           r,
		m:           m,
		pos:         pos,
		columns:     columns,
		rows:        rows,
		fontSize:    opt.FontSize,
		borderWidth: opt.BorderWidth,
		rowHeight:   opt.RowHeight,
		autoFlush:   !opt.DisableAutoFlush,
		lenient:     opt.LenientOvercapacity,
		log:         opt.Logger,
	}
	if g.fontSize <= 0 {
		g.fontSize = DefaultRegionFontSize
	}
	if g.rowHeight <= 0 {
		g.rowHeight = DefaultRowHeight
	}
	if g.log == nil {
		g.log = slog.New(slog.DiscardHandler)
	}
	if opt.Proportions != nil {
		err := g.SetProportions(opt.Proportions)
		if err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Clone returns a new, empty region with the same configuration as g.
// The position of the new region is a copy of g's position, and no
// replicator is set.
func (g *Region) Clone() *Region {
	pos := *g.pos
	return &Region{
		r:           g.r,
		m:           g.m,
		pos:         &pos,
		columns:     g.columns,
		rows:        g.rows,
		proportions: slices.Clone(g.proportions),
		fontSize:    g.fontSize,
		borderWidth: g.borderWidth,
		rowHeight:   g.rowHeight,
		autoFlush:   g.autoFlush,
		lenient:     g.lenient,
		log:         g.log,
	}
}

// Columns returns the number of grid columns.
func (g *Region) Columns() int { return g.columns }

// Rows returns the number of grid rows.
func (g *Region) Rows() int { return g.rows }

// Capacity returns the number of cell units the region can hold.
func (g *Region) Capacity() int {
	return g.columns * g.rows
}

// Filled returns the number of cell units placed so far.
func (g *Region) Filled() int { return g.filled }

// Remaining returns the number of cell units which can still be placed.
func (g *Region) Remaining() int {
	return max(g.Capacity()-g.filled, 0)
}

// IsCreated reports whether the backing table has been created.
func (g *Region) IsCreated() bool { return g.state != stateEmpty }

// IsFlushed reports whether the region has been rendered.
func (g *Region) IsFlushed() bool { return g.state == stateFlushed }

// Position returns the rectangle covered by the region.  The rectangle can
// be modified to move the region before the first cell is added.
// After a flush, the top edge gives the lower edge of the rendered table.
func (g *Region) Position() *rect.Rect { return g.pos }

// SetReplicator sets a rectangle whose top edge is lowered to the bottom of
// this region whenever the region is flushed.  Use nil to remove the
// replicator.
func (g *Region) SetReplicator(r *rect.Rect) {
	g.replicator = r
}

// AutoFlush reports whether the region renders itself once it is full.
func (g *Region) AutoFlush() bool { return g.autoFlush }

// SetAutoFlush enables or disables automatic flushing.
func (g *Region) SetAutoFlush(autoFlush bool) {
	g.autoFlush = autoFlush
}

// FontSize returns the font size used for plain text cells.
func (g *Region) FontSize() float64 { return g.fontSize }

// SetFontSize changes the font size used for plain text cells.
// This affects only cells added after the call.
func (g *Region) SetFontSize(size float64) {
	g.fontSize = size
}

// Proportions returns the relative column widths.
func (g *Region) Proportions() []int {
	return slices.Clone(g.proportions)
}

// SetProportions sets the relative column widths.
func (g *Region) SetProportions(p []int) error {
	if g.state != stateEmpty {
		return ErrAlreadyCreated
	}
	if len(p) != g.columns {
		return newConfigError("SetProportions",
			fmt.Sprintf("%d column widths given for %d columns", len(p), g.columns))
	}
	for _, w := range p {
		if w <= 0 {
			return newConfigError("SetProportions", "column widths must be positive")
		}
	}
	g.proportions = slices.Clone(p)
	return nil
}

// SetBorderWidth sets the border width used for cells which do not
// specify their own.
func (g *Region) SetBorderWidth(w float64) error {
	if g.state != stateEmpty {
		return ErrAlreadyCreated
	}
	g.borderWidth = w
	return nil
}

// SetRowHeight sets the minimal height of table rows.
func (g *Region) SetRowHeight(h float64) error {
	if g.state != stateEmpty {
		return ErrAlreadyCreated
	}
	g.rowHeight = h
	return nil
}

// Create allocates the backing table.  Calling Create more than once has no
// effect.  The other methods of Region call Create as needed.
func (g *Region) Create() error {
	if g.state != stateEmpty {
		return nil
	}

	if len(g.proportions) == 0 {
		g.proportions = make([]int, g.columns)
		for i := range g.proportions {
			g.proportions[i] = 1
		}
	}

	t, err := g.r.CreateTable(g.columns, g.pos.Dx(), g.proportions)
	if err != nil {
		return fmt.Errorf("gridfill: create table: %w", err)
	}
	t.SetDefaults(&TableDefaults{
		BorderWidth: g.borderWidth,
		RowHeight:   g.rowHeight,
		Padding:     DefaultPadding,
	})
	g.table = t
	g.state = stateCreated

	g.log.Debug("table created",
		"columns", g.columns, "rows", g.rows, "width", g.pos.Dx())
	return nil
}

// Place tries to add the cell c to the region.  The cell consumes
// c.ColSpan units of capacity.
//
// The returned error is only set for fatal conditions: invalid cells,
// renderer failures, and overcapacity.  Whether the cell was accepted is
// given by the Outcome.
func (g *Region) Place(c *Cell) (Outcome, error) {
	if err := c.Check(); err != nil {
		return 0, err
	}
	return g.place(c.Span(), func() error {
		return g.r.AddCell(g.table, c)
	})
}

// PlaceEmpty tries to add an empty single-column cell to the region.
func (g *Region) PlaceEmpty() (Outcome, error) {
	return g.place(1, func() error {
		return g.r.AddEmptyCell(g.table, g.borderWidth)
	})
}

// PlaceWrap tries to add a cell whose text may need more than one line.
// The cost of the cell is determined by [WrapCost].
func (g *Region) PlaceWrap(c *Cell) (Outcome, error) {
	if err := c.Check(); err != nil {
		return 0, err
	}
	cost, err := WrapCost(g.m, c, g.columns)
	if err != nil {
		return 0, err
	}
	return g.place(cost, func() error {
		return g.r.AddCell(g.table, c)
	})
}

// place implements the capacity accounting shared by all insertion methods.
func (g *Region) place(cost int, add func() error) (Outcome, error) {
	if err := g.Create(); err != nil {
		return 0, err
	}
	if g.state == stateFlushed {
		return Flushed, nil
	}

	if cost < 1 {
		return 0, newConfigError("Place", fmt.Sprintf("invalid cell cost %d", cost))
	}

	capacity := g.Capacity()
	if cost > math.MaxInt-g.filled {
		g.filled = math.MaxInt
	} else {
		g.filled += cost
	}
	if g.filled > capacity {
		if g.autoFlush {
			// The region cannot take the cell, so it is rendered as it is.
			if err := g.Flush(); err != nil {
				return 0, err
			}
			return Full, nil
		}
		if g.lenient {
			g.log.Warn("region overfull",
				"filled", g.filled, "capacity", capacity)
			return Full, nil
		}
		return 0, &OvercapacityError{Filled: g.filled, Capacity: capacity}
	}

	if err := add(); err != nil {
		return 0, fmt.Errorf("gridfill: add cell: %w", err)
	}

	if g.autoFlush && g.filled == capacity {
		if err := g.Flush(); err != nil {
			return 0, err
		}
	}
	return Accepted, nil
}

// AddCell adds the cell c to the region.
// If the cell does not fit, [ErrRegionFull] is returned.
// If the region has already been rendered, [ErrRegionFlushed] is returned.
func (g *Region) AddCell(c *Cell) error {
	o, err := g.Place(c)
	if err != nil {
		return err
	}
	return o.Err()
}

// AddText adds a single-column cell containing text, using the font size
// and border width of the region.
func (g *Region) AddText(text string) error {
	return g.AddCell(g.textCell(text))
}

// AddEmptyCell adds an empty single-column cell.
func (g *Region) AddEmptyCell() error {
	o, err := g.PlaceEmpty()
	if err != nil {
		return err
	}
	return o.Err()
}

// AddWrapCell adds a cell whose text may wrap onto more lines.  The cell
// must have ColSpan 1 and a positive MaxWidth.
func (g *Region) AddWrapCell(c *Cell) error {
	o, err := g.PlaceWrap(c)
	if err != nil {
		return err
	}
	return o.Err()
}

// AddWrapText adds a wrap cell containing text, using the font size and
// border width of the region.
func (g *Region) AddWrapText(text string, maxWidth float64) error {
	c := g.textCell(text)
	c.MaxWidth = maxWidth
	return g.AddWrapCell(c)
}

func (g *Region) textCell(text string) *Cell {
	c := NewCell(text)
	c.FontSize = g.fontSize
	c.BorderWidth = g.borderWidth
	return c
}

// Flush renders the region.  The top edge of the region's position is moved
// to the lower edge of the rendered table.  Calling Flush on a region which
// has already been rendered has no effect.
func (g *Region) Flush() error {
	if g.state == stateFlushed {
		return nil
	}
	if err := g.Create(); err != nil {
		return err
	}

	bottom, err := g.r.FlushTable(g.table, g.pos.LLx, g.pos.URy)
	if err != nil {
		return fmt.Errorf("gridfill: flush table: %w", err)
	}
	g.pos.URy = bottom
	if g.replicator != nil {
		g.replicator.URy = min(g.replicator.URy, bottom)
	}
	g.state = stateFlushed

	g.log.Debug("table flushed",
		"filled", g.filled, "capacity", g.Capacity(), "bottom", bottom)
	return nil
}
