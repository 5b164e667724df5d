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
	"errors"
	"math"
	"testing"

	"seehuhn.de/go/geom/rect"
)

// widthTable returns preset widths, independent of the font size.
type widthTable map[string]float64

func (w widthTable) TextWidth(text string, fontSize float64) float64 {
	return w[text]
}

func TestWrapCost(t *testing.T) {
	m := widthTable{
		"short": 40,
		"exact": 100,
		"long":  250,
		"twice": 200,
		"huge":  1010,
	}
	cases := []struct {
		text    string
		columns int
		cost    int
	}{
		{"short", 2, 1},
		{"exact", 2, 1},
		{"long", 2, 5}, // 1 + floor(2.5)*2
		{"twice", 2, 5},
		{"long", 3, 7},
		{"huge", 1, 11},
	}
	for _, c := range cases {
		cell := NewCell(c.text)
		cell.MaxWidth = 100
		cost, err := WrapCost(m, cell, c.columns)
		if err != nil {
			t.Errorf("%s/%d: %v", c.text, c.columns, err)
			continue
		}
		if cost != c.cost {
			t.Errorf("%s/%d: cost %d != %d", c.text, c.columns, cost, c.cost)
		}
	}
}

func TestWrapCostPreconditions(t *testing.T) {
	m := widthTable{}

	span := NewCell("x")
	span.ColSpan = 2
	span.MaxWidth = 10

	noWidth := NewCell("x")

	for _, cell := range []*Cell{span, noWidth} {
		_, err := WrapCost(m, cell, 2)
		var confErr *ConfigError
		if !errors.As(err, &confErr) {
			t.Errorf("expected ConfigError, got %v", err)
		}
	}

	ok := NewCell("x")
	ok.MaxWidth = 10
	_, err := WrapCost(nil, ok, 2)
	if err == nil {
		t.Error("missing measurer not detected")
	}
}

// TestWrapRegion checks that wrap cells use the estimated number of units
// in a region.
func TestWrapRegion(t *testing.T) {
	m := widthTable{"a": 10, "b": 250}
	r := &nullRenderer{}
	g, err := NewRegion(r, m, rectOfWidth(200), 2, 4, nil)
	if err != nil {
		t.Fatal(err)
	}

	err = g.AddWrapText("a", 100)
	if err != nil {
		t.Fatal(err)
	}
	err = g.AddWrapText("b", 100)
	if err != nil {
		t.Fatal(err)
	}
	if g.Filled() != 6 {
		t.Errorf("filled = %d, not 6", g.Filled())
	}

	// 5 more units do not fit into the remaining 2
	err = g.AddWrapText("b", 100)
	if !errors.Is(err, ErrRegionFull) {
		t.Errorf("expected ErrRegionFull, got %v", err)
	}
	if r.cells != 2 || r.flushes != 1 {
		t.Errorf("cells=%d flushes=%d", r.cells, r.flushes)
	}
}

// TestWrapCostLarge checks that very narrow wrap widths cannot make the
// cost wrap around.
func TestWrapCostLarge(t *testing.T) {
	m := widthTable{"x": 100}
	for _, columns := range []int{1, 2, 3} {
		cell := NewCell("x")
		cell.MaxWidth = 1e-300
		cost, err := WrapCost(m, cell, columns)
		if err != nil {
			t.Fatal(err)
		}
		if cost != math.MaxInt {
			t.Errorf("%d columns: cost %d", columns, cost)
		}
	}

	r := &nullRenderer{}
	g, err := NewRegion(r, m, rectOfWidth(200), 3, 2, nil)
	if err != nil {
		t.Fatal(err)
	}
	err = g.AddText("a")
	if err != nil {
		t.Fatal(err)
	}
	o, err := g.PlaceWrap(&Cell{Content: "x", MaxWidth: 1e-300})
	if err != nil {
		t.Fatal(err)
	}
	if o != Full {
		t.Errorf("outcome %s, not Full", o)
	}
	if g.Filled() < g.Capacity() || g.Remaining() != 0 {
		t.Errorf("filled = %d, remaining = %d", g.Filled(), g.Remaining())
	}
	if r.cells != 1 {
		t.Errorf("%d cells added", r.cells)
	}
}

func TestWrapCostBadWidth(t *testing.T) {
	m := widthTable{"nan": math.NaN(), "inf": math.Inf(1)}
	for _, text := range []string{"nan", "inf"} {
		cell := NewCell(text)
		cell.MaxWidth = 10
		_, err := WrapCost(m, cell, 2)
		var confErr *ConfigError
		if !errors.As(err, &confErr) {
			t.Errorf("%s: expected ConfigError, got %v", text, err)
		}
	}

	cell := NewCell("x")
	cell.MaxWidth = 10
	_, err := WrapCost(m, cell, 0)
	if err == nil {
		t.Error("zero columns accepted")
	}
}

func TestPlaceInvalidCost(t *testing.T) {
	r := &nullRenderer{}
	g, err := NewRegion(r, widthTable{}, rectOfWidth(200), 2, 2, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, cost := range []int{0, -5} {
		_, err := g.place(cost, func() error { return nil })
		var confErr *ConfigError
		if !errors.As(err, &confErr) {
			t.Errorf("cost %d: expected ConfigError, got %v", cost, err)
		}
	}
	if g.Filled() != 0 {
		t.Errorf("filled = %d", g.Filled())
	}
}

type nullRenderer struct {
	cells, flushes int
}

type nullTable struct{}

func (nullTable) SetDefaults(*TableDefaults) {}

func (r *nullRenderer) CreateTable(int, float64, []int) (Table, error) {
	return nullTable{}, nil
}

func (r *nullRenderer) AddCell(Table, *Cell) error {
	r.cells++
	return nil
}

func (r *nullRenderer) AddEmptyCell(Table, float64) error {
	r.cells++
	return nil
}

func (r *nullRenderer) FlushTable(_ Table, _, top float64) (float64, error) {
	r.flushes++
	return top, nil
}

func rectOfWidth(w float64) *rect.Rect {
	return &rect.Rect{URx: w, URy: 100}
}
