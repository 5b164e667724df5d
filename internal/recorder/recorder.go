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

// Package recorder provides a gridfill.Renderer which records all calls,
// for use in tests.
package recorder

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"seehuhn.de/go/gridfill"
)

// Call describes one call to the renderer.
type Call struct {
	Op      string // "create", "cell", "empty" or "flush"
	Table   int    // index of the table
	Content string
	Span    int
	Width   float64
	Left    float64
	Top     float64
}

// Renderer records the calls made to it.  Flushing a table lowers the top
// coordinate by RowHeight for every started row.
type Renderer struct {
	Calls  []Call
	Tables []*Table

	// Fail, if set, is returned by all methods.
	Fail error
}

// Table is the table type used by [Renderer].
type Table struct {
	Index       int
	Columns     int
	Width       float64
	Proportions []int
	Defaults    gridfill.TableDefaults
	Units       int
	Flushes     int
}

// SetDefaults implements the [gridfill.Table] interface.
func (t *Table) SetDefaults(d *gridfill.TableDefaults) {
	t.Defaults = *d
}

// Rows returns the number of started rows.
func (t *Table) Rows() int {
	return (t.Units + t.Columns - 1) / t.Columns
}

// CreateTable implements the [gridfill.Renderer] interface.
func (r *Renderer) CreateTable(columns int, width float64, proportions []int) (gridfill.Table, error) {
	if r.Fail != nil {
		return nil, r.Fail
	}
	t := &Table{
		Index:       len(r.Tables),
		Columns:     columns,
		Width:       width,
		Proportions: append([]int(nil), proportions...),
	}
	r.Tables = append(r.Tables, t)
	r.Calls = append(r.Calls, Call{Op: "create", Table: t.Index, Width: width})
	return t, nil
}

// AddCell implements the [gridfill.Renderer] interface.
func (r *Renderer) AddCell(t gridfill.Table, c *gridfill.Cell) error {
	if r.Fail != nil {
		return r.Fail
	}
	tt, err := r.table(t)
	if err != nil {
		return err
	}
	tt.Units += c.Span()
	r.Calls = append(r.Calls, Call{Op: "cell", Table: tt.Index, Content: c.Content, Span: c.Span()})
	return nil
}

// AddEmptyCell implements the [gridfill.Renderer] interface.
func (r *Renderer) AddEmptyCell(t gridfill.Table, borderWidth float64) error {
	if r.Fail != nil {
		return r.Fail
	}
	tt, err := r.table(t)
	if err != nil {
		return err
	}
	tt.Units++
	r.Calls = append(r.Calls, Call{Op: "empty", Table: tt.Index, Span: 1, Width: borderWidth})
	return nil
}

// FlushTable implements the [gridfill.Renderer] interface.
func (r *Renderer) FlushTable(t gridfill.Table, left, top float64) (float64, error) {
	if r.Fail != nil {
		return 0, r.Fail
	}
	tt, err := r.table(t)
	if err != nil {
		return 0, err
	}
	tt.Flushes++
	r.Calls = append(r.Calls, Call{Op: "flush", Table: tt.Index, Left: left, Top: top})
	return top - float64(tt.Rows())*tt.Defaults.RowHeight, nil
}

// Count returns the number of recorded calls with the given operation.
func (r *Renderer) Count(op string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

func (r *Renderer) table(t gridfill.Table) (*Table, error) {
	tt, ok := t.(*Table)
	if !ok || tt.Index >= len(r.Tables) || r.Tables[tt.Index] != tt {
		return nil, fmt.Errorf("recorder: unknown table %v", t)
	}
	return tt, nil
}

// ErrBroken can be used as the value of [Renderer.Fail].
var ErrBroken = errors.New("recorder: broken renderer")

// Measurer is a [gridfill.TextMeasurer] where every rune has the width
// of the font size times Advance.
type Measurer struct {
	Advance float64
}

// TextWidth implements the [gridfill.TextMeasurer] interface.
func (m Measurer) TextWidth(text string, fontSize float64) float64 {
	return float64(utf8.RuneCountInString(text)) * fontSize * m.Advance
}
