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

package content

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/gridfill"
	"seehuhn.de/go/gridfill/internal/recorder"
	"seehuhn.de/go/gridfill/table"
)

func TestWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewWriter(buf)

	w.SetLineWidth(0.5)
	w.StrokeLine(10, 20, 30, 20.25)
	w.ShowText(gridfill.FontDBCS, 9, 11, 489.8, "a(b)")
	w.SetLineWidth(0.5)
	w.PushGraphicsState()
	w.SetLineWidth(1)
	w.PopGraphicsState()
	w.SetLineWidth(0.5)
	if w.Err != nil {
		t.Fatal(w.Err)
	}

	want := `0.5 w
10 20 m 30 20.25 l S
BT
/F2 9 Tf
11 489.8 Td
(a(b)) Tj
ET
q
1 w
Q
`
	if d := cmp.Diff(want, buf.String()); d != "" {
		t.Errorf("wrong output (-want +got):\n%s", d)
	}
}

func TestWriterErrors(t *testing.T) {
	w := NewWriter(io.Discard)
	w.PopGraphicsState()
	if w.Err == nil {
		t.Error("unbalanced Q not detected")
	}

	w = NewWriter(io.Discard)
	w.SetLineWidth(-1)
	if w.Err == nil {
		t.Error("negative line width not detected")
	}

	fail := &failWriter{}
	w = NewWriter(fail)
	w.StrokeLine(0, 0, 1, 1)
	w.StrokeLine(0, 0, 1, 1)
	if !errors.Is(w.Err, errWrite) {
		t.Errorf("expected write error, got %v", w.Err)
	}
	if fail.calls != 1 {
		t.Errorf("%d writes after error", fail.calls-1)
	}
}

var errWrite = errors.New("write failed")

type failWriter struct {
	calls int
}

func (w *failWriter) Write([]byte) (int, error) {
	w.calls++
	return 0, errWrite
}

func TestWriteString(t *testing.T) {
	cases := []struct {
		in, out string
	}{
		{"", "()"},
		{"hello", "(hello)"},
		{"a(b)c", "(a(b)c)"},
		{"a)b( and more text", `(a\)b\( and more text)`},
		{`back\slash`, `(back\\slash)`},
		{"line\nbreak", `(line\nbreak)`},
		{"café au lait", `(caf\303\251 au lait)`},
		{"é", "<c3a9>"},
	}
	for _, c := range cases {
		buf := &bytes.Buffer{}
		writeString(buf, []byte(c.in))
		if buf.String() != c.out {
			t.Errorf("%q: got %s, want %s", c.in, buf.String(), c.out)
		}
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		in  float64
		out string
	}{
		{0, "0"},
		{-0.00001, "0"},
		{1, "1"},
		{-2.5, "-2.5"},
		{1.0 / 3, "0.3333"},
		{586.0000001, "586"},
	}
	for _, c := range cases {
		if got := format(c.in); got != c.out {
			t.Errorf("format(%g) = %q, want %q", c.in, got, c.out)
		}
	}
}

func TestScanner(t *testing.T) {
	in := "/F1 12 Tf % comment\r\n(a\\(b\\051\\\nc) <41 42 4> -1.5 .5 T* /A#42"
	s := newScanner(strings.NewReader(in))

	var got []any
	for {
		tok, err := s.next()
		if err == io.EOF {
			break
		} else if err != nil {
			t.Fatal(err)
		}
		got = append(got, tok)
	}

	want := []any{
		name("F1"), 12.0, operator("Tf"),
		str("a(b)c"), str("AB@"),
		-1.5, 0.5, operator("T*"),
		name("AB"),
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("wrong tokens (-want +got):\n%s", d)
	}
	if s.line != 2 {
		t.Errorf("line = %d", s.line)
	}
}

type op struct {
	Op             string
	Font           gridfill.FontType
	Size           float64
	X0, Y0, X1, Y1 float64
	Text           string
}

type recordingCanvas struct {
	ops []op
}

func (c *recordingCanvas) SetLineWidth(w float64) {
	c.ops = append(c.ops, op{Op: "w", Size: w})
}

func (c *recordingCanvas) StrokeLine(x0, y0, x1, y1 float64) {
	c.ops = append(c.ops, op{Op: "line", X0: x0, Y0: y0, X1: x1, Y1: y1})
}

func (c *recordingCanvas) ShowText(font gridfill.FontType, size, x, y float64, text string) {
	c.ops = append(c.ops, op{Op: "text", Font: font, Size: size, X0: x, Y0: y, Text: text})
}

func (c *recordingCanvas) drawing() []op {
	var res []op
	for _, o := range c.ops {
		if o.Op != "w" {
			res = append(res, o)
		}
	}
	return res
}

// TestReplay checks that replaying the content stream for a region gives
// the same drawing operations as rendering the region directly.
func TestReplay(t *testing.T) {
	draw := func(c table.Canvas) {
		t.Helper()
		m := recorder.Measurer{Advance: 0.5}
		r := table.New(c, m, nil)
		pos := &rect.Rect{LLx: 10, LLy: 10, URx: 200, URy: 600}
		g, err := gridfill.NewRegion(r, m, pos, 3, 2, &gridfill.RegionOptions{
			BorderWidth: 0.75,
			Proportions: []int{1, 2, 1},
		})
		if err != nil {
			t.Fatal(err)
		}
		for _, text := range []string{"one", "two (2)", "café", "four"} {
			err := g.AddText(text)
			if err != nil {
				t.Fatal(err)
			}
		}
		err = g.Flush()
		if err != nil {
			t.Fatal(err)
		}
	}

	direct := &recordingCanvas{}
	draw(direct)

	buf := &bytes.Buffer{}
	w := NewWriter(buf)
	draw(w)
	if w.Err != nil {
		t.Fatal(w.Err)
	}

	replayed := &recordingCanvas{}
	err := Replay(buf, replayed)
	if err != nil {
		t.Fatal(err)
	}

	approx := cmpopts.EquateApprox(0, 1e-4)
	if d := cmp.Diff(direct.drawing(), replayed.drawing(), approx); d != "" {
		t.Errorf("replay differs (-direct +replayed):\n%s", d)
	}
	if len(direct.drawing()) != 4*4+4 {
		t.Errorf("%d drawing operations", len(direct.drawing()))
	}
}

func TestReplayErrors(t *testing.T) {
	cases := []string{
		"1 2 l",
		"(abc",
		"<4x>",
		"BT /F9 12 Tf ET",
		"BT (x) Tj ET",
		"1 w 2",
		"Q",
		"/F1 w",
		"<< /a 1 >>",
		"1 2 Td",
	}
	for _, in := range cases {
		err := Replay(strings.NewReader(in), &recordingCanvas{})
		var synErr *SyntaxError
		if !errors.As(err, &synErr) {
			t.Errorf("%q: expected SyntaxError, got %v", in, err)
		}
	}

	err := Replay(strings.NewReader("0 0 m 1 1 l 2 0 l S 1 0 0 RG"), &recordingCanvas{})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
