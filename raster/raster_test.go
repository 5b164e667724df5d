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

package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/gridfill"
	"seehuhn.de/go/gridfill/table"
	"seehuhn.de/go/gridfill/textwidth"
)

// countDark returns the number of dark pixels inside the rectangle r.
func countDark(img *image.RGBA, r image.Rectangle) int {
	n := 0
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.RGBAAt(x, y).G < 128 {
				n++
			}
		}
	}
	return n
}

func TestSize(t *testing.T) {
	c := New(rect.Rect{LLx: 10, LLy: 20, URx: 110, URy: 70}, &Options{DPI: 144})
	if c.Width != 200 || c.Height != 100 {
		t.Errorf("size is %dx%d", c.Width, c.Height)
	}
	if got := c.Image.RGBAAt(5, 5); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("background is %v", got)
	}

	x, y := c.deviceCoords(10, 20)
	if x != 0 || y != 100 {
		t.Errorf("lower left corner maps to (%g, %g)", x, y)
	}
	x, y = c.deviceCoords(110, 70)
	if x != 200 || y != 0 {
		t.Errorf("upper right corner maps to (%g, %g)", x, y)
	}
}

func TestStrokeLine(t *testing.T) {
	c := New(rect.Rect{URx: 100, URy: 50}, nil)
	c.SetLineWidth(2)
	c.StrokeLine(10, 25, 90, 25)

	for _, y := range []int{24, 25} {
		if got := c.Image.RGBAAt(50, y); got != (color.RGBA{0, 0, 0, 255}) {
			t.Errorf("pixel (50, %d) is %v", y, got)
		}
	}
	if n := countDark(c.Image, image.Rect(0, 0, 100, 23)); n != 0 {
		t.Errorf("%d dark pixels above the line", n)
	}
	if n := countDark(c.Image, image.Rect(0, 27, 100, 50)); n != 0 {
		t.Errorf("%d dark pixels below the line", n)
	}

	// degenerate lines are ignored
	c.StrokeLine(5, 5, 5, 5)
	if n := countDark(c.Image, image.Rect(0, 40, 20, 50)); n != 0 {
		t.Errorf("%d dark pixels for an empty line", n)
	}
}

func TestShowText(t *testing.T) {
	c := New(rect.Rect{URx: 100, URy: 50}, nil)
	c.ShowText(gridfill.FontNormal, 30, 10, 10, "H")
	if c.Err != nil {
		t.Fatal(c.Err)
	}

	F, err := textwidth.GoRegular()
	if err != nil {
		t.Fatal(err)
	}
	right := 10 + int(F.TextWidth("H", 30)) + 1

	// the glyph sits on the baseline at y=10, which is pixel row 40
	if n := countDark(c.Image, image.Rect(10, 10, right, 40)); n < 50 {
		t.Errorf("only %d dark pixels in the glyph box", n)
	}
	if n := countDark(c.Image, image.Rect(right, 0, 100, 50)); n != 0 {
		t.Errorf("%d dark pixels right of the glyph", n)
	}
	if n := countDark(c.Image, image.Rect(0, 41, 100, 50)); n != 0 {
		t.Errorf("%d dark pixels below the baseline", n)
	}
}

func TestInk(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	c := New(rect.Rect{URx: 20, URy: 20}, &Options{Ink: red})
	c.SetLineWidth(4)
	c.StrokeLine(0, 10, 20, 10)
	if got := c.Image.RGBAAt(10, 10); got != red {
		t.Errorf("pixel is %v", got)
	}
}

// TestRegion renders a region and checks the PNG output.
func TestRegion(t *testing.T) {
	F, err := textwidth.GoRegular()
	if err != nil {
		t.Fatal(err)
	}
	page := rect.Rect{URx: 200, URy: 100}
	c := New(page, &Options{
		Fonts: map[gridfill.FontType]*textwidth.Font{gridfill.FontNormal: F},
	})
	r := table.New(c, F, nil)
	pos := &rect.Rect{LLx: 10, LLy: 10, URx: 190, URy: 90}
	g, err := gridfill.NewRegion(r, F, pos, 2, 2, &gridfill.RegionOptions{BorderWidth: 1})
	if err != nil {
		t.Fatal(err)
	}
	for _, text := range []string{"Cell1", "Cell2", "Cell3", "Cell4"} {
		err = g.AddText(text)
		if err != nil {
			t.Fatal(err)
		}
	}
	if !g.IsFlushed() {
		t.Fatal("region not flushed")
	}

	// the region occupies y from 62 to 90, which is pixel rows 10 to 38
	if n := countDark(c.Image, image.Rect(0, 0, 200, 9)); n != 0 {
		t.Errorf("%d dark pixels above the table", n)
	}
	if n := countDark(c.Image, image.Rect(0, 40, 200, 100)); n != 0 {
		t.Errorf("%d dark pixels below the table", n)
	}
	if n := countDark(c.Image, image.Rect(10, 10, 190, 38)); n == 0 {
		t.Error("table not drawn")
	}

	buf := &bytes.Buffer{}
	err = c.WritePNG(buf)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(buf)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(c.Image.Bounds(), img.Bounds()); d != "" {
		t.Errorf("wrong bounds (-want +got):\n%s", d)
	}
}
