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

// Package content writes and reads PDF content streams for grid tables.
//
// The [Writer] type implements the table.Canvas interface and emits the
// PDF operators for the drawing calls.  [Replay] parses such a content
// stream and sends the drawing calls to a different canvas.
//
// Text is written using the font resources named by [FontResource].  The
// bytes of text strings are the UTF-8 encoding of the text.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"seehuhn.de/go/gridfill"
	"seehuhn.de/go/gridfill/table"
)

// Writer writes a PDF content stream.
type Writer struct {
	Content io.Writer

	// Err is the first error which occurred while writing.  Once an error
	// has occurred, all further operations are ignored.
	Err error

	lineWidth    float64
	lineWidthSet bool
	stack        []graphicsState
}

type graphicsState struct {
	lineWidth    float64
	lineWidthSet bool
}

var _ table.Canvas = (*Writer)(nil)

// NewWriter allocates a new Writer which writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{Content: w}
}

// FontResource returns the name of the font resource used for the given
// font type.
func FontResource(font gridfill.FontType) string {
	return "F" + strconv.Itoa(int(font)+1)
}

// PushGraphicsState saves the current graphics state.
//
// This implements the PDF graphics operator "q".
func (w *Writer) PushGraphicsState() {
	if w.Err != nil {
		return
	}
	w.stack = append(w.stack, graphicsState{
		lineWidth:    w.lineWidth,
		lineWidthSet: w.lineWidthSet,
	})
	_, w.Err = fmt.Fprintln(w.Content, "q")
}

// PopGraphicsState restores the previous graphics state.
//
// This implements the PDF graphics operator "Q".
func (w *Writer) PopGraphicsState() {
	if w.Err != nil {
		return
	}
	if len(w.stack) == 0 {
		w.Err = errors.New("PopGraphicsState: no matching PushGraphicsState")
		return
	}
	n := len(w.stack) - 1
	saved := w.stack[n]
	w.stack = w.stack[:n]
	w.lineWidth = saved.lineWidth
	w.lineWidthSet = saved.lineWidthSet

	_, w.Err = fmt.Fprintln(w.Content, "Q")
}

// SetLineWidth sets the line width.
//
// This implements the PDF graphics operator "w".
func (w *Writer) SetLineWidth(width float64) {
	if w.Err != nil {
		return
	}
	if width < 0 {
		w.Err = fmt.Errorf("SetLineWidth: negative width %f", width)
		return
	}
	if w.lineWidthSet && nearlyEqual(width, w.lineWidth) {
		return
	}
	w.lineWidth = width
	w.lineWidthSet = true

	_, w.Err = fmt.Fprintln(w.Content, format(width), "w")
}

// StrokeLine draws a straight line from (x0, y0) to (x1, y1).
//
// This uses the PDF graphics operators "m", "l" and "S".
func (w *Writer) StrokeLine(x0, y0, x1, y1 float64) {
	if w.Err != nil {
		return
	}
	_, w.Err = fmt.Fprintln(w.Content, format(x0), format(y0), "m",
		format(x1), format(y1), "l", "S")
}

// ShowText draws a line of text inside a text object.
//
// This uses the PDF text operators "BT", "Tf", "Td", "Tj" and "ET".
func (w *Writer) ShowText(font gridfill.FontType, size, x, y float64, text string) {
	if w.Err != nil {
		return
	}
	buf := &bytes.Buffer{}
	buf.WriteString("BT\n")
	fmt.Fprintln(buf, "/"+FontResource(font), format(size), "Tf")
	fmt.Fprintln(buf, format(x), format(y), "Td")
	writeString(buf, []byte(text))
	buf.WriteString(" Tj\nET\n")
	_, w.Err = w.Content.Write(buf.Bytes())
}

// writeString writes a PDF string.  Literal strings are used unless most
// bytes would need escaping, in which case a hex string is written.
func writeString(buf *bytes.Buffer, l []byte) {
	level := 0
	for _, c := range l {
		if c == '(' {
			level++
		} else if c == ')' {
			level--
			if level < 0 {
				break
			}
		}
	}
	balanced := level == 0

	var funny []int
	for i, c := range l {
		if c < 32 || c >= 127 || c == '\\' ||
			!balanced && (c == '(' || c == ')') {
			funny = append(funny, i)
		}
	}

	if 3*len(funny) > len(l) {
		fmt.Fprintf(buf, "<%x>", l)
		return
	}

	buf.WriteByte('(')
	pos := 0
	for _, i := range funny {
		buf.Write(l[pos:i])
		switch c := l[i]; c {
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		case '(', ')', '\\':
			buf.WriteByte('\\')
			buf.WriteByte(c)
		default:
			fmt.Fprintf(buf, `\%03o`, c)
		}
		pos = i + 1
	}
	buf.Write(l[pos:])
	buf.WriteByte(')')
}

// format writes x with up to four decimal places, omitting trailing zeros.
func format(x float64) string {
	x = math.Round(x*1e4) / 1e4
	if x == 0 {
		return "0"
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}

func nearlyEqual(a, b float64) bool {
	const ε = 1e-6
	return math.Abs(a-b) < ε
}
