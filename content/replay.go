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
	"errors"
	"io"

	"seehuhn.de/go/gridfill"
	"seehuhn.de/go/gridfill/table"
)

// Replay reads a content stream and sends the drawing operations to c.
//
// Only the operators written by [Writer] are interpreted: "w", "m", "l",
// "S", "BT", "Tf", "Td", "Tj", "ET", "q" and "Q".  Other operators are
// ignored.  Fonts are identified by the resource names returned by
// [FontResource].
func Replay(r io.Reader, c table.Canvas) error {
	s := newScanner(r)
	p := &player{canvas: c}

	var args []any
	for {
		tok, err := s.next()
		if err == io.EOF {
			break
		} else if err != nil {
			return err
		}

		op, isOp := tok.(operator)
		if !isOp {
			args = append(args, tok)
			continue
		}
		err = p.do(string(op), args)
		if err != nil {
			return s.errorf("%s: %v", op, err)
		}
		args = args[:0]
	}
	if len(args) > 0 {
		return s.errorf("unexpected end of content stream")
	}
	return nil
}

type point struct {
	x, y float64
}

type player struct {
	canvas table.Canvas

	lineWidth float64
	stack     []float64

	path []point

	inText   bool
	font     gridfill.FontType
	fontSize float64
	lineX    float64
	lineY    float64
}

var errOperands = errors.New("wrong operands")

func (p *player) do(op string, args []any) error {
	switch op {
	case "q":
		p.stack = append(p.stack, p.lineWidth)
	case "Q":
		if len(p.stack) == 0 {
			return errors.New("no matching q")
		}
		n := len(p.stack) - 1
		p.lineWidth = p.stack[n]
		p.stack = p.stack[:n]
		p.canvas.SetLineWidth(p.lineWidth)
	case "w":
		x, err := numbers(args, 1)
		if err != nil {
			return err
		}
		p.lineWidth = x[0]
		p.canvas.SetLineWidth(x[0])
	case "m":
		x, err := numbers(args, 2)
		if err != nil {
			return err
		}
		p.path = append(p.path[:0], point{x[0], x[1]})
	case "l":
		x, err := numbers(args, 2)
		if err != nil {
			return err
		}
		if len(p.path) == 0 {
			return errors.New("no current point")
		}
		p.path = append(p.path, point{x[0], x[1]})
	case "S":
		for i := 1; i < len(p.path); i++ {
			a, b := p.path[i-1], p.path[i]
			p.canvas.StrokeLine(a.x, a.y, b.x, b.y)
		}
		p.path = p.path[:0]
	case "BT":
		if p.inText {
			return errors.New("nested text object")
		}
		p.inText = true
		p.lineX, p.lineY = 0, 0
	case "ET":
		if !p.inText {
			return errors.New("no text object")
		}
		p.inText = false
	case "Tf":
		if len(args) != 2 {
			return errOperands
		}
		fontName, ok := args[0].(name)
		size, ok2 := args[1].(float64)
		if !ok || !ok2 {
			return errOperands
		}
		font, ok := fontType(string(fontName))
		if !ok {
			return errors.New("unknown font " + string(fontName))
		}
		p.font = font
		p.fontSize = size
	case "Td":
		x, err := numbers(args, 2)
		if err != nil {
			return err
		}
		if !p.inText {
			return errors.New("no text object")
		}
		p.lineX += x[0]
		p.lineY += x[1]
	case "Tj":
		if len(args) != 1 {
			return errOperands
		}
		s, ok := args[0].(str)
		if !ok {
			return errOperands
		}
		if !p.inText || p.fontSize == 0 {
			return errors.New("no font set")
		}
		p.canvas.ShowText(p.font, p.fontSize, p.lineX, p.lineY, string(s))
	}
	return nil
}

func numbers(args []any, n int) ([]float64, error) {
	if len(args) != n {
		return nil, errOperands
	}
	res := make([]float64, n)
	for i, a := range args {
		x, ok := a.(float64)
		if !ok {
			return nil, errOperands
		}
		res[i] = x
	}
	return res, nil
}

func fontType(resource string) (gridfill.FontType, bool) {
	for _, f := range []gridfill.FontType{gridfill.FontNormal, gridfill.FontDBCS} {
		if FontResource(f) == resource {
			return f, true
		}
	}
	return 0, false
}
