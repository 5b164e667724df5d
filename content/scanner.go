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
	"fmt"
	"io"
	"math"
	"strconv"
)

// The token types returned by the scanner.  Numbers are returned as
// float64 values.
type (
	operator string
	name     string
	str      []byte
)

// A scanner breaks a content stream into tokens.
// Arrays and dictionaries are not supported.
type scanner struct {
	line int // 0-based
	col  int // 0-based

	src       io.Reader
	buf       []byte
	pos, used int
	ahead     []byte
	crSeen    bool

	// err is the first error returned by src.Read().
	err error
}

func newScanner(r io.Reader) *scanner {
	return &scanner{
		src: r,
		buf: make([]byte, 512),
	}
}

// next returns the next token from the input.
// At the end of input, io.EOF is returned.
func (s *scanner) next() (any, error) {
	err := s.skipWhiteSpace()
	if err != nil {
		return nil, err
	}
	b, err := s.peek()
	if err != nil {
		return nil, err
	}
	switch b {
	case '(':
		return s.readString()
	case '<':
		if string(s.peekN(2)) == "<<" {
			return nil, s.errorf("dictionaries are not supported")
		}
		return s.readHexString()
	case '/':
		s.nextByte()
		return s.readName()
	case ')', '>', '[', ']', '{', '}':
		return nil, s.errorf("unexpected %q", b)
	}

	var tok []byte
	for {
		b, err := s.peek()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		if !isRegular(b) {
			break
		}
		s.nextByte()
		tok = append(tok, b)
	}

	if x, ok := parseNumber(tok); ok {
		return x, nil
	}
	return operator(tok), nil
}

func (s *scanner) readString() (str, error) {
	err := s.skipRequiredByte('(')
	if err != nil {
		return nil, err
	}
	var res []byte
	bracketLevel := 1
	ignoreLF := false
	for {
		b, err := s.nextByte()
		if err == io.EOF {
			return nil, s.errorf("unterminated string")
		} else if err != nil {
			return nil, err
		}
		if ignoreLF && b == 10 {
			continue
		}
		ignoreLF = false
		switch b {
		case '(':
			bracketLevel++
		case ')':
			bracketLevel--
			if bracketLevel == 0 {
				return str(res), nil
			}
		case '\\':
			b, err = s.nextByte()
			if err != nil {
				return nil, err
			}
			switch b {
			case 'n':
				b = '\n'
			case 'r':
				b = '\r'
			case 't':
				b = '\t'
			case 'b':
				b = '\b'
			case 'f':
				b = '\f'
			case 10:
				continue
			case 13:
				ignoreLF = true
				continue
			case '0', '1', '2', '3', '4', '5', '6', '7':
				oct := b - '0'
				for range 2 {
					c, err := s.peek()
					if err != nil || c < '0' || c > '7' {
						break
					}
					s.nextByte()
					oct = oct*8 + (c - '0')
				}
				b = oct
			}
		}
		res = append(res, b)
	}
}

func (s *scanner) readHexString() (str, error) {
	err := s.skipRequiredByte('<')
	if err != nil {
		return nil, err
	}

	var res []byte
	first := true
	var hi byte
	for {
		b, err := s.nextByte()
		if err == io.EOF {
			return nil, s.errorf("unterminated hex string")
		} else if err != nil {
			return nil, err
		}
		if b == '>' {
			break
		} else if b <= 32 {
			continue
		}
		lo, ok := hexDigit(b)
		if !ok {
			return nil, s.errorf("invalid hex digit %q", b)
		}
		if first {
			hi = lo << 4
		} else {
			res = append(res, hi|lo)
		}
		first = !first
	}
	if !first {
		res = append(res, hi)
	}
	return str(res), nil
}

// readName reads a name (without the leading slash).
func (s *scanner) readName() (name, error) {
	var res []byte
	for {
		b, err := s.peek()
		if err == io.EOF {
			break
		} else if err != nil {
			return "", err
		}
		if !isRegular(b) {
			break
		}
		s.nextByte()
		if b != '#' {
			res = append(res, b)
			continue
		}

		var code byte
		for range 2 {
			c, err := s.nextByte()
			if err != nil {
				return "", err
			}
			d, ok := hexDigit(c)
			if !ok {
				return "", s.errorf("invalid hex digit %q", c)
			}
			code = code<<4 | d
		}
		res = append(res, code)
	}
	return name(res), nil
}

// skipWhiteSpace skips all input (including comments) until a non-whitespace
// character is found.
func (s *scanner) skipWhiteSpace() error {
	for {
		b, err := s.peek()
		if err != nil {
			return err
		}
		switch {
		case b <= 32:
			s.nextByte()
		case b == '%':
			for b != 10 && b != 13 {
				s.nextByte()
				b, err = s.peek()
				if err != nil {
					return err
				}
			}
		default:
			return nil
		}
	}
}

func (s *scanner) skipRequiredByte(expected byte) error {
	seen, err := s.nextByte()
	if err != nil {
		return err
	}
	if seen != expected {
		return s.errorf("expected %q, got %q", expected, seen)
	}
	return nil
}

func (s *scanner) peek() (byte, error) {
	if len(s.ahead) == 0 {
		b, err := s.readByte()
		if err != nil {
			return 0, err
		}
		s.ahead = append(s.ahead, b)
	}
	return s.ahead[0], nil
}

func (s *scanner) peekN(n int) []byte {
	for len(s.ahead) < n {
		b, err := s.readByte()
		if err != nil {
			return s.ahead
		}
		s.ahead = append(s.ahead, b)
	}
	return s.ahead[:n]
}

// nextByte returns the next byte from the input stream and updates the
// line and column numbers.
func (s *scanner) nextByte() (byte, error) {
	var b byte
	if len(s.ahead) > 0 {
		b = s.ahead[0]
		s.ahead = s.ahead[1:]
	} else {
		var err error
		b, err = s.readByte()
		if err != nil {
			return 0, err
		}
	}

	if s.crSeen && b == 10 {
		// LF after CR
	} else if b == 10 || b == 13 {
		s.line++
		s.col = 0
	} else {
		s.col++
	}
	s.crSeen = b == 13

	return b, nil
}

// readByte reads the next byte from the underlying reader, bypassing the
// read-ahead buffer.
func (s *scanner) readByte() (byte, error) {
	for s.pos >= s.used {
		err := s.refill()
		if err != nil {
			return 0, err
		}
	}
	b := s.buf[s.pos]
	s.pos++
	return b, nil
}

// refill reads more data from the underlying reader into the buffer.
func (s *scanner) refill() error {
	if s.err != nil {
		return s.err
	}
	s.used = copy(s.buf, s.buf[s.pos:s.used])
	s.pos = 0

	n, err := s.src.Read(s.buf[s.used:])
	s.used += n
	if err != nil {
		s.err = err
		if n > 0 {
			err = nil
		}
	}
	return err
}

func (s *scanner) errorf(format string, args ...any) error {
	return &SyntaxError{
		Line: s.line + 1,
		Col:  s.col + 1,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// SyntaxError is returned by [Replay] if the content stream cannot be
// parsed.
type SyntaxError struct {
	Line, Col int
	Msg       string
}

func (err *SyntaxError) Error() string {
	return fmt.Sprintf("content: %d:%d: %s", err.Line, err.Col, err.Msg)
}

func parseNumber(tok []byte) (float64, bool) {
	if len(tok) == 0 {
		return 0, false
	}
	for i, c := range tok {
		if i == 0 && (c == '+' || c == '-') {
			continue
		}
		if c != '.' && (c < '0' || c > '9') {
			return 0, false
		}
	}
	x, err := strconv.ParseFloat(string(tok), 64)
	if err != nil || math.IsInf(x, 0) || math.IsNaN(x) {
		return 0, false
	}
	return x, true
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	}
	return 0, false
}

// isRegular reports whether c is neither white space nor a delimiter.
func isRegular(c byte) bool {
	switch c {
	case 0, 9, 10, 12, 13, 32:
		return false
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return false
	}
	return true
}
