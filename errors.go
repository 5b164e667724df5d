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
	"strconv"
)

var (
	// ErrRegionFull is returned when a cell does not fit into the remaining
	// capacity of a region.  The caller may retry on a different region.
	ErrRegionFull = errors.New("region full")

	// ErrRegionFlushed is returned when a cell is added to a region which
	// has already been rendered.
	ErrRegionFlushed = errors.New("region already flushed")

	// ErrAlreadyCreated is returned when the table layout of a region is
	// changed after the backing table has been created.
	ErrAlreadyCreated = errors.New("region table already created")
)

// ConfigError indicates a programming error in the way a region, a mediator,
// or a cell was set up.  Such errors are never retried.
type ConfigError struct {
	Op  string
	Msg string
}

func (err *ConfigError) Error() string {
	if err.Op == "" {
		return "gridfill: " + err.Msg
	}
	return "gridfill: " + err.Op + ": " + err.Msg
}

// OvercapacityError indicates that more cell units were placed into a region
// than it can hold.  This can only happen if automatic flushing is disabled.
type OvercapacityError struct {
	Filled   int
	Capacity int
}

func (err *OvercapacityError) Error() string {
	return "gridfill: " + strconv.Itoa(err.Filled) + " cell units placed into region of capacity " +
		strconv.Itoa(err.Capacity)
}

func newConfigError(op, msg string) error {
	return &ConfigError{Op: op, Msg: msg}
}
