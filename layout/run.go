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

package layout

import (
	"errors"
	"fmt"
	"log/slog"

	"seehuhn.de/go/gridfill"
)

// Report summarizes the result of [Document.Run].
type Report struct {
	Regions []RegionReport
}

// RegionReport describes how the cells of one region were placed.
type RegionReport struct {
	Name string

	// Placed is the number of cells which were added to the region.
	Placed int

	// Rejected is the number of cells which did not fit.
	Rejected int

	// Bottom is the lowest y coordinate used by the region.
	Bottom float64
}

// Rejected returns the total number of cells which did not fit into their
// regions.
func (r *Report) Rejected() int {
	n := 0
	for _, reg := range r.Regions {
		n += reg.Rejected
	}
	return n
}

// Run fills all regions of the document, in order, and flushes them.
//
// Cells which do not fit into their region are counted in the report and
// otherwise ignored.  All other errors abort the run.  If log is nil,
// nothing is logged.
func (doc *Document) Run(r gridfill.Renderer, m gridfill.TextMeasurer, log *slog.Logger) (*Report, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	report := &Report{}
	for _, reg := range doc.Regions {
		res, err := reg.run(r, m, log.With("region", reg.Name))
		if err != nil {
			return nil, fmt.Errorf("layout: region %q: %w", reg.Name, err)
		}
		report.Regions = append(report.Regions, *res)
	}
	return report, nil
}

func (reg *Region) run(r gridfill.Renderer, m gridfill.TextMeasurer, log *slog.Logger) (*RegionReport, error) {
	pos := reg.Rect()
	opt := &gridfill.RegionOptions{
		FontSize:            reg.FontSize,
		BorderWidth:         reg.BorderWidth,
		RowHeight:           reg.RowHeight,
		Proportions:         reg.Proportions,
		DisableAutoFlush:    reg.AutoFlush != nil && !*reg.AutoFlush,
		LenientOvercapacity: reg.Lenient,
		Logger:              log,
	}
	g, err := gridfill.NewRegion(r, m, pos, reg.Columns, reg.Rows, opt)
	if err != nil {
		return nil, err
	}

	var med *gridfill.Mediator
	if reg.Split > 1 {
		med, err = gridfill.SplitMediator(g, reg.Split, reg.Gap)
	} else {
		med, err = gridfill.NewMediator(g)
	}
	if err != nil {
		return nil, err
	}

	res := &RegionReport{Name: reg.Name}
	for i, c := range reg.Cells {
		var err error
		if c.Empty {
			err = med.AddEmptyCell()
		} else {
			cell, err2 := c.cell(g.FontSize(), reg.BorderWidth)
			if err2 != nil {
				return nil, err2
			}
			if c.WrapWidth > 0 {
				err = med.AddWrapCell(cell)
			} else {
				err = med.AddCell(cell)
			}
		}

		switch {
		case errors.Is(err, gridfill.ErrRegionFull):
			log.Info("cell rejected", "cell", i+1, "text", c.Text)
			res.Rejected++
		case err != nil:
			return nil, fmt.Errorf("cell %d: %w", i+1, err)
		default:
			res.Placed++
		}
	}

	_, err = med.Flush()
	if err != nil {
		return nil, err
	}
	res.Bottom = pos.URy

	log.Debug("region done", "placed", res.Placed, "rejected", res.Rejected, "bottom", res.Bottom)
	return res, nil
}
