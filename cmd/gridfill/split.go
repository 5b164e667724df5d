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

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/gridfill"
)

func newSplitCmd() *cobra.Command {
	var (
		left, width float64
		parts       int
		gap         float64
	)

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Show the horizontal extent of the parts of a split region",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pos := &rect.Rect{LLx: left, URx: left + width}
			rr, err := gridfill.SplitRect(pos, parts, gap)
			if err != nil {
				return err
			}
			for i, r := range rr {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%g\t%g\n", i+1, r.LLx, r.URx)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&left, "left", 0, "Left edge of the region")
	cmd.Flags().Float64Var(&width, "width", 210, "Width of the region")
	cmd.Flags().IntVarP(&parts, "parts", "n", 2, "Number of parts")
	cmd.Flags().Float64Var(&gap, "gap", 10, "Space between parts")

	return cmd
}
