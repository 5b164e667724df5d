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

	"seehuhn.de/go/gridfill"
)

func newCostCmd(g *globals) *cobra.Command {
	var (
		columns  int
		maxWidth float64
		size     float64
		fontFile string
	)

	cmd := &cobra.Command{
		Use:   "cost text",
		Short: "Show the number of grid units used by a wrap cell",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fonts, err := loadFonts(fontFile, "")
			if err != nil {
				return err
			}
			F := fonts[gridfill.FontNormal]

			c := gridfill.NewCell(args[0])
			c.FontSize = size
			c.MaxWidth = maxWidth
			cost, err := gridfill.WrapCost(F, c, columns)
			if err != nil {
				return err
			}
			g.log.Debug("text measured", "width", F.TextWidth(c.Content, size), "font", F.PostScriptName())

			fmt.Fprintln(cmd.OutOrStdout(), cost)
			return nil
		},
	}

	cmd.Flags().IntVarP(&columns, "columns", "c", 2, "Number of grid columns")
	cmd.Flags().Float64VarP(&maxWidth, "max-width", "w", 100, "Maximum width of a line")
	cmd.Flags().Float64VarP(&size, "size", "s", gridfill.DefaultFontSize, "Font size")
	cmd.Flags().StringVar(&fontFile, "font", "", "TrueType or OpenType font")

	return cmd
}
