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
	"os"

	"github.com/spf13/cobra"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/gridfill/content"
	"seehuhn.de/go/gridfill/layout"
	"seehuhn.de/go/gridfill/raster"
)

func newRasterizeCmd(g *globals) *cobra.Command {
	var (
		width, height float64
		dpi           float64
		fontFile      string
		dbcsFile      string
	)

	cmd := &cobra.Command{
		Use:   "rasterize content.txt output.png",
		Short: "Render a content stream written by \"render\" to PNG",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputFile, outputFile := args[0], args[1]

			fonts, err := loadFonts(fontFile, dbcsFile)
			if err != nil {
				return err
			}

			in, err := os.Open(inputFile)
			if err != nil {
				return err
			}
			defer in.Close()

			page := rect.Rect{URx: width, URy: height}
			c := raster.New(page, &raster.Options{DPI: dpi, Fonts: fonts})
			err = content.Replay(in, c)
			if err != nil {
				return fmt.Errorf("%s: %w", inputFile, err)
			}
			if c.Err != nil {
				return c.Err
			}

			out, err := os.Create(outputFile)
			if err != nil {
				return err
			}
			err = c.WritePNG(out)
			err2 := out.Close()
			if err == nil {
				err = err2
			}
			if err != nil {
				return err
			}

			g.log.Debug("image written", "file", outputFile, "width", c.Width, "height", c.Height)
			fmt.Fprintf(cmd.OutOrStdout(), "rendered %s to %s\n", inputFile, outputFile)
			return nil
		},
	}

	cmd.Flags().Float64Var(&width, "width", layout.A4.Width, "Page width in PDF units")
	cmd.Flags().Float64Var(&height, "height", layout.A4.Height, "Page height in PDF units")
	cmd.Flags().Float64Var(&dpi, "dpi", 72, "Resolution of the image")
	cmd.Flags().StringVar(&fontFile, "font", "", "TrueType or OpenType font for normal text")
	cmd.Flags().StringVar(&dbcsFile, "dbcs-font", "", "TrueType or OpenType font for DBCS text")

	return cmd
}
