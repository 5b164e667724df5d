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
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"seehuhn.de/go/gridfill"
	"seehuhn.de/go/gridfill/content"
	"seehuhn.de/go/gridfill/layout"
	"seehuhn.de/go/gridfill/raster"
)

func newRenderCmd(g *globals) *cobra.Command {
	var (
		output   string
		format   string
		dpi      float64
		fontFile string
		dbcsFile string
	)

	cmd := &cobra.Command{
		Use:   "render layout.toml",
		Short: "Fill the regions of a layout file",
		Long: `Fill the regions of a layout file and write the result.

The output format is either "png" or "content" (a PDF content stream).  If
no format is given, it is chosen by the file name extension of the output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := layout.Load(args[0])
			if err != nil {
				return err
			}
			fonts, err := loadFonts(fontFile, dbcsFile)
			if err != nil {
				return err
			}

			if format == "" {
				format = formatFromName(output)
			}
			if format != "png" && format != "content" {
				return fmt.Errorf("unknown output format %q", format)
			}

			out, err := os.Create(output)
			if err != nil {
				return err
			}

			var report *layout.Report
			switch format {
			case "png":
				c := raster.New(doc.Page.Rect(), &raster.Options{DPI: dpi, Fonts: fonts})
				report, err = doc.Run(newTableRenderer(c, fonts), fonts[gridfill.FontNormal], g.log)
				if err == nil {
					err = c.Err
				}
				if err == nil {
					err = c.WritePNG(out)
				}
			case "content":
				w := content.NewWriter(out)
				w.PushGraphicsState()
				report, err = doc.Run(newTableRenderer(w, fonts), fonts[gridfill.FontNormal], g.log)
				w.PopGraphicsState()
				if err == nil {
					err = w.Err
				}
			}
			err2 := out.Close()
			if err == nil {
				err = err2
			}
			if err != nil {
				os.Remove(output)
				return err
			}

			printReport(cmd.OutOrStdout(), report)
			if n := report.Rejected(); n > 0 {
				g.log.Warn("some cells did not fit", "count", n)
			}
			g.log.Debug("output written", "file", output, "format", format)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file")
	cmd.Flags().StringVarP(&format, "format", "f", "", `Output format, "png" or "content"`)
	cmd.Flags().Float64Var(&dpi, "dpi", 72, "Resolution for PNG output")
	cmd.Flags().StringVar(&fontFile, "font", "", "TrueType or OpenType font for normal text")
	cmd.Flags().StringVar(&dbcsFile, "dbcs-font", "", "TrueType or OpenType font for DBCS text")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func formatFromName(fname string) string {
	if strings.EqualFold(filepath.Ext(fname), ".png") {
		return "png"
	}
	return "content"
}

func printReport(w io.Writer, report *layout.Report) {
	for _, reg := range report.Regions {
		fmt.Fprintf(w, "%s: %d placed, %d rejected, bottom %g\n",
			reg.Name, reg.Placed, reg.Rejected, reg.Bottom)
	}
}
