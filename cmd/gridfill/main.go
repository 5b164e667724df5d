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

// Gridfill fills the grid regions described in a layout file and renders
// the result as a PNG image or as a PDF content stream.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"seehuhn.de/go/gridfill"
	"seehuhn.de/go/gridfill/table"
	"seehuhn.de/go/gridfill/textwidth"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// globals holds the settings shared by all subcommands.
type globals struct {
	verbose bool
	log     *slog.Logger
}

func newRootCmd() *cobra.Command {
	g := &globals{
		log: slog.New(slog.DiscardHandler),
	}

	rootCmd := &cobra.Command{
		Use:   "gridfill",
		Short: "Fill grid regions of a page with table cells",
		Long: `gridfill - place table cells into fixed grid regions of a page.

Each region has a fixed number of columns and rows.  Cells which do not fit
into a region are passed on to the next part of a split region, or dropped.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if g.verbose {
				level = slog.LevelDebug
			}
			g.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Log debug messages")

	rootCmd.AddCommand(
		newRenderCmd(g),
		newRasterizeCmd(g),
		newCostCmd(g),
		newSplitCmd(),
	)
	return rootCmd
}

// loadFonts returns the fonts for normal and DBCS text.  Empty file names
// select the Go Regular font, and the normal font is used for DBCS text
// unless a separate file is given.
func loadFonts(normalFile, dbcsFile string) (map[gridfill.FontType]*textwidth.Font, error) {
	load := func(fname string) (*textwidth.Font, error) {
		if fname == "" {
			return textwidth.GoRegular()
		}
		return textwidth.Load(fname)
	}

	normal, err := load(normalFile)
	if err != nil {
		return nil, err
	}
	dbcs := normal
	if dbcsFile != "" {
		dbcs, err = load(dbcsFile)
		if err != nil {
			return nil, err
		}
	}
	return map[gridfill.FontType]*textwidth.Font{
		gridfill.FontNormal: normal,
		gridfill.FontDBCS:   dbcs,
	}, nil
}

func newTableRenderer(c table.Canvas, fonts map[gridfill.FontType]*textwidth.Font) *table.Renderer {
	measurers := make(map[gridfill.FontType]gridfill.TextMeasurer, len(fonts))
	for k, F := range fonts {
		measurers[k] = F
	}
	return table.New(c, fonts[gridfill.FontNormal], &table.Options{Fonts: measurers})
}
