// Package unpack lists the files that installed packages put into their
// site-package directories.
package unpack

import (
	"context"
	"io"
	"strconv"

	"github.com/urfave/cli"

	"github.com/fossas/sitecheck/cmd/sitecheck/cmd/search"
	"github.com/fossas/sitecheck/cmd/sitecheck/cmdutil"
	"github.com/fossas/sitecheck/cmd/sitecheck/display"
	"github.com/fossas/sitecheck/cmd/sitecheck/flags"
	"github.com/fossas/sitecheck/cmd/sitecheck/setup"
	"github.com/fossas/sitecheck/site"
)

var Count = "count"

var Cmd = cli.Command{
	Name:   "unpack",
	Usage:  "List the installed artifacts of packages whose name-version matches a glob",
	Action: Run,
	Flags: []cli.Flag{
		cli.StringFlag{Name: "p, " + search.Pattern, Value: "*", Usage: "glob matched against `name-version`"},
		cli.BoolFlag{Name: search.Case, Usage: "match case-sensitively"},
		cli.BoolFlag{Name: Count, Usage: "show artifact counts per package"},
		flags.OutputF,
		flags.DelimiterF,
		flags.JSONF,
	},
}

var _ cli.ActionFunc = Run

func Run(ctx *cli.Context) error {
	err := setup.SetContext(ctx)
	if err != nil {
		return err
	}
	format, err := cmdutil.FormatFromContext(ctx)
	if err != nil {
		return err
	}

	scan, err := cmdutil.Scan(context.Background())
	if err != nil {
		return err
	}
	matched, err := search.Do(scan.Inventory, ctx.String(search.Pattern), ctx.Bool(search.Case))
	if err != nil {
		return err
	}

	display.InProgress("Reading package records...")
	unpacked := scan.Unpack(matched)
	display.ClearProgress()

	return cmdutil.WriteOutput(ctx, func(w io.Writer) error {
		return Write(w, unpacked, ctx.Bool(Count), format)
	})
}

// A Record is the JSON form of one package's artifacts in one site.
type Record struct {
	Package string          `json:"package"`
	Site    string          `json:"site"`
	Files   []site.Artifact `json:"files"`
	Dirs    []string        `json:"dirs"`
}

// A CountRecord is the JSON form of one package's artifact counts in one site.
type CountRecord struct {
	Package string `json:"package"`
	Site    string `json:"site"`
	Files   int    `json:"files"`
	Dirs    int    `json:"dirs"`
}

// Write renders unpacked artifacts, or only their counts.
func Write(w io.Writer, unpacked []site.Artifacts, count bool, format cmdutil.Format) error {
	if format.JSON {
		return display.JSON(w, records(unpacked, count))
	}
	table := Table(unpacked, count, format.Delimited)
	if format.Delimited {
		return display.WriteDelimited(w, table, format.Delimiter)
	}
	return display.WriteTable(w, table)
}

// Table lays out artifacts with one row per file, or counts with one row per
// package and site. When repeat is false, the package and site are only named
// on their first row.
func Table(unpacked []site.Artifacts, count bool, repeat bool) display.Table {
	if count {
		table := display.Table{Headers: []string{"Package", "Site", "Files", "Dirs"}}
		for _, a := range unpacked {
			table.Rows = append(table.Rows, []string{
				a.Package.String(),
				a.Site,
				strconv.Itoa(len(a.Files)),
				strconv.Itoa(len(a.Dirs)),
			})
		}
		return table
	}

	table := display.Table{Headers: []string{"Package", "Site", "Exists", "Artifact"}}
	for _, a := range unpacked {
		for i, f := range a.Files {
			name, s := a.Package.String(), a.Site
			if i > 0 && !repeat {
				name, s = "", ""
			}
			table.Rows = append(table.Rows, []string{name, s, strconv.FormatBool(f.Exists), f.Path})
		}
	}
	return table
}

func records(unpacked []site.Artifacts, count bool) interface{} {
	if count {
		counts := make([]CountRecord, 0, len(unpacked))
		for _, a := range unpacked {
			counts = append(counts, CountRecord{Package: a.Package.String(), Site: a.Site, Files: len(a.Files), Dirs: len(a.Dirs)})
		}
		return counts
	}
	full := make([]Record, 0, len(unpacked))
	for _, a := range unpacked {
		full = append(full, Record{Package: a.Package.String(), Site: a.Site, Files: a.Files, Dirs: a.Dirs})
	}
	return full
}
