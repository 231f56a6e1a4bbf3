package count

import (
	"context"
	"io"
	"strconv"

	"github.com/urfave/cli"

	"github.com/fossas/sitecheck/cmd/sitecheck/cmdutil"
	"github.com/fossas/sitecheck/cmd/sitecheck/display"
	"github.com/fossas/sitecheck/cmd/sitecheck/flags"
	"github.com/fossas/sitecheck/cmd/sitecheck/setup"
	"github.com/fossas/sitecheck/site"
)

var Cmd = cli.Command{
	Name:   "count",
	Usage:  "Count interpreters, site-package directories and installed packages",
	Action: Run,
	Flags:  []cli.Flag{flags.OutputF, flags.DelimiterF, flags.JSONF},
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

	return cmdutil.WriteOutput(ctx, func(w io.Writer) error {
		return Write(w, scan.Count(), format)
	})
}

// Write renders a count.
func Write(w io.Writer, count site.Count, format cmdutil.Format) error {
	if format.JSON {
		return display.JSON(w, count)
	}
	table := display.Table{
		Headers: []string{"Key", "Value"},
		Rows: [][]string{
			{"exes", strconv.Itoa(count.Exes)},
			{"sites", strconv.Itoa(count.Sites)},
			{"packages", strconv.Itoa(count.Packages)},
		},
	}
	if format.Delimited {
		return display.WriteDelimited(w, table, format.Delimiter)
	}
	return display.WriteTable(w, table)
}
