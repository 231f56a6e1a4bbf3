package scan

import (
	"context"
	"io"

	"github.com/urfave/cli"

	"github.com/fossas/sitecheck/cmd/sitecheck/cmdutil"
	"github.com/fossas/sitecheck/cmd/sitecheck/flags"
	"github.com/fossas/sitecheck/cmd/sitecheck/setup"
	"github.com/fossas/sitecheck/site"
)

var Cmd = cli.Command{
	Name:   "scan",
	Usage:  "List every installed package and the site-package directories it was found in",
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
		return Write(w, scan, format)
	})
}

// Write renders every package of a scan.
func Write(w io.Writer, scan *site.Scan, format cmdutil.Format) error {
	return cmdutil.WritePackages(w, scan.Inventory, scan.Inventory.Packages(), format)
}
