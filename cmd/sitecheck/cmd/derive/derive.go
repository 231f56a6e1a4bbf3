package derive

import (
	"context"
	"io"

	"github.com/apex/log"
	"github.com/urfave/cli"

	"github.com/fossas/sitecheck/cmd/sitecheck/cmdutil"
	"github.com/fossas/sitecheck/cmd/sitecheck/flags"
	"github.com/fossas/sitecheck/cmd/sitecheck/setup"
	"github.com/fossas/sitecheck/errors"
	"github.com/fossas/sitecheck/manifest"
	"github.com/fossas/sitecheck/pkg"
)

var Anchor = "anchor"

var Cmd = cli.Command{
	Name:   "derive",
	Usage:  "Write a bound requirements file from the installed packages",
	Action: Run,
	Flags: []cli.Flag{
		cli.StringFlag{Name: "a, " + Anchor, Value: "lower", Usage: "bound to place on each package: lower, upper or both"},
		flags.OutputF,
	},
}

var _ cli.ActionFunc = Run

func Run(ctx *cli.Context) error {
	err := setup.SetContext(ctx)
	if err != nil {
		return err
	}
	anchor, err := manifest.ParseAnchor(ctx.String(Anchor))
	if err != nil {
		return errors.UserError(err, "Pass --anchor lower, --anchor upper or --anchor both.")
	}

	scan, err := cmdutil.Scan(context.Background())
	if err != nil {
		return err
	}

	return cmdutil.WriteOutput(ctx, func(w io.Writer) error {
		return Write(w, scan.Inventory, anchor)
	})
}

// Write derives a bound requirements file from inv and writes it to w.
func Write(w io.Writer, inv *pkg.Inventory, anchor manifest.Anchor) error {
	m, err := manifest.Derive(inv, anchor)
	if err != nil {
		return errors.UnknownError(err, "")
	}
	log.WithFields(log.Fields{
		"anchor":   anchor.String(),
		"packages": m.Len(),
	}).Debug("derived bound requirements")
	return m.WriteRequirements(w)
}
