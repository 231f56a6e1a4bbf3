package search

import (
	"context"
	"io"

	"github.com/apex/log"
	pkgerrors "github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/fossas/sitecheck/cmd/sitecheck/cmdutil"
	"github.com/fossas/sitecheck/cmd/sitecheck/flags"
	"github.com/fossas/sitecheck/cmd/sitecheck/setup"
	"github.com/fossas/sitecheck/errors"
	"github.com/fossas/sitecheck/pkg"
)

var (
	Pattern = "pattern"
	Case    = "case"
)

var Cmd = cli.Command{
	Name:   "search",
	Usage:  "List installed packages whose name-version matches a glob",
	Action: Run,
	Flags: []cli.Flag{
		cli.StringFlag{Name: "p, " + Pattern, Usage: "glob matched against `name-version`, e.g. 'numpy-1.*'"},
		cli.BoolFlag{Name: Case, Usage: "match case-sensitively"},
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
	pattern := ctx.String(Pattern)
	if pattern == "" {
		pattern = ctx.Args().First()
	}
	if pattern == "" {
		return errors.UserError(pkgerrors.New("no search pattern"), "Pass a glob with --pattern, such as --pattern 'numpy-*'.")
	}
	format, err := cmdutil.FormatFromContext(ctx)
	if err != nil {
		return err
	}

	scan, err := cmdutil.Scan(context.Background())
	if err != nil {
		return err
	}

	matched, err := Do(scan.Inventory, pattern, ctx.Bool(Case))
	if err != nil {
		return err
	}
	return cmdutil.WriteOutput(ctx, func(w io.Writer) error {
		return cmdutil.WritePackages(w, scan.Inventory, matched, format)
	})
}

// Do returns the packages matching pattern.
func Do(inv *pkg.Inventory, pattern string, caseSensitive bool) ([]pkg.Package, error) {
	matched, err := inv.Search(pattern, caseSensitive)
	if err != nil {
		return nil, errors.UserError(err, "The pattern is not a valid glob. Use * to match any characters and ? to match one.")
	}
	log.WithFields(log.Fields{
		"pattern": pattern,
		"matched": len(matched),
	}).Debug("searched packages")
	return matched, nil
}
