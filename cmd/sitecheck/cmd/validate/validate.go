// Package validate checks the installed packages against a bound requirements
// file.
package validate

import (
	"context"
	"io"
	"os"

	"github.com/apex/log"
	pkgerrors "github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/fossas/sitecheck/cmd/sitecheck/cmdutil"
	"github.com/fossas/sitecheck/cmd/sitecheck/display"
	"github.com/fossas/sitecheck/cmd/sitecheck/flags"
	"github.com/fossas/sitecheck/cmd/sitecheck/setup"
	"github.com/fossas/sitecheck/config"
	"github.com/fossas/sitecheck/errors"
	"github.com/fossas/sitecheck/manifest"
	"github.com/fossas/sitecheck/specifier"
	"github.com/fossas/sitecheck/validation"
)

var (
	Code        = "code"
	DefaultCode = 3
)

var Cmd = cli.Command{
	Name:   "validate",
	Usage:  "Validate installed packages against a bound requirements file",
	Action: DisplayRun,
	Flags:  []cli.Flag{flags.BoundF, flags.SupersetF, flags.SubsetF},
	Subcommands: []cli.Command{
		DisplayCmd,
		JSONCmd,
		WriteCmd,
		ExitCmd,
	},
}

var DisplayCmd = cli.Command{
	Name:   "display",
	Usage:  "Print validation failures as a table",
	Action: DisplayRun,
}

var JSONCmd = cli.Command{
	Name:   "json",
	Usage:  "Print validation failures as JSON",
	Action: JSONRun,
}

var WriteCmd = cli.Command{
	Name:   "write",
	Usage:  "Write validation failures to a delimited file",
	Action: WriteRun,
	Flags:  []cli.Flag{flags.OutputF, flags.DelimiterF},
}

var ExitCmd = cli.Command{
	Name:   "exit",
	Usage:  "Exit with a non-zero code if there are validation failures",
	Action: ExitRun,
	Flags: []cli.Flag{
		cli.IntFlag{Name: Code, Value: DefaultCode, Usage: "exit code to use when validation fails"},
	},
}

func DisplayRun(ctx *cli.Context) error {
	report, err := run(ctx)
	if err != nil {
		return err
	}
	return display.WriteTable(os.Stdout, Table(report))
}

func JSONRun(ctx *cli.Context) error {
	report, err := run(ctx)
	if err != nil {
		return err
	}
	return display.JSON(os.Stdout, report.Digest())
}

func WriteRun(ctx *cli.Context) error {
	if ctx.String(flags.Output) == "" {
		return errors.UserError(pkgerrors.New("no output file"), "Pass the file to write with --output.")
	}
	report, err := run(ctx)
	if err != nil {
		return err
	}
	format, err := cmdutil.FormatFromContext(ctx)
	if err != nil {
		return err
	}
	return cmdutil.WriteOutput(ctx, func(w io.Writer) error {
		return display.WriteDelimited(w, Table(report), format.Delimiter)
	})
}

func ExitRun(ctx *cli.Context) error {
	report, err := run(ctx)
	if err != nil {
		return err
	}
	return Exit(report, ctx.Int(Code))
}

// Exit returns an error carrying code when the report has any records.
func Exit(report validation.Report, code int) error {
	if report.OK() {
		return nil
	}
	log.WithField("records", report.Len()).Warn("validation failed")
	return errors.ExitError(code)
}

func run(ctx *cli.Context) (validation.Report, error) {
	err := setup.SetContext(ctx)
	if err != nil {
		return validation.Report{}, err
	}

	m, err := Bound(config.Bound())
	if err != nil {
		return validation.Report{}, err
	}

	scan, err := cmdutil.Scan(context.Background())
	if err != nil {
		return validation.Report{}, err
	}

	return validation.Validate(m, scan.Inventory, validation.Flags{
		PermitSuperset: config.PermitSuperset(),
		PermitSubset:   config.PermitSubset(),
	}), nil
}

// Bound loads the bound requirements file.
func Bound(filename string) (manifest.Manifest, error) {
	if filename == "" {
		return manifest.Manifest{}, errors.UserError(pkgerrors.New("no bound requirements file"), errors.NoBoundMessage)
	}
	m, err := manifest.FromFile(filename)
	if err != nil {
		switch pkgerrors.Cause(err).(type) {
		case *specifier.ParseError, *manifest.DuplicateNameError:
			return manifest.Manifest{}, errors.UserError(err, errors.RequirementsMessage)
		default:
			return manifest.Manifest{}, errors.UserError(err, "Check that the bound requirements file exists and is readable.")
		}
	}
	log.WithFields(log.Fields{
		"bound":    filename,
		"packages": m.Len(),
	}).Debug("loaded bound requirements")
	return m, nil
}

// Table lays out a report with one row per record.
func Table(report validation.Report) display.Table {
	table := display.Table{Headers: []string{"Package", "Dependency", "Explain", "Sites"}}
	for _, r := range report.Digest() {
		table.Rows = append(table.Rows, []string{
			deref(r.Package),
			deref(r.Dependency),
			string(r.Explain),
			cmdutil.JoinSites(r.Sites),
		})
	}
	return table
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
