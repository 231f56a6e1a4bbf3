package cmdutil

import (
	"io"

	"github.com/urfave/cli"

	"github.com/fossas/sitecheck/cmd/sitecheck/display"
	"github.com/fossas/sitecheck/cmd/sitecheck/flags"
	"github.com/fossas/sitecheck/errors"
	"github.com/fossas/sitecheck/pkg"
)

// A Format selects how a report is written.
type Format struct {
	JSON      bool
	Delimited bool
	Delimiter rune
}

// FormatFromContext reads the output flags. Reports written to a file are
// delimited unless JSON is requested.
func FormatFromContext(ctx *cli.Context) (Format, error) {
	delimiter, err := display.ParseDelimiter(ctx.String(flags.Delimiter))
	if err != nil {
		return Format{}, errors.UserError(err, "Pass a single character to --delimiter, such as , or |.")
	}
	return Format{
		JSON:      ctx.Bool(flags.JSON),
		Delimited: ctx.String(flags.Output) != "",
		Delimiter: delimiter,
	}, nil
}

// WritePackages writes packages and their sites in the given format.
func WritePackages(w io.Writer, inv *pkg.Inventory, packages []pkg.Package, format Format) error {
	switch {
	case format.JSON:
		return display.JSON(w, PackageRecords(inv, packages))
	case format.Delimited:
		return display.WriteDelimited(w, PackageTable(inv, packages, true), format.Delimiter)
	default:
		return display.WriteTable(w, PackageTable(inv, packages, false))
	}
}

// WriteOutput opens the file named by the output flag, or STDOUT, and passes
// it to write.
func WriteOutput(ctx *cli.Context, write func(w io.Writer) error) error {
	out, err := Output(ctx.String(flags.Output))
	if err != nil {
		return err
	}
	err = write(out)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return err
}
