package cmdutil

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/apex/log"

	"github.com/fossas/sitecheck/cmd/sitecheck/display"
	"github.com/fossas/sitecheck/config"
	"github.com/fossas/sitecheck/errors"
	"github.com/fossas/sitecheck/pkg"
	"github.com/fossas/sitecheck/site"
)

// Scan reads the installed packages of the configured interpreters, or of
// every interpreter found when none are configured.
func Scan(ctx context.Context) (*site.Scan, error) {
	defer display.ClearProgress()
	display.InProgress("Scanning site-packages...")

	opts := site.Options{
		UserSite: config.UserSite(),
		Exclude:  config.ExcludeSites(),
	}

	var scan *site.Scan
	var err error
	if exes := config.Exes(); len(exes) > 0 {
		scan, err = site.FromExes(ctx, exes, opts)
	} else {
		scan, err = site.Discover(ctx, opts)
	}
	if err != nil {
		return nil, &errors.Error{
			Cause:           err,
			Type:            errors.Exec,
			Troubleshooting: "Check that each interpreter passed with --exe can be run, or run with --debug to see which interpreters were tried.",
		}
	}

	count := scan.Count()
	log.WithFields(log.Fields{
		"exes":     count.Exes,
		"sites":    count.Sites,
		"packages": count.Packages,
	}).Debug("scan complete")
	return scan, nil
}

// Output opens the named file for writing, or STDOUT when filename is empty.
func Output(filename string) (io.WriteCloser, error) {
	if filename == "" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(filename)
	if err != nil {
		return nil, errors.UserError(err, "Check that the output directory exists and is writable.")
	}
	return f, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// PackageTable lays out packages with one row per site. When repeat is false,
// the package is only named on its first row.
func PackageTable(inv *pkg.Inventory, packages []pkg.Package, repeat bool) display.Table {
	table := display.Table{Headers: []string{"Package", "Site"}}
	for _, p := range packages {
		for i, s := range inv.Sites(p) {
			name := p.String()
			if i > 0 && !repeat {
				name = ""
			}
			table.Rows = append(table.Rows, []string{name, s})
		}
	}
	return table
}

// A PackageRecord is the JSON form of a package and its sites.
type PackageRecord struct {
	Package string   `json:"package"`
	Sites   []string `json:"sites"`
}

// PackageRecords converts packages to their JSON form.
func PackageRecords(inv *pkg.Inventory, packages []pkg.Package) []PackageRecord {
	records := make([]PackageRecord, 0, len(packages))
	for _, p := range packages {
		records = append(records, PackageRecord{Package: p.String(), Sites: inv.Sites(p)})
	}
	return records
}

// JoinSites renders sites in a single cell.
func JoinSites(sites []string) string {
	return strings.Join(sites, ",")
}
