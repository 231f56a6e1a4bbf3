package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fossas/sitecheck/cmd/sitecheck/cmd/validate"
	"github.com/fossas/sitecheck/errors"
	"github.com/fossas/sitecheck/pkg"
	"github.com/fossas/sitecheck/site"
	"github.com/fossas/sitecheck/validation"
)

func report(t *testing.T) validation.Report {
	m, err := validate.Bound("testdata/requirements.txt")
	require.NoError(t, err)

	scan := site.FromExeSitePackages("/usr/bin/python3", "/usr/lib/site-packages", []pkg.Package{
		pkg.New("numpy", "2.0.0"),
		pkg.New("requests", "2.32.3"),
		pkg.New("urllib3", "2.2.1"),
	})
	return validation.Validate(m, scan.Inventory, validation.Flags{})
}

func TestTable(t *testing.T) {
	table := validate.Table(report(t))

	assert.Equal(t, []string{"Package", "Dependency", "Explain", "Sites"}, table.Headers)
	assert.Equal(t, [][]string{
		{"", "flask>=3", "Missing", ""},
		{"numpy-2.0.0", "numpy>=1.19,<2", "Invalid", "/usr/lib/site-packages"},
		{"urllib3-2.2.1", "", "Disallowed", "/usr/lib/site-packages"},
	}, table.Rows)
}

func TestExit(t *testing.T) {
	err := validate.Exit(report(t), validate.DefaultCode)
	if assert.IsType(t, &errors.Error{}, err) {
		assert.Equal(t, 3, err.(*errors.Error).Code())
		assert.True(t, err.(*errors.Error).Silent())
	}

	err = validate.Exit(validation.Report{}, validate.DefaultCode)
	assert.NoError(t, err)
}

func TestBoundErrors(t *testing.T) {
	_, err := validate.Bound("")
	if assert.IsType(t, &errors.Error{}, err) {
		assert.Equal(t, errors.NoBoundMessage, err.(*errors.Error).Troubleshooting)
	}

	_, err = validate.Bound("testdata/malformed.txt")
	if assert.IsType(t, &errors.Error{}, err) {
		assert.Equal(t, errors.RequirementsMessage, err.(*errors.Error).Troubleshooting)
	}

	_, err = validate.Bound("testdata/does-not-exist.txt")
	assert.Error(t, err)
}
