// Package pkg defines an installed Python package and the inventory of
// packages observed across site-package directories.
package pkg

import (
	"strings"

	"github.com/fossas/sitecheck/version"
)

// DistInfoSuffix is the suffix of a wheel's installed metadata directory.
const DistInfoSuffix = ".dist-info"

// A Package is a single installed release. Two packages are the same package
// when their name and rendered version are the same.
type Package struct {
	Name    string          `json:"name"`
	Version version.Version `json:"version"`
}

// New constructs a Package from a name and a version string.
func New(name, v string) Package {
	return Package{Name: name, Version: version.Parse(v)}
}

// String renders the package as `name-version`, which is also how the
// package's dist-info directory is named.
func (p Package) String() string {
	return p.Name + "-" + p.Version.String()
}

// Key is the normalized name used to match packages against specifiers.
func (p Package) Key() string {
	return Key(p.Name)
}

// Key normalizes a package name: names are case-insensitive, and `-` and `_`
// are interchangeable.
func Key(name string) string {
	return strings.Replace(strings.ToLower(name), "-", "_", -1)
}

// Compare orders packages by case-insensitive name, then by version.
func Compare(a, b Package) int {
	if c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
		return c
	}
	return a.Version.Compare(b.Version)
}

// FromDistInfo parses a dist-info directory name such as
// `matplotlib-3.9.0.dist-info`. The final `-` delimited field is the version.
func FromDistInfo(dirname string) (Package, bool) {
	if !strings.HasSuffix(dirname, DistInfoSuffix) {
		return Package{}, false
	}
	trimmed := strings.TrimSuffix(dirname, DistInfoSuffix)
	i := strings.LastIndex(trimmed, "-")
	if i <= 0 || i == len(trimmed)-1 {
		return Package{}, false
	}
	return New(trimmed[:i], trimmed[i+1:]), true
}
