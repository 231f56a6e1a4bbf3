// Package manifest implements bound requirements: a set of specifiers, at
// most one per package, that installed packages are validated against.
package manifest

import (
	"fmt"
	"io"
	"sort"

	"github.com/pkg/errors"

	"github.com/fossas/sitecheck/pkg"
	"github.com/fossas/sitecheck/specifier"
)

// A DuplicateNameError is returned when two specifiers name the same package.
type DuplicateNameError struct {
	Name     string
	Previous string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate requirement for package %q (already defined by %q)", e.Name, e.Previous)
}

// A Manifest maps normalized package names to their specifiers. It is
// read-only once built and safe for concurrent use.
type Manifest struct {
	specifiers map[string]specifier.Specifier
}

// New parses each constraint expression into a specifier. Comment and blank
// lines must already be removed. Construction stops at the first parse error
// or duplicate name, and no partial manifest is returned.
func New(exprs []string) (Manifest, error) {
	specs := make([]specifier.Specifier, 0, len(exprs))
	for _, expr := range exprs {
		s, err := specifier.Parse(expr)
		if err != nil {
			return Manifest{}, errors.Wrapf(err, "invalid requirement %q", expr)
		}
		specs = append(specs, s)
	}
	return FromSpecifiers(specs)
}

// FromSpecifiers builds a manifest from already-parsed specifiers.
func FromSpecifiers(specs []specifier.Specifier) (Manifest, error) {
	m := Manifest{specifiers: make(map[string]specifier.Specifier, len(specs))}
	for _, s := range specs {
		key := pkg.Key(s.Name)
		if prev, ok := m.specifiers[key]; ok {
			return Manifest{}, &DuplicateNameError{Name: s.Name, Previous: prev.String()}
		}
		m.specifiers[key] = s
	}
	return m, nil
}

// Len returns the number of distinct package names.
func (m Manifest) Len() int {
	return len(m.specifiers)
}

// Get returns the specifier for a package name.
func (m Manifest) Get(name string) (specifier.Specifier, bool) {
	s, ok := m.specifiers[pkg.Key(name)]
	return s, ok
}

// Keys returns the normalized names of every specifier, sorted.
func (m Manifest) Keys() []string {
	keys := make([]string, 0, len(m.specifiers))
	for k := range m.specifiers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Specifiers returns every specifier, sorted by normalized name.
func (m Manifest) Specifiers() []specifier.Specifier {
	specs := make([]specifier.Specifier, 0, len(m.specifiers))
	for _, k := range m.Keys() {
		specs = append(specs, m.specifiers[k])
	}
	return specs
}

// Validate reports whether p satisfies its specifier. A package without a
// specifier is not valid.
func (m Manifest) Validate(p pkg.Package) bool {
	s, ok := m.specifiers[p.Key()]
	if !ok {
		return false
	}
	return s.ValidateVersion(p.Version)
}

// Requirements renders the manifest as requirement lines, sorted by name.
func (m Manifest) Requirements() []string {
	specs := m.Specifiers()
	lines := make([]string, len(specs))
	for i, s := range specs {
		lines[i] = s.String()
	}
	return lines
}

// WriteRequirements writes the manifest in requirements file format.
func (m Manifest) WriteRequirements(w io.Writer) error {
	for _, line := range m.Requirements() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
