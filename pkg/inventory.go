package pkg

import (
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar"
)

// An Inventory maps each observed package to the sites where it was found. A
// package may be installed in several site-package directories, for example
// when more than one interpreter is present.
//
// An Inventory is not safe for concurrent mutation. Once built, it may be
// read concurrently.
type Inventory struct {
	entries map[string]*entry
}

type entry struct {
	pkg   Package
	sites []string
}

// NewInventory returns an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{entries: make(map[string]*entry)}
}

// Add records that p was found at site. Repeated sites are ignored.
func (inv *Inventory) Add(p Package, site string) {
	if inv.entries == nil {
		inv.entries = make(map[string]*entry)
	}
	id := p.String()
	e, ok := inv.entries[id]
	if !ok {
		e = &entry{pkg: p}
		inv.entries[id] = e
	}
	for _, s := range e.sites {
		if s == site {
			return
		}
	}
	e.sites = append(e.sites, site)
}

// Len returns the number of distinct packages.
func (inv *Inventory) Len() int {
	if inv == nil {
		return 0
	}
	return len(inv.entries)
}

// Packages returns every distinct package, sorted by name and version.
func (inv *Inventory) Packages() []Package {
	if inv == nil {
		return nil
	}
	packages := make([]Package, 0, len(inv.entries))
	for _, e := range inv.entries {
		packages = append(packages, e.pkg)
	}
	sortPackages(packages)
	return packages
}

// Sites returns the sites where p was found, in the order they were added.
func (inv *Inventory) Sites(p Package) []string {
	if inv == nil {
		return nil
	}
	e, ok := inv.entries[p.String()]
	if !ok {
		return nil
	}
	return append([]string(nil), e.sites...)
}

// ByKey groups packages by their normalized name.
func (inv *Inventory) ByKey() map[string][]Package {
	grouped := make(map[string][]Package)
	for _, p := range inv.Packages() {
		grouped[p.Key()] = append(grouped[p.Key()], p)
	}
	return grouped
}

// Search returns the packages whose `name-version` display string matches a
// glob pattern. `-` and `_` in either side are treated as the same character.
func (inv *Inventory) Search(pattern string, caseSensitive bool) ([]Package, error) {
	normalize := func(s string) string {
		s = strings.Replace(s, "-", "_", -1)
		if !caseSensitive {
			s = strings.ToLower(s)
		}
		return s
	}

	var matched []Package
	for _, p := range inv.Packages() {
		ok, err := doublestar.Match(normalize(pattern), normalize(p.String()))
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func sortPackages(packages []Package) {
	sort.SliceStable(packages, func(i, j int) bool {
		if c := Compare(packages[i], packages[j]); c != 0 {
			return c < 0
		}
		return packages[i].String() < packages[j].String()
	})
}
