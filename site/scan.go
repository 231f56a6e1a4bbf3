// Package site discovers Python interpreters and reads the packages installed
// in their site-package directories.
package site

import (
	"context"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/apex/log"
	"github.com/bmatcuk/doublestar"
	"github.com/pkg/errors"
	"github.com/remeh/sizedwaitgroup"
	"golang.org/x/sync/errgroup"

	"github.com/fossas/sitecheck/pkg"
)

// Options control how a Scan collects sites.
type Options struct {
	UserSite bool     // Include user site directories even when disabled.
	Exclude  []string // Site directories matching any of these globs are skipped.
}

// A Scan is the result of reading the packages of a set of interpreters.
type Scan struct {
	ExeToSites map[string][]string
	Inventory  *pkg.Inventory
}

// Count summarizes a Scan.
type Count struct {
	Exes     int `json:"exes"`
	Sites    int `json:"sites"`
	Packages int `json:"packages"`
}

// Discover finds every interpreter on the machine and scans it.
func Discover(ctx context.Context, opts Options) (*Scan, error) {
	return FromExes(ctx, FindExecutables(ctx), opts)
}

// FromExes scans the given interpreters. Interpreters that cannot report
// their sites are logged and contribute no sites. Symlinks are not resolved,
// as a virtual environment's interpreter is usually a link to its base.
func FromExes(ctx context.Context, exes []string, opts Options) (*Scan, error) {
	normalized := make([]string, len(exes))
	for i, exe := range exes {
		normalized[i] = normalizePath(exe)
	}
	sites := make([][]string, len(normalized))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, exe := range normalized {
		i, exe := i, exe
		g.Go(func() error {
			dirs, err := Dirs(gctx, exe, opts.UserSite)
			if cerr := gctx.Err(); cerr != nil {
				return cerr
			}
			if err != nil {
				log.WithError(err).WithField("exe", exe).Warn("skipping interpreter")
				return nil
			}
			sites[i] = dirs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "could not scan interpreters")
	}

	exeToSites := make(map[string][]string)
	for i, exe := range normalized {
		exeToSites[exe] = append(exeToSites[exe], sites[i]...)
	}
	return fromExeToSites(exeToSites, opts)
}

// FromSites scans site directories directly, without an interpreter.
func FromSites(sites []string, opts Options) (*Scan, error) {
	return fromExeToSites(map[string][]string{"": sites}, opts)
}

// FromExeSitePackages builds a Scan from packages already in memory.
func FromExeSitePackages(exe string, site string, packages []pkg.Package) *Scan {
	inv := pkg.NewInventory()
	for _, p := range packages {
		inv.Add(p, site)
	}
	return &Scan{
		ExeToSites: map[string][]string{exe: {site}},
		Inventory:  inv,
	}
}

func fromExeToSites(exeToSites map[string][]string, opts Options) (*Scan, error) {
	kept := make(map[string][]string)
	unique := make(map[string]bool)
	for exe, sites := range exeToSites {
		kept[exe] = []string{}
		for _, site := range sites {
			skip, err := excluded(site, opts.Exclude)
			if err != nil {
				return nil, err
			}
			if skip {
				log.WithField("site", site).Debug("excluding site")
				continue
			}
			kept[exe] = append(kept[exe], site)
			unique[site] = true
		}
	}

	var lock sync.Mutex
	siteToPackages := make(map[string][]pkg.Package)
	wg := sizedwaitgroup.New(runtime.GOMAXPROCS(0))
	for site := range unique {
		wg.Add()
		go func(site string) {
			defer wg.Done()
			packages, err := Packages(site)
			if err != nil {
				log.WithError(err).WithField("site", site).Warn("could not read site")
				return
			}
			lock.Lock()
			defer lock.Unlock()
			siteToPackages[site] = packages
		}(site)
	}
	wg.Wait()

	inv := pkg.NewInventory()
	for _, site := range sortedKeys(siteToPackages) {
		for _, p := range siteToPackages[site] {
			inv.Add(p, site)
		}
	}
	return &Scan{ExeToSites: kept, Inventory: inv}, nil
}

// Exes returns the scanned interpreters, sorted.
func (s *Scan) Exes() []string {
	var exes []string
	for exe := range s.ExeToSites {
		if exe != "" {
			exes = append(exes, exe)
		}
	}
	sort.Strings(exes)
	return exes
}

// Sites returns every distinct site directory, sorted.
func (s *Scan) Sites() []string {
	unique := make(map[string][]pkg.Package)
	for _, sites := range s.ExeToSites {
		for _, site := range sites {
			unique[site] = nil
		}
	}
	return sortedKeys(unique)
}

// Count returns the number of interpreters, sites and packages.
func (s *Scan) Count() Count {
	return Count{
		Exes:     len(s.Exes()),
		Sites:    len(s.Sites()),
		Packages: s.Inventory.Len(),
	}
}

func excluded(site string, patterns []string) (bool, error) {
	for _, pattern := range patterns {
		ok, err := doublestar.PathMatch(pattern, site)
		if err != nil {
			return false, errors.Wrapf(err, "invalid exclude pattern %q", pattern)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func normalizePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

func sortedKeys(m map[string][]pkg.Package) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
