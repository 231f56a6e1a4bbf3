// Package validation reconciles installed packages against a manifest of
// bound requirements.
//
// Every package name found in either the manifest or the inventory is
// classified independently:
//
//   - specified and found: each installed version that fails the specifier is
//     reported as Invalid.
//   - specified but not found: reported as Missing, unless PermitSubset.
//   - found but not specified: each installed version is reported as
//     Disallowed, unless PermitSuperset.
package validation

import (
	"runtime"
	"sort"
	"strings"

	"github.com/apex/log"
	"github.com/remeh/sizedwaitgroup"

	"github.com/fossas/sitecheck/manifest"
	"github.com/fossas/sitecheck/pkg"
)

// Flags control which differences between the manifest and the installed
// packages are permitted.
type Flags struct {
	// PermitSuperset allows installed packages that are not in the manifest.
	PermitSuperset bool
	// PermitSubset allows manifest entries that are not installed.
	PermitSubset bool
}

// A Report is the sorted list of validation failures.
type Report struct {
	Records []Record
}

// Len returns the number of records.
func (r Report) Len() int {
	return len(r.Records)
}

// OK is true when there are no validation failures.
func (r Report) OK() bool {
	return len(r.Records) == 0
}

// Packages returns the installed packages named by Invalid and Disallowed
// records.
func (r Report) Packages() []pkg.Package {
	var packages []pkg.Package
	for _, record := range r.Records {
		switch record := record.(type) {
		case Invalid:
			packages = append(packages, record.Package)
		case Disallowed:
			packages = append(packages, record.Package)
		}
	}
	return packages
}

// Digest projects every record into its structured form, in report order.
func (r Report) Digest() Digest {
	digest := make(Digest, len(r.Records))
	for i, record := range r.Records {
		digest[i] = ToDigest(record)
	}
	return digest
}

// Validate classifies every package name in m and inv. Names are classified
// concurrently; the result is sorted by name, then version.
func Validate(m manifest.Manifest, inv *pkg.Inventory, flags Flags) Report {
	installed := inv.ByKey()

	names := m.Keys()
	for key := range installed {
		if _, ok := m.Get(key); !ok {
			names = append(names, key)
		}
	}

	// Each name writes only its own slot, so no lock is needed.
	results := make([][]Record, len(names))
	wg := sizedwaitgroup.New(runtime.GOMAXPROCS(0))
	for i, name := range names {
		wg.Add()
		go func(i int, name string) {
			defer wg.Done()
			results[i] = classify(m, inv, name, installed[name], flags)
		}(i, name)
	}
	wg.Wait()

	var records []Record
	for _, r := range results {
		records = append(records, r...)
	}
	sortRecords(records)

	log.WithFields(log.Fields{
		"names":   len(names),
		"records": len(records),
	}).Debug("validated packages")
	return Report{Records: records}
}

func classify(m manifest.Manifest, inv *pkg.Inventory, name string, packages []pkg.Package, flags Flags) []Record {
	spec, specified := m.Get(name)

	var records []Record
	switch {
	case specified && len(packages) == 0:
		if !flags.PermitSubset {
			records = append(records, Missing{Specifier: spec})
		}
	case !specified:
		if flags.PermitSuperset {
			return nil
		}
		for _, p := range packages {
			records = append(records, Disallowed{Package: p, Sites: inv.Sites(p)})
		}
	default:
		for _, p := range packages {
			if !m.Validate(p) {
				records = append(records, Invalid{Package: p, Specifier: spec, Sites: inv.Sites(p)})
			}
		}
	}
	return records
}

func sortRecords(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if c := strings.Compare(strings.ToLower(a.Name()), strings.ToLower(b.Name())); c != 0 {
			return c < 0
		}
		pa, aok := installedPackage(a)
		pb, bok := installedPackage(b)
		if aok && bok {
			if c := pa.Version.Compare(pb.Version); c != 0 {
				return c < 0
			}
			return pa.String() < pb.String()
		}
		// Records without a package sort first within a name.
		return !aok && bok
	})
}

func installedPackage(r Record) (pkg.Package, bool) {
	switch r := r.(type) {
	case Invalid:
		return r.Package, true
	case Disallowed:
		return r.Package, true
	default:
		return pkg.Package{}, false
	}
}
