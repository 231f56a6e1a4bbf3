package manifest

import (
	"fmt"
	"strings"

	"github.com/fossas/sitecheck/pkg"
	"github.com/fossas/sitecheck/specifier"
)

// An Anchor selects which bound Derive places on each package.
type Anchor int

// Supported anchors.
const (
	Lower Anchor = iota // >= the lowest observed version
	Upper               // <= the highest observed version
	Both                // >= the lowest and <= the highest observed version
)

// ParseAnchor returns the anchor for its name.
func ParseAnchor(s string) (Anchor, error) {
	switch strings.ToLower(s) {
	case "lower":
		return Lower, nil
	case "upper":
		return Upper, nil
	case "both":
		return Both, nil
	default:
		return Anchor(-1), fmt.Errorf("unknown anchor %q (expected lower, upper or both)", s)
	}
}

func (a Anchor) String() string {
	switch a {
	case Lower:
		return "lower"
	case Upper:
		return "upper"
	case Both:
		return "both"
	default:
		return "invalid"
	}
}

// Derive builds a manifest from the packages in an inventory, bounding each
// package name by the versions observed for it.
func Derive(inv *pkg.Inventory, anchor Anchor) (Manifest, error) {
	var specs []specifier.Specifier
	for _, packages := range inv.ByKey() {
		// A key may be installed under several spellings, so compare versions only.
		low, high := packages[0], packages[0]
		for _, p := range packages[1:] {
			if p.Version.Compare(low.Version) < 0 {
				low = p
			}
			if p.Version.Compare(high.Version) > 0 {
				high = p
			}
		}

		var clauses []specifier.Clause
		switch anchor {
		case Lower:
			clauses = append(clauses, specifier.Clause{Operator: specifier.GreaterThanOrEqual, Version: low.Version})
		case Upper:
			clauses = append(clauses, specifier.Clause{Operator: specifier.LessThanOrEqual, Version: high.Version})
		case Both:
			clauses = append(clauses,
				specifier.Clause{Operator: specifier.GreaterThanOrEqual, Version: low.Version},
				specifier.Clause{Operator: specifier.LessThanOrEqual, Version: high.Version},
			)
		default:
			return Manifest{}, fmt.Errorf("unknown anchor %d", anchor)
		}
		specs = append(specs, specifier.New(low.Name, clauses...))
	}
	return FromSpecifiers(specs)
}
