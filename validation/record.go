package validation

import (
	"github.com/fossas/sitecheck/pkg"
	"github.com/fossas/sitecheck/specifier"
)

// An Explain code classifies a validation record.
type Explain string

// Explain codes.
const (
	ExplainInvalid    Explain = "Invalid"    // found, but its version fails the specifier
	ExplainMissing    Explain = "Missing"    // specified, but not found
	ExplainDisallowed Explain = "Disallowed" // found, but not specified
)

// A Record is a single validation failure. The only implementations are
// Invalid, Missing and Disallowed.
type Record interface {
	Explain() Explain
	// Name is the package name the record is sorted by.
	Name() string

	record()
}

// Invalid is an installed package whose version does not satisfy its
// specifier.
type Invalid struct {
	Package   pkg.Package
	Specifier specifier.Specifier
	Sites     []string
}

// Missing is a specifier with no installed package.
type Missing struct {
	Specifier specifier.Specifier
}

// Disallowed is an installed package with no specifier.
type Disallowed struct {
	Package pkg.Package
	Sites   []string
}

func (Invalid) Explain() Explain    { return ExplainInvalid }
func (Missing) Explain() Explain    { return ExplainMissing }
func (Disallowed) Explain() Explain { return ExplainDisallowed }

func (r Invalid) Name() string    { return r.Package.Name }
func (r Missing) Name() string    { return r.Specifier.Name }
func (r Disallowed) Name() string { return r.Package.Name }

func (Invalid) record()    {}
func (Missing) record()    {}
func (Disallowed) record() {}

// A DigestRecord is the structured form of a Record. Absent fields encode as
// JSON null.
type DigestRecord struct {
	Package    *string  `json:"package"`
	Dependency *string  `json:"dependency"`
	Explain    Explain  `json:"explain"`
	Sites      []string `json:"sites"`
}

// A Digest is an ordered list of digest records.
type Digest []DigestRecord

// ToDigest projects a record into its structured form.
func ToDigest(r Record) DigestRecord {
	d := DigestRecord{Explain: r.Explain()}
	switch r := r.(type) {
	case Invalid:
		d.Package = str(r.Package.String())
		d.Dependency = str(r.Specifier.String())
		d.Sites = sites(r.Sites)
	case Missing:
		d.Dependency = str(r.Specifier.String())
	case Disallowed:
		d.Package = str(r.Package.String())
		d.Sites = sites(r.Sites)
	}
	return d
}

func str(s string) *string {
	return &s
}

// sites copies a site list so that an empty list still encodes as an array.
func sites(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
