// Package specifier implements dependency constraint expressions such as
// `requests[security]>=2.8.1,<3 ; python_version >= "3.8"`.
//
// A Specifier names a package and carries one or more clauses. All clauses
// must hold for a version to be valid. Extras and environment markers are
// accepted by the parser but are not evaluated.
package specifier

import (
	"encoding/json"
	"strings"

	"github.com/fossas/sitecheck/version"
)

// A Clause is a single `operator version` pair.
type Clause struct {
	Operator Operator
	Version  version.Version
}

func (c Clause) String() string {
	return c.Operator.String() + c.Version.String()
}

// A Specifier is an immutable, parsed constraint expression.
type Specifier struct {
	Name    string
	Clauses []Clause
}

// New constructs a Specifier from already-parsed parts.
func New(name string, clauses ...Clause) Specifier {
	return Specifier{
		Name:    name,
		Clauses: append([]Clause(nil), clauses...),
	}
}

// MustParse is like Parse but panics on error. It is intended for tests and
// static declarations.
func MustParse(expr string) Specifier {
	s, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return s
}

// String renders the specifier as `name` followed by its clauses joined
// with `,`.
func (s Specifier) String() string {
	clauses := make([]string, len(s.Clauses))
	for i, c := range s.Clauses {
		clauses[i] = c.String()
	}
	return s.Name + strings.Join(clauses, ",")
}

// MarshalJSON encodes the specifier as its display string.
func (s Specifier) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// ValidateVersion reports whether candidate satisfies every clause. A
// specifier without clauses accepts every version.
func (s Specifier) ValidateVersion(candidate version.Version) bool {
	for _, c := range s.Clauses {
		if !c.Operator.Satisfied(candidate, c.Version) {
			return false
		}
	}
	return true
}
