// Package version implements the dotted version strings found in Python
// package metadata and requirement specifiers.
//
// A Version is a sequence of tokens split on `.`. Each token is either a
// number or a text label. The text label `*` is a wildcard that matches any
// token at its position. Comparisons treat a missing trailing token as `0`,
// so `1.1`, `1.1.0` and `1.1.0.0` are all equal.
//
// This is a simplified ordering. Pre-release, post-release and dev-release
// suffixes such as `1.7.0.post1` are compared as plain text tokens and do not
// follow the full PEP 440 rules.
package version

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Wildcard is the text token that matches any value at its position.
const Wildcard = "*"

// A token is one `.`-delimited segment of a version string.
type token struct {
	numeric bool
	number  uint64
	text    string
}

var zero = token{numeric: true}

func parseToken(segment string) token {
	// ParseUint rejects signs, so only plain digit runs are numeric.
	n, err := strconv.ParseUint(segment, 10, 64)
	if err != nil {
		return token{text: segment}
	}
	return token{numeric: true, number: n}
}

func (t token) wildcard() bool {
	return !t.numeric && t.text == Wildcard
}

func (t token) String() string {
	if t.numeric {
		return strconv.FormatUint(t.number, 10)
	}
	return t.text
}

// A Version is an immutable sequence of version tokens. The zero value is the
// empty version, which compares equal to `0`.
type Version struct {
	tokens []token
}

// Parse splits a version string into tokens. It never fails: any input,
// including malformed input, produces a Version.
func Parse(s string) Version {
	segments := strings.Split(s, ".")
	tokens := make([]token, 0, len(segments))
	for _, segment := range segments {
		tokens = append(tokens, parseToken(segment))
	}
	return Version{tokens: tokens}
}

// Len returns the number of tokens in the version.
func (v Version) Len() int {
	return len(v.tokens)
}

// String joins the version's tokens with `.`. Numeric tokens are rendered in
// canonical decimal form, so `01` renders as `1`.
func (v Version) String() string {
	parts := make([]string, len(v.tokens))
	for i, t := range v.tokens {
		parts[i] = t.String()
	}
	return strings.Join(parts, ".")
}

// MarshalJSON encodes the version as its display string.
func (v Version) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// UnmarshalJSON decodes a version from its display string.
func (v *Version) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*v = Parse(s)
	return nil
}

func (v Version) at(i int) token {
	if i < len(v.tokens) {
		return v.tokens[i]
	}
	return zero
}

func (v Version) width(other Version) int {
	if len(v.tokens) > len(other.tokens) {
		return len(v.tokens)
	}
	return len(other.tokens)
}

// Equal reports whether two versions are equal position by position.
// Wildcards match anything; a numeric token never equals a text token.
func (v Version) Equal(other Version) bool {
	for i := 0; i < v.width(other); i++ {
		a, b := v.at(i), other.at(i)
		switch {
		case a.wildcard() || b.wildcard():
			continue
		case a.numeric && b.numeric:
			if a.number != b.number {
				return false
			}
		case !a.numeric && !b.numeric:
			if a.text != b.text {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Compare returns -1, 0 or +1 when v is less than, equal to or greater than
// other. Wildcard positions carry no ordering signal, and a number is always
// greater than a non-wildcard text token.
//
// Because wildcards match in both directions, Compare is not transitive when
// wildcards are involved: `2.1` and `2.9` both compare equal to `2.*`.
func (v Version) Compare(other Version) int {
	for i := 0; i < v.width(other); i++ {
		if c := compareTokens(v.at(i), other.at(i)); c != 0 {
			return c
		}
	}
	return 0
}

func compareTokens(a, b token) int {
	switch {
	case a.wildcard() || b.wildcard():
		return 0
	case a.numeric && b.numeric:
		switch {
		case a.number < b.number:
			return -1
		case a.number > b.number:
			return 1
		}
		return 0
	case !a.numeric && !b.numeric:
		return strings.Compare(a.text, b.text)
	case a.numeric:
		return 1
	default:
		return -1
	}
}

func (v Version) Less(other Version) bool           { return v.Compare(other) < 0 }
func (v Version) LessOrEqual(other Version) bool    { return v.Compare(other) <= 0 }
func (v Version) Greater(other Version) bool        { return v.Compare(other) > 0 }
func (v Version) GreaterOrEqual(other Version) bool { return v.Compare(other) >= 0 }

// IsMajorCompatible reports whether both versions lead with the same numeric
// token. The remaining tokens are ignored.
func (v Version) IsMajorCompatible(other Version) bool {
	if len(v.tokens) == 0 || len(other.tokens) == 0 {
		return false
	}
	a, b := v.tokens[0], other.tokens[0]
	return a.numeric && b.numeric && a.number == b.number
}

// IsArbitraryEqual reports whether both versions render to the same string.
// No token-aware rules (padding, wildcards) apply.
func (v Version) IsArbitraryEqual(other Version) bool {
	return v.String() == other.String()
}
