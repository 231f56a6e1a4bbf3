package specifier

import (
	"github.com/fossas/sitecheck/version"
)

// An Operator is a version comparison operator.
type Operator int

// Supported operators.
const (
	LessThan           Operator = iota // <
	LessThanOrEqual                    // <=
	Equal                              // ==
	NotEqual                           // !=
	GreaterThan                        // >
	GreaterThanOrEqual                 // >=
	Compatible                         // ~=
	ArbitraryEqual                     // ===
)

// AllOperators enumerates all operators.
var AllOperators = []Operator{
	LessThan,
	LessThanOrEqual,
	Equal,
	NotEqual,
	GreaterThan,
	GreaterThanOrEqual,
	Compatible,
	ArbitraryEqual,
}

// ParseOperator returns the operator for its textual form.
func ParseOperator(s string) (Operator, bool) {
	switch s {
	case "<":
		return LessThan, true
	case "<=":
		return LessThanOrEqual, true
	case "==":
		return Equal, true
	case "!=":
		return NotEqual, true
	case ">":
		return GreaterThan, true
	case ">=":
		return GreaterThanOrEqual, true
	case "~=":
		return Compatible, true
	case "===":
		return ArbitraryEqual, true
	default:
		return Operator(-1), false
	}
}

func (op Operator) String() string {
	switch op {
	case LessThan:
		return "<"
	case LessThanOrEqual:
		return "<="
	case Equal:
		return "=="
	case NotEqual:
		return "!="
	case GreaterThan:
		return ">"
	case GreaterThanOrEqual:
		return ">="
	case Compatible:
		return "~="
	case ArbitraryEqual:
		return "==="
	default:
		return "invalid"
	}
}

// Satisfied reports whether candidate satisfies `op bound`.
//
// NOTE: `===` is evaluated with token-aware equality, the same as `==`.
// Callers that need an exact textual match should use
// version.Version.IsArbitraryEqual directly.
func (op Operator) Satisfied(candidate, bound version.Version) bool {
	switch op {
	case LessThan:
		return candidate.Less(bound)
	case LessThanOrEqual:
		return candidate.LessOrEqual(bound)
	case Equal:
		return candidate.Equal(bound)
	case NotEqual:
		return !candidate.Equal(bound)
	case GreaterThan:
		return candidate.Greater(bound)
	case GreaterThanOrEqual:
		return candidate.GreaterOrEqual(bound)
	case Compatible:
		return candidate.IsMajorCompatible(bound)
	case ArbitraryEqual:
		return candidate.Equal(bound)
	default:
		return false
	}
}
