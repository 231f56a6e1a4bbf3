package specifier

import (
	"fmt"
	"strings"

	"github.com/fossas/sitecheck/version"
)

// A ParseError is returned when a constraint expression cannot be parsed.
type ParseError struct {
	Input   string
	Offset  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse specifier %q at offset %d: %s", e.Input, e.Offset, e.Message)
}

// Parse parses a constraint expression of the form:
//
//	name [ "[" extras "]" ] operator version ( "," operator version )* [ ";" marker ]
//
// Extras and markers are recognized and discarded. Parsing stops at the first
// mismatch.
func Parse(expr string) (Specifier, error) {
	p := parser{input: expr}
	return p.parse()
}

const (
	operatorChars = "<>=!~"
	versionExtra  = "._*+!-"
)

type parser struct {
	input string
	pos   int

	name      string
	operators []Operator
	versions  []string
}

func (p *parser) parse() (Specifier, error) {
	p.skipSpace()
	if err := p.parseName(); err != nil {
		return Specifier{}, err
	}

	p.skipSpace()
	if p.peek() == '[' {
		if err := p.parseExtras(); err != nil {
			return Specifier{}, err
		}
	}

	if err := p.parseClauses(); err != nil {
		return Specifier{}, err
	}

	p.skipSpace()
	if p.peek() == ';' {
		// Markers are not evaluated; the rest of the input is the marker.
		if strings.TrimSpace(p.input[p.pos+1:]) == "" {
			return Specifier{}, p.fail("expected marker expression after `;`")
		}
		p.pos = len(p.input)
	}
	if !p.done() {
		return Specifier{}, p.fail(fmt.Sprintf("unexpected %q", p.input[p.pos:]))
	}

	if len(p.operators) != len(p.versions) {
		return Specifier{}, p.fail(fmt.Sprintf("found %d operators but %d versions", len(p.operators), len(p.versions)))
	}

	clauses := make([]Clause, len(p.operators))
	for i, op := range p.operators {
		clauses[i] = Clause{Operator: op, Version: version.Parse(p.versions[i])}
	}
	return Specifier{Name: p.name, Clauses: clauses}, nil
}

func (p *parser) parseName() error {
	name := p.identifier()
	if name == "" {
		return p.fail("expected package name")
	}
	p.name = name
	return nil
}

// parseExtras consumes `[ident, ident, ...]`.
func (p *parser) parseExtras() error {
	p.pos++ // [
	p.skipSpace()
	if p.peek() == ']' {
		p.pos++
		return nil
	}
	for {
		p.skipSpace()
		if p.identifier() == "" {
			return p.fail("expected extra name")
		}
		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case ']':
			p.pos++
			return nil
		default:
			return p.fail("expected `,` or `]` in extras")
		}
	}
}

func (p *parser) parseClauses() error {
	for {
		p.skipSpace()
		if err := p.parseClause(); err != nil {
			return err
		}
		p.skipSpace()
		if p.peek() != ',' {
			return nil
		}
		p.pos++
	}
}

func (p *parser) parseClause() error {
	start := p.pos
	raw := p.takeWhile(func(c byte) bool { return strings.IndexByte(operatorChars, c) >= 0 })
	if raw == "" {
		return p.fail("expected version operator")
	}
	op, ok := ParseOperator(raw)
	if !ok {
		p.pos = start
		return p.fail(fmt.Sprintf("unrecognized operator %q", raw))
	}

	p.skipSpace()
	v := p.takeWhile(isVersionChar)
	if v == "" {
		return p.fail("expected version")
	}

	p.operators = append(p.operators, op)
	p.versions = append(p.versions, v)
	return nil
}

// identifier consumes a name of letters, digits, `.`, `-` and `_` that starts
// and ends with a letter or digit.
func (p *parser) identifier() string {
	start := p.pos
	if !isAlnum(p.peek()) {
		return ""
	}
	p.takeWhile(func(c byte) bool { return isAlnum(c) || c == '.' || c == '-' || c == '_' })
	for p.pos > start && !isAlnum(p.input[p.pos-1]) {
		p.pos--
	}
	return p.input[start:p.pos]
}

func (p *parser) takeWhile(accept func(byte) bool) string {
	start := p.pos
	for !p.done() && accept(p.input[p.pos]) {
		p.pos++
	}
	return p.input[start:p.pos]
}

func (p *parser) skipSpace() {
	p.takeWhile(func(c byte) bool { return c == ' ' || c == '\t' })
}

func (p *parser) peek() byte {
	if p.done() {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) done() bool {
	return p.pos >= len(p.input)
}

func (p *parser) fail(msg string) *ParseError {
	return &ParseError{Input: p.input, Offset: p.pos, Message: msg}
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isVersionChar(c byte) bool {
	return isAlnum(c) || strings.IndexByte(versionExtra, c) >= 0
}
