package specifier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fossas/sitecheck/specifier"
	"github.com/fossas/sitecheck/version"
)

func TestParseSimple(t *testing.T) {
	s, err := specifier.Parse("package>=0.2,<0.3")
	require.NoError(t, err)

	assert.Equal(t, "package", s.Name)
	require.Len(t, s.Clauses, 2)
	assert.Equal(t, specifier.GreaterThanOrEqual, s.Clauses[0].Operator)
	assert.Equal(t, "0.2", s.Clauses[0].Version.String())
	assert.Equal(t, specifier.LessThan, s.Clauses[1].Operator)
	assert.Equal(t, "0.3", s.Clauses[1].Version.String())
	assert.Equal(t, "package>=0.2,<0.3", s.String())
}

func TestParseAllOperators(t *testing.T) {
	for _, op := range specifier.AllOperators {
		s, err := specifier.Parse("pk" + op.String() + "1.0")
		require.NoError(t, err, op.String())
		require.Len(t, s.Clauses, 1)
		assert.Equal(t, op, s.Clauses[0].Operator)
	}
}

func TestParseExtrasAndMarkers(t *testing.T) {
	s, err := specifier.Parse(`requests[security, socks] >= 2.8.1 , < 3 ; python_version < "3.8"`)
	require.NoError(t, err)

	assert.Equal(t, "requests", s.Name)
	assert.Equal(t, "requests>=2.8.1,<3", s.String())

	s, err = specifier.Parse("static_frame[extras]==2.*")
	require.NoError(t, err)
	assert.Equal(t, "static_frame==2.*", s.String())

	s, err = specifier.Parse("zope.interface[]~=5.0")
	require.NoError(t, err)
	assert.Equal(t, "zope.interface", s.Name)
}

func TestParseFailures(t *testing.T) {
	for _, expr := range []string{
		"",
		"   ",
		">=1.0",
		"package",
		"package>=",
		"package=>1.0",
		"package=1.0",
		"package<>1.0",
		"package>=1.0,",
		"package>=1.0 2.0",
		"package[extra>=1.0",
		"package>=1.0;",
		"-package>=1.0",
	} {
		_, err := specifier.Parse(expr)
		assert.Error(t, err, expr)
		assert.IsType(t, &specifier.ParseError{}, err, expr)
	}
}

func TestParseErrorMessage(t *testing.T) {
	_, err := specifier.Parse("package=>1.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unrecognized operator "=>"`)
	assert.Equal(t, 7, err.(*specifier.ParseError).Offset)
}

func TestValidateVersionConjunction(t *testing.T) {
	s := specifier.MustParse("pk>=1,<2")
	lower, upper := version.Parse("1"), version.Parse("2")
	for _, raw := range []string{"0.9", "1", "1.0.0", "1.5", "1.99.99", "2", "2.0.1", "10"} {
		candidate := version.Parse(raw)
		want := candidate.GreaterOrEqual(lower) && candidate.Less(upper)
		assert.Equal(t, want, s.ValidateVersion(candidate), raw)
	}
}

func TestValidateVersionContradictoryBounds(t *testing.T) {
	s := specifier.MustParse("name>=3,<2")
	for _, raw := range []string{"2", "3", "4"} {
		assert.False(t, s.ValidateVersion(version.Parse(raw)), raw)
	}
}

func TestValidateVersionWildcard(t *testing.T) {
	s := specifier.MustParse("package==2.*")
	assert.True(t, s.ValidateVersion(version.Parse("2.4")))
	assert.True(t, s.ValidateVersion(version.Parse("2.3")))
	assert.False(t, s.ValidateVersion(version.Parse("1.9.99.99999")))
	assert.False(t, s.ValidateVersion(version.Parse("3.0")))
}

func TestValidateVersionOperators(t *testing.T) {
	cases := []struct {
		expr      string
		candidate string
		want      bool
	}{
		{"pk<2", "1.9", true},
		{"pk<2", "2.0", false},
		{"pk<=2", "2.0.0", true},
		{"pk==1.1", "1.1.0", true},
		{"pk!=1.1", "1.1.0", false},
		{"pk!=1.1", "1.2", true},
		{"pk>1", "1.0.1", true},
		{"pk>1", "1", false},
		{"pk>=1", "1", true},
		{"pk~=1.4", "1.9", true},
		{"pk~=1.4", "1.0", true},
		{"pk~=1.4", "2.0", false},
		{"pk===1.0", "1.0.0", true},
		{"pk===1.0", "1.1", false},
	}
	for _, c := range cases {
		s := specifier.MustParse(c.expr)
		assert.Equal(t, c.want, s.ValidateVersion(version.Parse(c.candidate)), "%s against %s", c.candidate, c.expr)
	}
}

func TestValidateVersionWithoutClauses(t *testing.T) {
	s := specifier.New("pk")
	assert.True(t, s.ValidateVersion(version.Parse("0.0.1")))
}

func TestParseOperatorRejectsUnknown(t *testing.T) {
	_, ok := specifier.ParseOperator("=")
	assert.False(t, ok)
	assert.Equal(t, "invalid", specifier.Operator(-1).String())
	assert.False(t, specifier.Operator(42).Satisfied(version.Parse("1"), version.Parse("1")))
}
