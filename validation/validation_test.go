package validation_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fossas/sitecheck/manifest"
	"github.com/fossas/sitecheck/pkg"
	"github.com/fossas/sitecheck/specifier"
	"github.com/fossas/sitecheck/validation"
)

const site = "/usr/lib/python3/site-packages"

func mustManifest(t *testing.T, exprs ...string) manifest.Manifest {
	m, err := manifest.New(exprs)
	require.NoError(t, err)
	return m
}

func inventory(packages ...pkg.Package) *pkg.Inventory {
	inv := pkg.NewInventory()
	for _, p := range packages {
		inv.Add(p, site)
	}
	return inv
}

func TestMissing(t *testing.T) {
	m := mustManifest(t, "pk1>=0.2,<0.3", "pk2>=1,<3")
	inv := inventory(pkg.New("pk2", "2.0"))

	report := validation.Validate(m, inv, validation.Flags{})

	require.Equal(t, 1, report.Len())
	missing, ok := report.Records[0].(validation.Missing)
	require.True(t, ok)
	assert.Equal(t, "pk1", missing.Specifier.Name)
	assert.Equal(t, validation.ExplainMissing, missing.Explain())
}

func TestPermitSupersetAndSubset(t *testing.T) {
	m := mustManifest(t, "pk1>=0.2,<0.3", "pk2>=1,<3")
	inv := inventory(pkg.New("pk2", "2.0"), pkg.New("foo", "9.9"))

	report := validation.Validate(m, inv, validation.Flags{PermitSuperset: true, PermitSubset: true})
	assert.True(t, report.OK())
	assert.Equal(t, 0, report.Len())

	report = validation.Validate(m, inv, validation.Flags{PermitSuperset: true})
	require.Equal(t, 1, report.Len())
	assert.IsType(t, validation.Missing{}, report.Records[0])

	report = validation.Validate(m, inv, validation.Flags{PermitSubset: true})
	require.Equal(t, 1, report.Len())
	disallowed, ok := report.Records[0].(validation.Disallowed)
	require.True(t, ok)
	assert.Equal(t, "foo-9.9", disallowed.Package.String())
	assert.Equal(t, []string{site}, disallowed.Sites)
}

func TestInvalid(t *testing.T) {
	m := mustManifest(t, "pk1>=0.2,<0.3")
	inv := inventory(pkg.New("pk1", "0.3.0"))

	report := validation.Validate(m, inv, validation.Flags{})

	require.Equal(t, 1, report.Len())
	invalid, ok := report.Records[0].(validation.Invalid)
	require.True(t, ok)
	assert.Equal(t, "pk1-0.3.0", invalid.Package.String())
	assert.Equal(t, "pk1>=0.2,<0.3", invalid.Specifier.String())
	assert.Equal(t, []string{site}, invalid.Sites)
}

func TestSatisfiedProducesNothing(t *testing.T) {
	m := mustManifest(t, "pk1>=0.2,<0.3")
	report := validation.Validate(m, inventory(pkg.New("pk1", "0.2.9")), validation.Flags{})
	assert.True(t, report.OK())
}

func TestMultipleVersionsAreIndependent(t *testing.T) {
	m := mustManifest(t, "numpy>=2")
	inv := pkg.NewInventory()
	inv.Add(pkg.New("numpy", "2.1.0"), "/usr/lib/python3/site-packages")
	inv.Add(pkg.New("numpy", "1.19.3"), "/home/user/.venv/lib/python3.12/site-packages")
	inv.Add(pkg.New("numpy", "1.26.4"), "/opt/conda/lib/python3.11/site-packages")

	report := validation.Validate(m, inv, validation.Flags{})

	require.Equal(t, 2, report.Len())
	assert.Equal(t, []pkg.Package{pkg.New("numpy", "1.19.3"), pkg.New("numpy", "1.26.4")}, report.Packages())
	assert.Equal(t, []string{"/home/user/.venv/lib/python3.12/site-packages"}, report.Records[0].(validation.Invalid).Sites)
}

func TestNamesAreNormalized(t *testing.T) {
	m := mustManifest(t, "numpy==2.1.0", "flask>1,<2", "static_frame==2.1.0")
	inv := inventory(
		pkg.New("numpy", "1.19.3"),
		pkg.New("static-frame", "2.13.0"),
		pkg.New("flask", "1.2"),
		pkg.New("packaging", "24.1"),
	)

	report := validation.Validate(m, inv, validation.Flags{})

	digest := report.Digest()
	require.Len(t, digest, 3)
	assert.Equal(t, "numpy-1.19.3", *digest[0].Package)
	assert.Equal(t, "numpy==2.1.0", *digest[0].Dependency)
	assert.Equal(t, validation.ExplainInvalid, digest[0].Explain)

	assert.Equal(t, "packaging-24.1", *digest[1].Package)
	assert.Nil(t, digest[1].Dependency)
	assert.Equal(t, validation.ExplainDisallowed, digest[1].Explain)

	assert.Equal(t, "static-frame-2.13.0", *digest[2].Package)
	assert.Equal(t, "static_frame==2.1.0", *digest[2].Dependency)
	assert.Equal(t, validation.ExplainInvalid, digest[2].Explain)
}

func TestRecordsAreSorted(t *testing.T) {
	m := mustManifest(t, "zeta>=1", "Alpha>=5", "mid>=1")
	inv := inventory(
		pkg.New("beta", "2.0"),
		pkg.New("beta", "10.0"),
		pkg.New("alpha", "1.0"),
		pkg.New("Zeta", "0.5"),
	)

	report := validation.Validate(m, inv, validation.Flags{})

	var names []string
	for _, r := range report.Records {
		names = append(names, describe(r))
	}
	assert.Equal(t, []string{
		"Invalid alpha-1.0",
		"Disallowed beta-2.0",
		"Disallowed beta-10.0",
		"Missing mid>=1",
		"Invalid Zeta-0.5",
	}, names)
}

func describe(r validation.Record) string {
	d := validation.ToDigest(r)
	if d.Package != nil {
		return string(d.Explain) + " " + *d.Package
	}
	return string(d.Explain) + " " + *d.Dependency
}

func TestDigestJSON(t *testing.T) {
	records := []validation.Record{
		validation.Invalid{Package: pkg.New("pk1", "0.3.0"), Specifier: specifier.MustParse("pk1>=0.2,<0.3"), Sites: []string{"/a", "/b"}},
		validation.Missing{Specifier: specifier.MustParse("pk2>=1")},
		validation.Disallowed{Package: pkg.New("foo", "9.9")},
	}
	data, err := json.Marshal(validation.Report{Records: records}.Digest())
	require.NoError(t, err)

	assert.JSONEq(t, `[
		{"package": "pk1-0.3.0", "dependency": "pk1>=0.2,<0.3", "explain": "Invalid", "sites": ["/a", "/b"]},
		{"package": null, "dependency": "pk2>=1", "explain": "Missing", "sites": null},
		{"package": "foo-9.9", "dependency": null, "explain": "Disallowed", "sites": []}
	]`, string(data))
}

func TestManyNamesConcurrently(t *testing.T) {
	var exprs []string
	inv := pkg.NewInventory()
	for i := 0; i < 500; i++ {
		name := "pk" + string(rune('a'+i%26)) + string(rune('a'+i/26))
		exprs = append(exprs, name+">=1")
		inv.Add(pkg.New(name, "0.9"), site)
	}
	m := mustManifest(t, exprs...)

	report := validation.Validate(m, inv, validation.Flags{})
	assert.Equal(t, 500, report.Len())
	for i := 1; i < report.Len(); i++ {
		assert.True(t, report.Records[i-1].Name() < report.Records[i].Name())
	}
}
