package site_test

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fossas/sitecheck/pkg"
	"github.com/fossas/sitecheck/site"
)

func mkdirs(t *testing.T, root string, names ...string) {
	for _, name := range names {
		require.NoError(t, os.MkdirAll(filepath.Join(root, name), 0755))
	}
}

func writeExe(t *testing.T, path, contents string) {
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, ioutil.WriteFile(path, []byte(contents), 0755))
}

func TestIsPythonExecutable(t *testing.T) {
	dir, err := ioutil.TempDir("", "sitecheck-exe")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	for _, name := range []string{"python", "python3", "python10.100"} {
		writeExe(t, filepath.Join(dir, name), "")
		assert.True(t, site.IsPythonExecutable(filepath.Join(dir, name)), name)
	}

	writeExe(t, filepath.Join(dir, "test.sh"), "")
	assert.False(t, site.IsPythonExecutable(filepath.Join(dir, "test.sh")))
	writeExe(t, filepath.Join(dir, "python3-config"), "")
	assert.False(t, site.IsPythonExecutable(filepath.Join(dir, "python3-config")))

	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "python2"), nil, 0644))
	assert.False(t, site.IsPythonExecutable(filepath.Join(dir, "python2")))
}

func TestPackages(t *testing.T) {
	dir, err := ioutil.TempDir("", "sitecheck-site")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	mkdirs(t, dir,
		"numpy-1.19.1.dist-info",
		"numpy",
		"pyyaml-6.0.1.dist-info",
		"PyYAML",
		"static_frame-2.1.0.dist-info",
		"not-a-package",
	)
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "fake-1.0.dist-info"), nil, 0644))

	packages, err := site.Packages(dir)
	require.NoError(t, err)
	assert.Equal(t, []pkg.Package{
		pkg.New("numpy", "1.19.1"),
		pkg.New("PyYAML", "6.0.1"),
		pkg.New("static_frame", "2.1.0"),
	}, packages)
}

func TestPackagesMissingSite(t *testing.T) {
	packages, err := site.Packages("/does/not/exist/site-packages")
	assert.NoError(t, err)
	assert.Empty(t, packages)
}

func TestFromSites(t *testing.T) {
	root, err := ioutil.TempDir("", "sitecheck-sites")
	require.NoError(t, err)
	defer os.RemoveAll(root)

	a := filepath.Join(root, "a", "site-packages")
	b := filepath.Join(root, "b", "site-packages")
	c := filepath.Join(root, "opt", "site-packages")
	mkdirs(t, a, "numpy-1.19.1.dist-info", "foo-3.0.dist-info")
	mkdirs(t, b, "numpy-1.19.1.dist-info", "numpy-2.0.0.dist-info")
	mkdirs(t, c, "bar-1.0.dist-info")

	scan, err := site.FromSites([]string{a, b, c}, site.Options{Exclude: []string{filepath.Join(root, "opt", "**")}})
	require.NoError(t, err)

	assert.Equal(t, []pkg.Package{
		pkg.New("foo", "3.0"),
		pkg.New("numpy", "1.19.1"),
		pkg.New("numpy", "2.0.0"),
	}, scan.Inventory.Packages())
	assert.Equal(t, []string{a, b}, scan.Inventory.Sites(pkg.New("numpy", "1.19.1")))
	assert.Equal(t, site.Count{Exes: 0, Sites: 2, Packages: 3}, scan.Count())
}

func TestFromExeSitePackages(t *testing.T) {
	scan := site.FromExeSitePackages("/usr/bin/python3", "/usr/lib/site-packages", []pkg.Package{
		pkg.New("numpy", "1.19.1"),
		pkg.New("requests", "1.5.1"),
	})

	assert.Equal(t, []string{"/usr/bin/python3"}, scan.Exes())
	assert.Equal(t, []string{"/usr/lib/site-packages"}, scan.Sites())
	assert.Equal(t, site.Count{Exes: 1, Sites: 1, Packages: 2}, scan.Count())
}

func TestFromExes(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script interpreters are not supported")
	}
	root, err := ioutil.TempDir("", "sitecheck-exes")
	require.NoError(t, err)
	defer os.RemoveAll(root)

	global := filepath.Join(root, "lib", "site-packages")
	user := filepath.Join(root, "user", "site-packages")
	mkdirs(t, global, "numpy-1.19.1.dist-info")
	mkdirs(t, user, "foo-3.0.dist-info")

	exe := filepath.Join(root, "bin", "python3")
	writeExe(t, exe, "#!/bin/sh\nprintf 'False\\n"+global+"\\n"+user+"\\n'\n")

	scan, err := site.FromExes(context.Background(), []string{exe}, site.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{global}, scan.ExeToSites[exe])
	assert.Equal(t, []pkg.Package{pkg.New("numpy", "1.19.1")}, scan.Inventory.Packages())

	scan, err = site.FromExes(context.Background(), []string{exe}, site.Options{UserSite: true})
	require.NoError(t, err)
	assert.Equal(t, []string{global, user}, scan.ExeToSites[exe])
	assert.Equal(t, 2, scan.Inventory.Len())
}

func TestFromExesSkipsBrokenInterpreter(t *testing.T) {
	scan, err := site.FromExes(context.Background(), []string{"/does/not/exist/python3"}, site.Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, scan.Inventory.Len())
	assert.Equal(t, 1, scan.Count().Exes)
}

func TestFromExesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := site.FromExes(ctx, []string{"/does/not/exist/python3"}, site.Options{})
	assert.Error(t, err)
}
