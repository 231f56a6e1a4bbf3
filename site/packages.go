package site

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/fossas/sitecheck/files"
	"github.com/fossas/sitecheck/pkg"
)

// Packages lists the packages installed in a site directory by reading its
// `*.dist-info` directories. When the site holds a source directory whose name
// matches a package case-insensitively, the package takes that directory's
// spelling. A missing site has no packages.
func Packages(dir string) ([]pkg.Package, error) {
	ok, err := files.ExistsFolder(dir)
	if err != nil || !ok {
		return nil, err
	}
	names, err := files.ReadDirNames(dir)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	sources := make(map[string]string)
	for _, name := range names {
		if strings.HasSuffix(name, pkg.DistInfoSuffix) {
			continue
		}
		if _, ok := sources[strings.ToLower(name)]; !ok {
			sources[strings.ToLower(name)] = name
		}
	}

	var packages []pkg.Package
	for _, name := range names {
		p, ok := pkg.FromDistInfo(name)
		if !ok {
			continue
		}
		if isDir, _ := files.ExistsFolder(filepath.Join(dir, name)); !isDir {
			continue
		}
		if source, ok := sources[strings.ToLower(p.Name)]; ok {
			p.Name = source
		}
		packages = append(packages, p)
	}
	return packages, nil
}
