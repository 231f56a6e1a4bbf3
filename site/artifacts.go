package site

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/apex/log"
	"github.com/pkg/errors"
	"github.com/remeh/sizedwaitgroup"

	"github.com/fossas/sitecheck/files"
	"github.com/fossas/sitecheck/pkg"
)

// RecordFile is the name of the installed-files manifest in a dist-info
// directory.
const RecordFile = "RECORD"

// An Artifact is a file a package installed, as listed in its RECORD.
type Artifact struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
}

// Artifacts are the files one package installed into one site. Dirs holds the
// package's dist-info and source directories when an existing artifact lives
// directly in them.
type Artifacts struct {
	Package pkg.Package
	Site    string
	Files   []Artifact
	Dirs    []string
}

// ReadArtifacts reads the RECORD of p's dist-info directory in site. RECORD
// paths are relative to the site.
func ReadArtifacts(site string, p pkg.Package) (Artifacts, error) {
	distInfo, err := distInfoDir(site, p)
	if err != nil {
		return Artifacts{}, err
	}
	f, err := os.Open(filepath.Join(distInfo, RecordFile))
	if err != nil {
		return Artifacts{}, errors.Wrapf(err, "could not open %s of %s", RecordFile, p)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	a := Artifacts{Package: p, Site: site}
	observed := make(map[string]bool)
	for {
		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Artifacts{}, errors.Wrapf(err, "could not parse %s of %s", RecordFile, p)
		}
		rel := strings.TrimSpace(fields[0])
		if rel == "" {
			continue
		}
		path := filepath.Join(site, rel)
		ok, _ := files.Exists(path)
		a.Files = append(a.Files, Artifact{Path: path, Exists: ok})
		if ok {
			observed[filepath.Dir(path)] = true
		}
	}

	for _, dir := range []string{distInfo, filepath.Join(site, p.Name)} {
		if observed[dir] {
			a.Dirs = append(a.Dirs, dir)
		}
	}
	sort.Strings(a.Dirs)
	return a, nil
}

// distInfoDir finds p's dist-info directory. The package name may carry its
// source directory's spelling, so other spellings of the same key are tried.
func distInfoDir(site string, p pkg.Package) (string, error) {
	dir := filepath.Join(site, p.String()+pkg.DistInfoSuffix)
	if ok, _ := files.ExistsFolder(dir); ok {
		return dir, nil
	}
	names, err := files.ReadDirNames(site)
	if err != nil {
		return "", err
	}
	for _, name := range names {
		q, ok := pkg.FromDistInfo(name)
		if ok && q.Key() == p.Key() && q.Version.String() == p.Version.String() {
			return filepath.Join(site, name), nil
		}
	}
	return "", errors.Errorf("no dist-info directory for %s in %s", p, site)
}

// Unpack reads the artifacts of each package in every site it was found in.
// Results follow the order of packages, then sites. Packages whose RECORD
// cannot be read are logged and skipped.
func (s *Scan) Unpack(packages []pkg.Package) []Artifacts {
	type job struct {
		p    pkg.Package
		site string
	}
	var jobs []job
	for _, p := range packages {
		for _, site := range s.Inventory.Sites(p) {
			jobs = append(jobs, job{p: p, site: site})
		}
	}

	// Each job writes only its own slot.
	results := make([]*Artifacts, len(jobs))
	wg := sizedwaitgroup.New(runtime.GOMAXPROCS(0))
	for i, j := range jobs {
		wg.Add()
		go func(i int, j job) {
			defer wg.Done()
			a, err := ReadArtifacts(j.site, j.p)
			if err != nil {
				log.WithError(err).WithField("package", j.p.String()).Warn("could not read artifacts")
				return
			}
			results[i] = &a
		}(i, j)
	}
	wg.Wait()

	var unpacked []Artifacts
	for _, a := range results {
		if a != nil {
			unpacked = append(unpacked, *a)
		}
	}
	return unpacked
}
