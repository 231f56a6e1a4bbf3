package manifest

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/pkg/errors"
	ini "gopkg.in/ini.v1"

	"github.com/fossas/sitecheck/files"
)

// FromFile reads a manifest from a requirements file, a `pyproject.toml` or a
// `setup.cfg`, chosen by file name.
func FromFile(filename string) (Manifest, error) {
	switch filepath.Base(filename) {
	case "pyproject.toml":
		return FromPyproject(filename)
	case "setup.cfg":
		return FromSetupCfg(filename)
	default:
		return FromRequirementsFile(filename)
	}
}

// FromRequirementsFile reads a pip requirements file.
func FromRequirementsFile(filename string) (Manifest, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Manifest{}, errors.Wrap(err, "could not open requirements file")
	}
	defer f.Close()

	return FromRequirements(f)
}

// FromRequirements reads requirements file lines. Blank lines, comments and
// pip options (lines starting with `-`, such as `-r other.txt`) are skipped.
//
// See https://pip.pypa.io/en/stable/reference/requirements-file-format/
func FromRequirements(r io.Reader) (Manifest, error) {
	var exprs []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := stripComment(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "-") {
			log.WithField("line", line).Debug("skipping pip option")
			continue
		}
		exprs = append(exprs, line)
	}
	if err := scanner.Err(); err != nil {
		return Manifest{}, errors.Wrap(err, "could not read requirements")
	}
	return New(exprs)
}

func stripComment(line string) string {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "#") {
		return ""
	}
	if i := strings.Index(trimmed, " #"); i >= 0 {
		trimmed = strings.TrimSpace(trimmed[:i])
	}
	return trimmed
}

type pyproject struct {
	Project struct {
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
}

// FromPyproject reads the PEP 621 `[project] dependencies` array of a
// `pyproject.toml`.
func FromPyproject(filename string) (Manifest, error) {
	var p pyproject
	err := files.ReadTOML(&p, filename)
	if err != nil {
		return Manifest{}, errors.Wrap(err, "could not read pyproject.toml")
	}
	return New(p.Project.Dependencies)
}

// FromSetupCfg reads `install_requires` from the `[options]` section of a
// `setup.cfg`.
func FromSetupCfg(filename string) (Manifest, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{AllowPythonMultilineValues: true}, filename)
	if err != nil {
		return Manifest{}, errors.Wrap(err, "could not read setup.cfg")
	}

	raw := cfg.Section("options").Key("install_requires").String()
	var exprs []string
	for _, line := range strings.Split(raw, "\n") {
		if line = stripComment(line); line != "" {
			exprs = append(exprs, line)
		}
	}
	return New(exprs)
}
