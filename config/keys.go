package config

import (
	"os"
	"path/filepath"

	"github.com/apex/log"
	isatty "github.com/mattn/go-isatty"
	homedir "github.com/mitchellh/go-homedir"

	"github.com/fossas/sitecheck/cmd/sitecheck/flags"
)

// Environment variables consulted after flags and the configuration file.
const (
	ExeEnv   = "SITECHECK_EXE"
	BoundEnv = "SITECHECK_BOUND"
)

/**** Global configuration keys ****/

// Interactive is true if the user desires interactive output.
func Interactive() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) && !BoolFlag(flags.NoAnsi)
}

// Debug is true if the user has requested debug-level logging.
func Debug() bool {
	return BoolFlag(flags.Debug)
}

// Filepath is the configuration file path.
func Filepath() string {
	return filename
}

/**** Scan configuration keys ****/

// Exes are the interpreters to scan. When empty, every interpreter found on
// the machine is scanned.
func Exes() []string {
	if exes := StringSliceFlag(flags.Exe); len(exes) > 0 {
		return expandAll(exes)
	}
	if len(file.Exe) > 0 {
		var exes []string
		for _, exe := range file.Exe {
			exes = append(exes, file.resolve(expand(exe)))
		}
		return exes
	}
	if env := os.Getenv(ExeEnv); env != "" {
		return expandAll(filepath.SplitList(env))
	}
	return nil
}

// UserSite forces user site-package directories to be scanned.
func UserSite() bool {
	return BoolFlag(flags.UserSite) || file.UserSite
}

// ExcludeSites are globs of site-package directories to skip.
func ExcludeSites() []string {
	var patterns []string
	patterns = append(patterns, StringSliceFlag(flags.Exclude)...)
	for _, p := range file.Exclude {
		patterns = append(patterns, expand(p))
	}
	return patterns
}

/**** Validation configuration keys ****/

// Bound is the path of the bound requirements file.
func Bound() string {
	return TryStrings(
		expand(StringFlag(flags.Bound)),
		file.resolve(expand(file.Validate.Bound)),
		expand(os.Getenv(BoundEnv)),
	)
}

// PermitSuperset permits installed packages that the bound does not name.
func PermitSuperset() bool {
	return BoolFlag(flags.Superset) || file.Validate.Superset
}

// PermitSubset permits bound packages that are not installed.
func PermitSubset() bool {
	return BoolFlag(flags.Subset) || file.Validate.Subset
}

func expand(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		log.WithError(err).WithField("path", path).Debug("could not expand path")
		return path
	}
	return expanded
}

func expandAll(paths []string) []string {
	var expanded []string
	for _, p := range paths {
		expanded = append(expanded, expand(p))
	}
	return expanded
}
