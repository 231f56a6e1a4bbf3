package site

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/apex/log"
	"github.com/remeh/sizedwaitgroup"

	"github.com/fossas/sitecheck/exec"
	"github.com/fossas/sitecheck/files"
)

// An origin is a directory searched for interpreters.
type origin struct {
	dir     string
	recurse bool
}

var standardBinDirs = []string{
	"/bin",
	"/sbin",
	"/usr/bin",
	"/usr/sbin",
	"/usr/local/bin",
	"/usr/local/sbin",
}

// IsPythonExecutable reports whether path names an executable file called
// `python` optionally followed by a version made of digits and dots, such as
// `python3` or `python3.12`.
func IsPythonExecutable(path string) bool {
	name := filepath.Base(path)
	if !strings.HasPrefix(name, "python") {
		return false
	}
	for _, c := range strings.TrimPrefix(name, "python") {
		if c != '.' && (c < '0' || c > '9') {
			return false
		}
	}
	return files.Executable(path)
}

// FindExecutables searches PATH, the home directory and the standard binary
// directories for Python interpreters. Directories below the home directory
// are searched recursively, without following symlinks. The interpreter that
// `python3` resolves to is always included when one is available.
func FindExecutables(ctx context.Context) []string {
	home := os.Getenv("HOME")
	exclude := excludeDirs(home)

	found := make(map[string]bool)
	lock := sync.Mutex{}
	wg := sizedwaitgroup.New(runtime.GOMAXPROCS(0))
	for _, o := range searchOrigins(home) {
		wg.Add()
		go func(o origin) {
			defer wg.Done()
			exes := findInDir(ctx, o.dir, exclude, o.recurse)

			lock.Lock()
			defer lock.Unlock()
			for _, exe := range exes {
				found[exe] = true
			}
		}(o)
	}
	wg.Wait()

	if exe, err := DefaultExecutable(ctx); err == nil {
		found[exe] = true
	} else {
		log.WithError(err).Debug("no default interpreter")
	}

	var exes []string
	for exe := range found {
		exes = append(exes, exe)
	}
	sort.Strings(exes)
	log.WithField("count", len(exes)).Debug("found interpreters")
	return exes
}

// DefaultExecutable returns the absolute path of the interpreter that
// `python3` (or failing that, `python`) runs.
func DefaultExecutable(ctx context.Context) (string, error) {
	_, output, err := exec.WhichArgs(ctx, []string{"-c", "import sys;print(sys.executable)"}, "python3", "python")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(output), nil
}

func excludeDirs(home string) map[string]bool {
	exclude := make(map[string]bool)
	if home == "" {
		return exclude
	}
	for _, d := range []string{".cache", ".npm"} {
		exclude[filepath.Join(home, d)] = true
	}
	switch runtime.GOOS {
	case "darwin":
		for _, d := range []string{"Library", "Photos", "Downloads", ".Trash"} {
			exclude[filepath.Join(home, d)] = true
		}
	case "linux":
		exclude[filepath.Join(home, ".local", "share", "Trash")] = true
	}
	return exclude
}

func searchOrigins(home string) []origin {
	seen := make(map[origin]bool)
	var origins []origin
	add := func(o origin) {
		if o.dir == "" || seen[o] {
			return
		}
		seen[o] = true
		origins = append(origins, o)
	}

	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		add(origin{dir: dir})
	}
	if home != "" {
		add(origin{dir: home})
		names, err := files.ReadDirNames(home)
		if err != nil {
			log.WithError(err).Debug("could not read home directory")
		}
		for _, name := range names {
			dir := filepath.Join(home, name)
			if ok, _ := files.ExistsFolder(dir); ok {
				add(origin{dir: dir, recurse: true})
			}
		}
	}
	for _, dir := range standardBinDirs {
		add(origin{dir: dir})
	}
	if runtime.GOOS == "darwin" {
		add(origin{dir: "/opt/homebrew/bin"})
	}
	return origins
}

// findInDir collects interpreters in dir. A virtual environment root (a
// directory holding `pyvenv.cfg`) contributes only its `bin/python3`. The walk
// stops once ctx is done.
func findInDir(ctx context.Context, dir string, exclude map[string]bool, recurse bool) []string {
	if exclude[dir] || ctx.Err() != nil {
		return nil
	}
	if ok, _ := files.ExistsFolder(dir); !ok {
		return nil
	}

	if ok, _ := files.Exists(dir, "pyvenv.cfg"); ok {
		exe := filepath.Join(dir, "bin", "python3")
		if IsPythonExecutable(exe) {
			return []string{exe}
		}
		return nil
	}

	names, err := files.ReadDirNames(dir)
	if err != nil {
		log.WithError(err).WithField("dir", dir).Debug("could not read directory")
		return nil
	}
	var exes []string
	for _, name := range names {
		path := filepath.Join(dir, name)
		info, err := os.Lstat(path)
		if err != nil {
			continue
		}
		if recurse && info.IsDir() {
			exes = append(exes, findInDir(ctx, path, exclude, recurse)...)
		} else if IsPythonExecutable(path) {
			exes = append(exes, path)
		}
	}
	return exes
}
