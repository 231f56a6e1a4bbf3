package site

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/fossas/sitecheck/exec"
)

// sitePy prints whether the user site is enabled, then every global site
// directory, then the user site directory, one per line.
const sitePy = `import site;print(site.ENABLE_USER_SITE);print("\n".join(site.getsitepackages()));print(site.getusersitepackages())`

// Dirs asks an interpreter for its site-package directories. The user site
// directory is only included when the interpreter enables it or when
// forceUserSite is set. Directories are not checked for existence.
func Dirs(ctx context.Context, exe string, forceUserSite bool) ([]string, error) {
	stdout, stderr, err := exec.Run(ctx, exec.Cmd{
		Name: exe,
		Argv: []string{"-c", sitePy},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "could not list site directories of %s: %s", exe, strings.TrimSpace(stderr))
	}
	return parseDirs(stdout, forceUserSite), nil
}

func parseDirs(output string, forceUserSite bool) []string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) == 0 || lines[0] == "" {
		return nil
	}

	userSiteEnabled := strings.TrimSpace(lines[0]) == "True"
	var dirs []string
	for _, line := range lines[1:] {
		// An interpreter without global sites prints a blank line for them.
		if line = strings.TrimSpace(line); line != "" {
			dirs = append(dirs, line)
		}
	}
	if !userSiteEnabled && !forceUserSite && len(dirs) > 0 {
		dirs = dirs[:len(dirs)-1]
	}
	return dirs
}
