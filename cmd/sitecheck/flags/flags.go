// Package flags defines the command line flags shared across commands.
package flags

import (
	"fmt"

	"github.com/urfave/cli"
)

func abbr(fullname string) string {
	return fmt.Sprintf("%s, %s", fullname[0:1], fullname)
}

// WithGlobalFlags appends the flags every command accepts.
func WithGlobalFlags(f []cli.Flag) []cli.Flag {
	return append(f, Global...)
}

var (
	Global    = []cli.Flag{ExeF, UserSiteF, ExcludeF, ConfigF, NoAnsiF, DebugF}
	Exe       = "exe"
	ExeF      = cli.StringSliceFlag{Name: abbr(Exe), Usage: "python executable to scan; repeat for more than one (default: every interpreter found)"}
	UserSite  = "user-site"
	UserSiteF = cli.BoolFlag{Name: UserSite, Usage: "include user site-package directories even if disabled"}
	Exclude   = "exclude"
	ExcludeF  = cli.StringSliceFlag{Name: Exclude, Usage: "glob of site-package directories to skip; may be repeated"}
	Config    = "config"
	ConfigF   = cli.StringFlag{Name: abbr(Config), Usage: "path to config file (default: '.sitecheck.{yml,yaml}')"}
	NoAnsi    = "no-ansi"
	NoAnsiF   = cli.BoolFlag{Name: NoAnsi, Usage: "do not use interactive mode (ANSI codes)"}
	Debug     = "debug"
	DebugF    = cli.BoolFlag{Name: Debug, Usage: "print debug information to stderr"}
)

var (
	Bound     = "bound"
	BoundF    = cli.StringFlag{Name: abbr(Bound), Usage: "bound requirements file (requirements.txt, pyproject.toml or setup.cfg)"}
	Superset  = "superset"
	SupersetF = cli.BoolFlag{Name: Superset, Usage: "permit installed packages that the bound does not name"}
	Subset    = "subset"
	SubsetF   = cli.BoolFlag{Name: Subset, Usage: "permit bound packages that are not installed"}
)

var (
	Output     = "output"
	OutputF    = cli.StringFlag{Name: abbr(Output), Usage: "write to this file instead of STDOUT"}
	Delimiter  = "delimiter"
	DelimiterF = cli.StringFlag{Name: Delimiter, Value: ",", Usage: "field delimiter for delimited output"}
	JSON       = "json"
	JSONF      = cli.BoolFlag{Name: JSON, Usage: "print JSON instead of a table"}
)
