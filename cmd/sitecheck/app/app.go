package app

import (
	"github.com/urfave/cli"

	"github.com/fossas/sitecheck/cmd/sitecheck/cmd/count"
	"github.com/fossas/sitecheck/cmd/sitecheck/cmd/derive"
	"github.com/fossas/sitecheck/cmd/sitecheck/cmd/scan"
	"github.com/fossas/sitecheck/cmd/sitecheck/cmd/search"
	"github.com/fossas/sitecheck/cmd/sitecheck/cmd/unpack"
	"github.com/fossas/sitecheck/cmd/sitecheck/cmd/validate"
	"github.com/fossas/sitecheck/cmd/sitecheck/flags"
	"github.com/fossas/sitecheck/cmd/sitecheck/version"
)

func New() *cli.App {
	return &cli.App{
		Name:                 "sitecheck",
		Usage:                "Audit the Python packages installed in site-package directories",
		Version:              version.String(),
		EnableBashCompletion: true,
		Flags:                flags.WithGlobalFlags(nil),
		Commands: []cli.Command{
			scan.Cmd,
			search.Cmd,
			count.Cmd,
			derive.Cmd,
			validate.Cmd,
			unpack.Cmd,
		},
	}
}
