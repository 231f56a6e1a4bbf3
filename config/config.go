// Package config implements application-level configuration functionality.
//
// It works by loading configuration sources (CLI flags, an optional
// `.sitecheck.yml` file and environment variables) and providing functions
// which compute relevant configuration values from these sources.
//
// Each value has its own computation strategy, so it is always clear which
// source set a particular value.
package config

import (
	"github.com/apex/log"
	"github.com/urfave/cli"

	"github.com/fossas/sitecheck/cmd/sitecheck/flags"
)

var (
	ctx      *cli.Context
	file     File
	filename string
)

// Init initializes application-level configuration.
func Init(c *cli.Context) error {
	// First, set the CLI flags.
	ctx = c
	file = File{}
	filename = ""

	// Second, try to load a configuration file.
	f, fname, err := ReadFile(StringFlag(flags.Config))
	if err != nil {
		return err
	}
	if fname != "" {
		log.WithField("filename", fname).Debug("loaded configuration file")
	}
	file = f
	filename = fname

	return nil
}
