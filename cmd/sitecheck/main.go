package main

import (
	"fmt"
	"os"

	"github.com/apex/log"

	"github.com/fossas/sitecheck/cmd/sitecheck/app"
	"github.com/fossas/sitecheck/cmd/sitecheck/display"
	"github.com/fossas/sitecheck/errors"
)

func main() {
	err := app.New().Run(os.Args)
	display.ClearProgress()
	if err == nil {
		return
	}

	switch e := err.(type) {
	case *errors.Error:
		if e.Silent() {
			os.Exit(e.Code())
		}
		log.WithField("type", e.Type).Debug("command failed")
		fmt.Fprintln(os.Stderr, e.Error())
		os.Exit(e.Code())
	default:
		fmt.Fprintln(os.Stderr, err.Error())
		if f := display.File(); f != "" {
			fmt.Fprintf(os.Stderr, "\nDebug logs are in %s\n", f)
		}
		os.Exit(1)
	}
}
