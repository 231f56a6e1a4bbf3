package errors

import (
	"github.com/fatih/color"
	"github.com/mitchellh/go-wordwrap"
)

var ReportBugMessage = `

` + color.HiYellowString("REPORTING A BUG:") + `
` + wordwrap.WrapString("Please try troubleshooting before filing a bug. If the suggestions do not help you can file a bug at "+color.HiBlueString("https://github.com/fossas/sitecheck/issues/new")+".", width) + `
` + wordwrap.WrapString("Please attach the debug logs from:", width) + `

  ` + color.HiGreenString("sitecheck <cmd> --debug")

var NoBoundMessage = wordwrap.WrapString("Validation needs a bound requirements file. Provide one with --bound, set $SITECHECK_BOUND, or set validate.bound in .sitecheck.yml. To create one from the current environment, try running:", width) + `

    ` + color.HiGreenString("sitecheck derive --anchor lower --output requirements.txt")

var RequirementsMessage = wordwrap.WrapString("Each line of a bound requirements file must be a package name followed by one or more comma-separated version clauses, using the operators < <= == != > >= ~= or ===. Each package may only appear once.", width)
