// Package errors provides the application-level error type used to report
// failures to users with troubleshooting instructions.
package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/mitchellh/go-wordwrap"
)

// A Type classifies who is likely responsible for an error.
type Type string

const (
	Unknown Type = "UNKNOWN" // An unknown error, usually a bug.
	User    Type = "USER"    // A mistake in user input, such as a malformed requirements file.
	Exec    Type = "EXEC"    // A failure of an external command, such as a Python interpreter.
)

// Error is an application error with instructions for the user.
type Error struct {
	Cause           error
	Type            Type
	Troubleshooting string
	Link            string
	// ExitCode is the process exit code the CLI should use. Zero means 1.
	ExitCode int
}

const width = 78

func (e *Error) Error() string {
	var b strings.Builder
	if e.Cause != nil {
		b.WriteString(e.Cause.Error())
	} else {
		fmt.Fprintf(&b, "exit status %d", e.Code())
	}
	if e.Troubleshooting != "" {
		fmt.Fprintf(&b, "\n\n%s\n%s", color.HiYellowString("TROUBLESHOOTING:"), wordwrap.WrapString(e.Troubleshooting, width))
	}
	if e.Link != "" {
		fmt.Fprintf(&b, "\n\n%s\n%s", color.HiYellowString("LINK:"), color.HiBlueString(e.Link))
	}
	if e.Type == Unknown {
		b.WriteString(ReportBugMessage)
	}
	return b.String()
}

// Code returns the process exit code for the error.
func (e *Error) Code() int {
	if e.ExitCode == 0 {
		return 1
	}
	return e.ExitCode
}

// UserError wraps a user-caused error with troubleshooting instructions.
func UserError(cause error, troubleshooting string) *Error {
	return &Error{
		Cause:           cause,
		Type:            User,
		Troubleshooting: troubleshooting,
	}
}

// UnknownError wraps an unexpected error.
func UnknownError(cause error, troubleshooting string) *Error {
	return &Error{
		Cause:           cause,
		Type:            Unknown,
		Troubleshooting: troubleshooting,
	}
}

// ExitError carries an exit code without a message, for commands whose output
// already explains the failure.
func ExitError(code int) *Error {
	return &Error{ExitCode: code}
}

// Silent reports whether the error has nothing to print.
func (e *Error) Silent() bool {
	return e.Cause == nil && e.Troubleshooting == ""
}
