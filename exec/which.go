package exec

import (
	"context"
	"errors"

	"github.com/apex/log"
)

// Which picks the first command out of a list of candidates that runs
// successfully with arg, returning its output.
func Which(ctx context.Context, arg string, cmds ...string) (cmd string, output string, err error) {
	return WhichArgs(ctx, []string{arg}, cmds...)
}

// WhichArgs is `Which` but passes multiple arguments to each candidate.
func WhichArgs(ctx context.Context, argv []string, cmds ...string) (cmd string, output string, err error) {
	return WhichWithResolver(cmds, func(cmd string) (string, bool, error) {
		stdout, stderr, err := Run(ctx, Cmd{
			Name: cmd,
			Argv: argv,
		})
		if err != nil {
			return "", false, err
		}
		if stdout == "" {
			return stderr, true, nil
		}
		return stdout, true, nil
	})
}

// A WhichResolver takes a candidate command and returns whether to choose it.
type WhichResolver func(cmd string) (output string, ok bool, err error)

// WhichWithResolver is `Which` with a custom resolution strategy.
func WhichWithResolver(cmds []string, resolve WhichResolver) (string, string, error) {
	for _, cmd := range cmds {
		output, ok, err := resolve(cmd)
		if ok {
			return cmd, output, nil
		}
		log.WithError(err).WithField("cmd", cmd).Debug("rejected command candidate")
	}
	return "", "", errors.New("could not resolve command")
}
