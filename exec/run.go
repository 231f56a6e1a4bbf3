// Package exec runs external commands, such as Python interpreters.
package exec

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"sort"

	"github.com/apex/log"
)

// Cmd represents a single executable invocation.
type Cmd struct {
	Name string   // Executable name.
	Argv []string // Executable arguments.

	Dir string // The Command's working directory.

	// If neither Env nor WithEnv are set, the environment is inherited from os.Environ().
	Env     map[string]string // If set, the command's environment is _set_ to Env.
	WithEnv map[string]string // If set, WithEnv is _added_ to the inherited environment.
}

// BuildExec prepares an *exec.Cmd without running it.
func BuildExec(ctx context.Context, cmd Cmd) *exec.Cmd {
	xc := exec.CommandContext(ctx, cmd.Name, cmd.Argv...)
	if cmd.Dir != "" {
		xc.Dir = cmd.Dir
	}

	if cmd.Env != nil {
		xc.Env = toEnv(cmd.Env)
	} else if cmd.WithEnv != nil {
		xc.Env = append(toEnv(cmd.WithEnv), os.Environ()...)
	} else {
		xc.Env = os.Environ()
	}
	return xc
}

// Run executes a `Cmd`.
func Run(ctx context.Context, cmd Cmd) (stdout, stderr string, err error) {
	log.WithFields(log.Fields{
		"name": cmd.Name,
		"argv": cmd.Argv,
		"dir":  cmd.Dir,
	}).Debug("running command")

	var stderrBuffer bytes.Buffer
	xc := BuildExec(ctx, cmd)
	xc.Stderr = &stderrBuffer

	stdoutBuffer, err := xc.Output()
	stdout = string(stdoutBuffer)
	stderr = stderrBuffer.String()

	log.WithFields(log.Fields{
		"stdout": stdout,
		"stderr": stderr,
	}).Debug("done running")

	return stdout, stderr, err
}

func toEnv(env map[string]string) []string {
	var out []string
	for key, val := range env {
		out = append(out, key+"="+val)
	}
	sort.Strings(out)
	return out
}
