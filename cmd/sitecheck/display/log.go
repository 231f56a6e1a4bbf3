package display

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/apex/log"
	"github.com/fatih/color"
)

var (
	file     *os.File
	useColor bool
	level    = log.InfoLevel
	lock     sync.Mutex
)

// SetInteractive turns colors and ANSI control characters on or off.
func SetInteractive(interactive bool) {
	// Disable Unicode and ANSI control characters on Windows.
	if runtime.GOOS == "windows" {
		interactive = false
	}

	useSpinner = interactive
	useColor = interactive
	color.NoColor = !interactive
}

// SetDebug turns debug logging to STDERR on or off.
//
// The log file always writes debug-level entries.
func SetDebug(debug bool) {
	// This sets the `level` variable rather than calling `log.SetLevel`, because
	// calling `log.SetLevel` filters entries by level _before_ they reach the
	// handler. This is not desirable, because we always want our handler to see
	// debug entries so they can be written to the log file.
	if debug {
		level = log.DebugLevel
	} else {
		level = log.InfoLevel
	}
}

// File returns the log file name.
func File() string {
	if file == nil {
		return ""
	}
	return file.Name()
}

// Handler handles log entries. It multiplexes them into two outputs, writing
// human-readable messages to STDERR and machine-readable entries to a log file.
func Handler(entry *log.Entry) error {
	// Entries arrive from concurrent scans.
	lock.Lock()
	defer lock.Unlock()

	// Write entry to STDERR.
	if entry.Level >= level {
		if useSpinner && s.Active() {
			s.Stop()
			defer s.Start()
		}
		fmt.Fprintf(os.Stderr, "%s %s%s\n", levelString(entry.Level), entry.Message, fieldsString(entry.Fields))
	}

	// Write entry to log file.
	if file == nil {
		return nil
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	data = append(data, byte('\n'))
	_, err = file.Write(data)
	return err
}

func levelString(l log.Level) string {
	name := l.String()
	if !useColor {
		return name
	}
	switch l {
	case log.DebugLevel:
		return color.HiBlackString(name)
	case log.InfoLevel:
		return color.HiBlueString(name)
	case log.WarnLevel:
		return color.HiYellowString(name)
	default:
		return color.HiRedString(name)
	}
}

func fieldsString(fields log.Fields) string {
	if len(fields) == 0 {
		return ""
	}
	var out string
	for _, name := range fields.Names() {
		out += fmt.Sprintf(" %s=%v", name, fields.Get(name))
	}
	return out
}
