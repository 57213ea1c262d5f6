// Package errors renders failed commands for the terminal.
package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/julianstephens/punchcal/internal/logger"
)

const prefix = "Error: "

// ExitCode is the process status of any failed command.
const ExitCode = 1

// Format prefixes err with "Error: ". Continuation lines of a multi-line
// message are indented under the first.
func Format(err error) string {
	if err == nil {
		return ""
	}
	lines := strings.Split(strings.TrimRight(err.Error(), "\n"), "\n")
	indent := strings.Repeat(" ", len(prefix))
	for i := 1; i < len(lines); i++ {
		lines[i] = indent + strings.TrimLeft(lines[i], " \t")
	}
	return prefix + strings.Join(lines, "\n")
}

// Report logs err against command and writes the formatted message to w.
func Report(w io.Writer, command string, err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "command", command, "error", err)
	fmt.Fprintln(w, Format(err))
}

// Fatal reports err on stderr and exits the process.
func Fatal(command string, err error) {
	if err == nil {
		return
	}
	Report(os.Stderr, command, err)
	os.Exit(ExitCode)
}
