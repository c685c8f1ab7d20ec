package cli

import (
	"os"

	"golang.org/x/term"
)

// IsTTY checks whether the given file descriptor is attached to a terminal.
func IsTTY(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// IsOutputTerminal reports whether stdout is a terminal.
func IsOutputTerminal() bool {
	return IsTTY(os.Stdout.Fd())
}
