package common

import (
	"os"

	"golang.org/x/term"
)

// IsTerminal reports whether v, a reader or writer, is a file attached to a
// terminal.
func IsTerminal(v interface{}) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
