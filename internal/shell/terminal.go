// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package shell

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// clearSequence moves the cursor home and erases the display.
const clearSequence = "\x1b[H\x1b[2J"

// IsTerminal reports whether f is an interactive terminal, including Cygwin/MSYS ptys.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// clearer erases the screen when enabled. Output to pipes and files is left untouched.
type clearer struct {
	w       io.Writer
	enabled bool
}

func (c clearer) clear() {
	if c.enabled {
		_, _ = io.WriteString(c.w, clearSequence)
	}
}
