/*
© 2025–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

// Package smain hosts an optional wrapMain-style entry point for
// programs built on this library, executable metadata, and an
// optional SQLite-backed run-history audit trail — a supplemental
// convenience, not a core invariant (SPEC_FULL.md §4).
package smain

import (
	"fmt"
	"os"
	"time"
)

// Executable holds static program identity, set once by a program's
// main before calling [Shell], mirroring the teacher's mains.Executable.
type Executable struct {
	Program     string
	Version     string
	Description string
	Copyright   string
	License     string

	Launch time.Time
}

// Banner renders a one-line program identity header, in the teacher's
// "Program Version — Description" usage-header convention.
func (e Executable) Banner() string {
	return fmt.Sprintf("%s %s — %s", e.Program, e.Version, e.Description)
}

// Hostname returns the local host name or "?" if unavailable.
func Hostname() string {
	h, err := os.Hostname()
	if err != nil {
		return "?"
	}
	return h
}
