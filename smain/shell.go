/*
© 2025–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package smain

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/haraldrudell/script"
	"golang.org/x/term"
)

// Shell is a wrapMain-style program driver: it runs cb as the
// program's top-level [script.Capture] block and, when audit is
// non-nil, records the run's (name, exit_code, started_at, duration)
// to the audit trail (SPEC_FULL.md §4 supplement). The Script's own
// exit code becomes Shell's return value; Shell never blocks the
// Script's completion on the audit write, which happens after Done.
// The banner is only printed when stderr is an interactive terminal,
// matching the teacher's convention of staying quiet in pipelines.
func Shell(ctx context.Context, exe Executable, audit *Audit, cb script.CaptureFunc) (script.ExitCode, error) {
	if term.IsTerminal(int(os.Stderr.Fd())) {
		fmt.Fprintln(os.Stderr, exe.Banner())
	}

	startedAt := time.Now()

	s, err := script.Capture(ctx, exe.Program, cb, nil)
	if err != nil {
		return script.ExitSpawnFailed, err
	}

	doneErr := s.Done()
	exitCode := s.ExitCode()

	if audit != nil {
		_ = audit.Record(ctx, exe.Program, int(exitCode), startedAt, time.Since(startedAt))
	}

	return exitCode, doneErr
}
