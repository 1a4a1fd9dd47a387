/*
© 2025–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package smain

import (
	"context"

	"github.com/haraldrudell/script"
	"golang.org/x/sync/errgroup"
)

// RunAll runs every fn concurrently as an independent [script.Capture]
// driver, waiting for all to finish and returning the first non-nil
// error (errgroup's fail-fast convention) alongside every exit code in
// call order. A supplemental convenience for programs that fan a single
// invocation out over several named sub-tasks (SPEC_FULL.md §4).
func RunAll(ctx context.Context, fns ...func(ctx context.Context) (script.ExitCode, error)) ([]script.ExitCode, error) {
	codes := make([]script.ExitCode, len(fns))
	g, gctx := errgroup.WithContext(ctx)
	for i, fn := range fns {
		i, fn := i, fn
		g.Go(func() error {
			code, err := fn(gctx)
			codes[i] = code
			return err
		})
	}
	return codes, g.Wait()
}
