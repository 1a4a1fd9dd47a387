/*
© 2025–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package script

import (
	"context"
	"io"
	"os"

	"github.com/haraldrudell/script/serrors"
)

// Pipe composes items end-to-end (spec §4.G): item i's stdout feeds
// item i+1's stdin. The composite exposes items[0]'s stdin,
// items[N-1]'s stdout and stderr; intermediate stderrs are never
// merged in. An empty items is [serrors.ErrInvalidInput]; a single item
// is returned unchanged.
//
// Pipe claims each non-terminal item's stdout (and non-initial item's
// stdin) immediately, before returning to the caller — this is expected
// to win the race against each item's own one-macrotask ambient-attach
// grace window, since that window's goroutine must still be scheduled
// and additionally yields once via runtime.Gosched before checking,
// while Pipe's claim runs synchronously on the calling goroutine. See
// DESIGN.md's Open Questions for the scheduler-portability caveat this
// carries over from spec.md §9.
func Pipe(ctx context.Context, name string, items []*Script) (*Script, error) {
	if len(items) == 0 {
		return nil, serrors.ErrInvalidInput
	}
	if len(items) == 1 {
		return items[0], nil
	}

	for i := 0; i < len(items)-1; i++ {
		src, dst := items[i], items[i+1]
		r, err := src.Stdout()
		if err != nil {
			return nil, err
		}
		go copyStage(r, dst)
	}

	exitCode := NewOneShot[ExitCode]()
	go func() {
		last := ExitOK
		for _, it := range items {
			if ec := it.ExitCode(); !ec.IsSuccess() {
				last = ec
			}
		}
		exitCode.Resolve(last)
	}()

	first, tail := items[0], items[len(items)-1]
	c := ScriptComponents{
		Stdin:    first.stdin,
		Stdout:   tail.stdout,
		Stderr:   tail.stderr,
		ExitCode: exitCode,
	}

	kill := func(ctx2 context.Context, sig os.Signal) bool {
		accepted := false
		for _, it := range items {
			if it.Kill(ctx2, sig) {
				accepted = true
			}
		}
		return accepted
	}

	return newScript(ctx, name, c, kill), nil
}

func copyStage(r io.Reader, dst *Script) {
	if _, err := io.Copy(dst.Stdin(), r); err != nil {
		dst.Stdin().Fail(err)
		return
	}
	_ = dst.Stdin().Close()
}
