/*
© 2025–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package script

import (
	"context"
	"io"
)

// Xargs batches args into groups of at most maxArgs (all of args in one
// batch if maxArgs <= 0) and calls fn once per batch, sequentially, as
// a [Capture] block (spec §8 scenario 6, supplemented per SPEC_FULL.md
// — mirrors xargs(1)). A failing fn aborts immediately and no further
// batch runs; the exit code is 257, or the failed Script's own exit code
// when fn returns a ScriptFailed error, since that is exactly how a
// capture callback's returned error is already handled.
func Xargs[T any](ctx context.Context, name string, args []T, maxArgs int, fn func(ctx context.Context, batch []T) error) (*Script, error) {
	if maxArgs <= 0 {
		maxArgs = len(args)
	}
	if maxArgs <= 0 {
		maxArgs = 1
	}
	return Capture(ctx, name, func(ctx context.Context, _ io.Reader) error {
		for i := 0; i < len(args); i += maxArgs {
			end := i + maxArgs
			if end > len(args) {
				end = len(args)
			}
			if err := fn(ctx, args[i:end]); err != nil {
				return err
			}
		}
		return nil
	}, nil)
}
