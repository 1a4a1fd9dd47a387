/*
© 2025–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package script

import (
	"context"
	"sync/atomic"

	"github.com/haraldrudell/script/serrors"
)

// ambientKey is the package-private [context.Context] value key for
// this module's ambient script context. Grounded on the teacher's
// cancelContextKey (context.go / cancel-context.go): Go has no
// goroutine-local storage, so dynamically-scoped state — "what capture
// is my stdio attached to right now", "what directory and environment
// overlay am I running under" — rides a context.Context value instead.
type ambientKey struct{}

// ambientContext is the dynamically-scoped state every Script and
// Capture inherits from its enclosing Capture, if any (spec §4.D,
// §4.E). A nil *ambientContext (the zero value of the context lookup)
// means "top-level": stdio defaults to the real process's os.Stdout /
// os.Stderr, and there is no enclosing child tracker.
type ambientContext struct {
	name    string            // enclosing capture's display name, for diagnostics
	stdout  *StdioGroup        // enclosing capture's merged stdout, nil at top level
	stderr  *StdioGroup        // enclosing capture's merged stderr, nil at top level
	env     map[string]string // environment overlay beyond os.Environ, nil if none
	dir     string            // working directory overlay, "" if unset
	verbose bool
	debug   bool
	tracker *childTracker // enclosing capture's idleness tracker, nil at top level
	closed  atomic.Bool   // true once the enclosing Capture has exited (spec §4.E)
}

// withAmbient returns a child context carrying a (the tracker, stdio
// groups and overlays of one Capture block)
func withAmbient(parent context.Context, a *ambientContext) context.Context {
	return context.WithValue(parent, ambientKey{}, a)
}

// ambientFrom retrieves the nearest enclosing ambientContext, if any
func ambientFrom(ctx context.Context) (a *ambientContext, ok bool) {
	a, ok = ctx.Value(ambientKey{}).(*ambientContext)
	return
}

// ambientEnv returns the environment overlay in effect for ctx, or nil
// if none has been set by an enclosing Capture
func ambientEnv(ctx context.Context) map[string]string {
	if a, ok := ambientFrom(ctx); ok {
		return a.env
	}
	return nil
}

// ambientDir returns the working-directory overlay in effect for ctx,
// or "" if none has been set
func ambientDir(ctx context.Context) string {
	if a, ok := ambientFrom(ctx); ok {
		return a.dir
	}
	return ""
}

// IsVerbose reports whether the enclosing Capture, if any, has verbose
// tracing enabled
func IsVerbose(ctx context.Context) bool {
	a, ok := ambientFrom(ctx)
	return ok && a.verbose
}

// IsDebug reports whether the enclosing Capture, if any, has debug
// tracing enabled
func IsDebug(ctx context.Context) bool {
	a, ok := ambientFrom(ctx)
	return ok && a.debug
}

// checkAmbient returns [serrors.ErrCaptureClosed] if ctx's enclosing
// Capture, if any, has already exited — the gate every Script
// constructor applies before registering a new child (spec §4.E, §8
// boundary behavior 5).
func checkAmbient(ctx context.Context) error {
	if a, ok := ambientFrom(ctx); ok && a.closed.Load() {
		return serrors.ErrCaptureClosed
	}
	return nil
}

// WithEnv returns a context whose environment overlay is overlay merged
// over ctx's current overlay when includeParent is true, or over an
// empty overlay when it is false (the real process environment is never
// copied into the overlay itself), without opening a new
// Capture frame — the `with_env` scoping primitive of spec §6. A nil
// map value in overlay deletes that key from the inherited overlay,
// matching the external env-overlay interface's delete semantics. This
// is the context hook [github.com/haraldrudell/script/senv.With] uses;
// senv computes the final map, this function only threads it through.
func WithEnv(ctx context.Context, overlay map[string]*string, includeParent bool) context.Context {
	parent, hasParent := ambientFrom(ctx)
	next := &ambientContext{}
	if hasParent {
		next.name = parent.name
		next.stdout = parent.stdout
		next.stderr = parent.stderr
		next.dir = parent.dir
		next.verbose = parent.verbose
		next.debug = parent.debug
		next.tracker = parent.tracker
		next.closed.Store(parent.closed.Load())
	}
	base := map[string]string{}
	if includeParent && hasParent {
		for k, v := range parent.env {
			base[k] = v
		}
	}
	for k, v := range overlay {
		if v == nil {
			delete(base, k)
			continue
		}
		base[k] = *v
	}
	next.env = base
	return withAmbient(ctx, next)
}
