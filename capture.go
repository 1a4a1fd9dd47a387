/*
© 2025–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package script

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/haraldrudell/script/serrors"
)

// CaptureFunc is the user code a [Capture] block runs as a virtual
// Script. stdin is what the caller writes to the resulting Script's
// stdin handle.
type CaptureFunc func(ctx context.Context, stdin io.Reader) error

// SignalFunc is a capture's optional signal handler (spec §4.D signal
// handling, Capture variant): if supplied, [Script.Kill] on the
// resulting Script invokes it instead of returning false. A panic in
// onSignal is recovered: an "Error in <name>" diagnostic is written to
// the capture's stderr and Kill reports true. Unlike a callback panic,
// it does not change the capture's exit code.
type SignalFunc func(ctx context.Context, sig os.Signal) bool

// Capture runs cb inside a new ambient context and returns a Script
// whose stdout/stderr are that context's merged stdio groups, and whose
// exit code resolves to 0 once cb has returned and every child Script
// registered inside it has completed; to [serrors.ScriptFailed] if an
// unhandled child error surfaces; or to 257 if cb itself returns a
// plain (non-Script) error or panics (spec §4.E). onSignal may be nil.
func Capture(ctx context.Context, name string, cb CaptureFunc, onSignal SignalFunc) (*Script, error) {
	if err := checkAmbient(ctx); err != nil {
		return nil, err
	}

	parent, hasParent := ambientFrom(ctx)
	amb := &ambientContext{
		name:    name,
		stdout:  NewStdioGroup(),
		stderr:  NewStdioGroup(),
		tracker: newChildTracker(),
	}
	if hasParent {
		amb.env = mergeEnv(parent.env, nil)
		amb.dir = parent.dir
		amb.verbose = parent.verbose
		amb.debug = parent.debug
	}
	childCtx := withAmbient(ctx, amb)

	pr, pw := io.Pipe()
	c := ScriptComponents{
		Stdin:    newStdinSink(pw),
		Stdout:   amb.stdout.AsOutputStream(),
		Stderr:   amb.stderr.AsOutputStream(),
		ExitCode: NewOneShot[ExitCode](),
	}

	go runCapture(childCtx, name, cb, pr, amb, c.ExitCode)

	var kill KillFunc
	if onSignal != nil {
		kill = func(ctx2 context.Context, sig os.Signal) (accepted bool) {
			defer func() {
				if r := recover(); r != nil {
					amb.stderr.Writeln(serrors.NewUnhandledInCapture(name, serrors.Errorf("panic in signal handler: %v", r)).Error())
					accepted = true
				}
			}()
			return onSignal(ctx2, sig)
		}
	}

	return newScript(ctx, name, c, kill), nil
}

func runCapture(ctx context.Context, name string, cb CaptureFunc, stdin io.Reader, amb *ambientContext, exitCode *OneShot[ExitCode]) {
	cbErr := runCallback(ctx, cb, stdin)

	amb.tracker.awaitIdle()
	amb.closed.Store(true)

	switch {
	case cbErr != nil:
		diag := serrors.NewUnhandledInCapture(name, cbErr)
		amb.stderr.Writeln(diag.Error())
		amb.stdout.Close()
		amb.stderr.Close()
		if sf, ok := serrors.IsScriptFailed(cbErr); ok {
			exitCode.Resolve(ExitCode(sf.ExitCode))
			return
		}
		exitCode.Resolve(ExitUnhandledException)
	default:
		if child, ok := amb.tracker.unhandledFailure(); ok {
			ec, _ := child.exitCode.Peek()
			amb.stderr.Writeln(fmt.Sprintf("Error in %s:\n%s", name, serrors.NewScriptFailed(child.Name(), int(ec)).Error()))
			amb.stdout.Close()
			amb.stderr.Close()
			exitCode.Resolve(ec)
			return
		}
		amb.stdout.Close()
		amb.stderr.Close()
		exitCode.Resolve(ExitOK)
	}
}

func runCallback(ctx context.Context, cb CaptureFunc, stdin io.Reader) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = serrors.Errorf("panic in capture: %v", r)
		}
	}()
	return cb(ctx, stdin)
}

// mergeEnv overlays child on top of parent, matching spec §5's
// "environment overlays merge the parent overlay unless explicitly
// cleared". A nil overlay map with non-nil parent still copies parent
// so mutation of the returned map never affects the parent's.
func mergeEnv(parent, child map[string]string) map[string]string {
	if parent == nil && child == nil {
		return nil
	}
	merged := make(map[string]string, len(parent)+len(child))
	for k, v := range parent {
		merged[k] = v
	}
	for k, v := range child {
		merged[k] = v
	}
	return merged
}
