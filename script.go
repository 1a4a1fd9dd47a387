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
	"runtime"
	"sync/atomic"
	"syscall"

	"github.com/haraldrudell/script/serrors"
)

// scriptState is the lifecycle state machine of spec §4.D:
// Spawning → Running → Exiting → Done, with an Errored waypoint on the
// way to Done when the exit is non-zero or an exception occurred.
type scriptState int32

const (
	stateSpawning scriptState = iota
	stateRunning
	stateExiting
	stateErrored
	stateDone
)

// ScriptComponents are the four raw ports every Script constructor
// ultimately assembles (spec §3): the primitive that
// [FromComponents] wraps and every other factory shares.
type ScriptComponents struct {
	Stdin    *StdinSink
	Stdout   *OutputStream
	Stderr   *OutputStream
	ExitCode *OneShot[ExitCode]
}

// KillFunc is the signal-delivery closure a Script's constructor
// supplies; it implements the per-variant visitor of spec §4.D's signal
// handling section. Returns false if the Script already exited or
// declined the signal.
type KillFunc func(ctx context.Context, sig os.Signal) bool

// Script is the uniform four-port unit of spec §3: a running
// subprocess, an in-process capture block, or a stream transformer,
// behind one contract.
type Script struct {
	name     string
	stdin    *StdinSink
	stdout   *OutputStream
	stderr   *OutputStream
	exitCode *OneShot[ExitCode]
	done     *DelayedOneShot[error]
	state    atomic.Int32
	kill     KillFunc
	observed atomic.Bool // set once the caller has explicitly awaited this Script's result
}

// Name returns the Script's diagnostic label
func (s *Script) Name() string { return s.name }

// Stdin returns the Script's stdin sink
func (s *Script) Stdin() *StdinSink { return s.stdin }

// Stdout returns an [io.Reader] over the Script's stdout, or
// [serrors.ErrAlreadyConsumed] if it was already claimed — either by an
// earlier call or by the ambient-stdio grace window (spec §4.D, §8
// boundary behavior).
func (s *Script) Stdout() (io.Reader, error) { return s.stdout.Consume() }

// Stderr returns an [io.Reader] over the Script's stderr, with the same
// at-most-once rule as [Script.Stdout]
func (s *Script) Stderr() (io.Reader, error) { return s.stderr.Consume() }

// ExitCode blocks until the Script has exited and returns its code
func (s *Script) ExitCode() ExitCode {
	s.observed.Store(true)
	return s.exitCode.Wait()
}

// Done blocks until the Script has fully completed (stdio propagation
// included) and returns nil on a zero exit code, or
// [serrors.ScriptFailed] otherwise (spec §3 `done`, §8 invariant 2).
func (s *Script) Done() error {
	s.observed.Store(true)
	return s.done.Wait()
}

// Success reports whether the Script exited with code 0. It blocks
// until exit like [Script.ExitCode].
func (s *Script) Success() bool { return s.ExitCode().IsSuccess() }

// Kill delivers sig (SIGTERM if sig is nil) to the Script via its
// factory-supplied visitor. Returns false if the Script already exited
// or declined the signal.
func (s *Script) Kill(ctx context.Context, sig os.Signal) bool {
	if sig == nil {
		sig = syscall.SIGTERM
	}
	if s.kill == nil || s.exitCode.IsDone() {
		return false
	}
	return s.kill(ctx, sig)
}

// String renders a one-line diagnostic: name, lifecycle state, and exit
// code if resolved — the teacher's pervasive fmt.Stringer convention.
func (s *Script) String() string {
	state := "?"
	switch scriptState(s.state.Load()) {
	case stateSpawning:
		state = "spawning"
	case stateRunning:
		state = "running"
	case stateExiting:
		state = "exiting"
	case stateErrored:
		state = "errored"
	case stateDone:
		state = "done"
	}
	if ec, ok := s.exitCode.Peek(); ok {
		return fmt.Sprintf("Script(%s state=%s exit=%d)", s.name, state, ec)
	}
	return fmt.Sprintf("Script(%s state=%s)", s.name, state)
}

// Output runs the Script to completion and returns its stdout as a
// string, trimming no trailing newline (byte pass-through per spec.md's
// Non-goals) — supplemented convenience mirroring gosh.Cmd.Stdout.
func (s *Script) Output(ctx context.Context) (string, error) {
	r, err := s.Stdout()
	if err != nil {
		return "", err
	}
	data, readErr := io.ReadAll(r)
	if doneErr := s.Done(); doneErr != nil {
		return string(data), doneErr
	}
	return string(data), readErr
}

// OutputLines runs the Script to completion and splits its stdout on
// newlines, discarding a single trailing empty line
func (s *Script) OutputLines(ctx context.Context) ([]string, error) {
	out, err := s.Output(ctx)
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// CombinedOutput runs the Script to completion and returns stdout and
// stderr merged into one string, chunks interleaved in the order they
// arrive from either stream
func (s *Script) CombinedOutput(ctx context.Context) (string, error) {
	outR, err := s.Stdout()
	if err != nil {
		return "", err
	}
	errR, err := s.Stderr()
	if err != nil {
		return "", err
	}
	group := NewStdioGroup()
	_ = group.Add(outR)
	_ = group.Add(errR)
	go group.Close()
	data, _ := io.ReadAll(group.Stream())
	if doneErr := s.Done(); doneErr != nil {
		return string(data), doneErr
	}
	return string(data), nil
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	if s[len(s)-1] == '\n' {
		s = s[:len(s)-1]
	}
	if s == "" {
		return nil
	}
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}

// FromComponents wraps a pre-built [ScriptComponents] as a Script (spec
// §4.D construction variant 6) — the primitive every other constructor
// in this package shares. kill may be nil, in which case
// [Script.Kill] always returns false.
func FromComponents(ctx context.Context, name string, c ScriptComponents, kill KillFunc) (*Script, error) {
	if err := checkAmbient(ctx); err != nil {
		return nil, err
	}
	return newScript(ctx, name, c, kill), nil
}

// newScript assembles a Script from its raw components and the ambient
// context active at creation time, and starts the grace-window and
// exit-driven bookkeeping goroutine (spec §4.D).
func newScript(ctx context.Context, name string, c ScriptComponents, kill KillFunc) *Script {
	s := &Script{
		name:     name,
		stdin:    c.Stdin,
		stdout:   c.Stdout,
		stderr:   c.Stderr,
		exitCode: c.ExitCode,
		done:     NewDelayedOneShot[error](),
		kill:     kill,
	}
	s.state.Store(int32(stateSpawning))

	ambient, hasAmbient := ambientFrom(ctx)
	if hasAmbient {
		ambient.tracker.add(s)
	}

	go s.runGraceWindow(ambient, hasAmbient)
	go s.runExitBookkeeping(ambient, hasAmbient)

	return s
}

// runGraceWindow implements spec §4.D's one-macrotask attach rule:
// after one scheduling step, any still-unconsumed stream is attached to
// the ambient stdio group (or the real process stdio at top level), and
// `done` is released to fire once the exit code also resolves.
func (s *Script) runGraceWindow(ambient *ambientContext, hasAmbient bool) {
	runtime.Gosched()

	if r, ok := s.stdout.attach(); ok {
		s.forwardAmbient(r, true, ambient, hasAmbient)
	}
	if r, ok := s.stderr.attach(); ok {
		s.forwardAmbient(r, false, ambient, hasAmbient)
	}
	s.done.Release()
}

func (s *Script) forwardAmbient(r io.Reader, isStdout bool, ambient *ambientContext, hasAmbient bool) {
	if hasAmbient {
		var group *StdioGroup
		if isStdout {
			group = ambient.stdout
		} else {
			group = ambient.stderr
		}
		if group != nil {
			_ = group.Add(r)
			return
		}
	}
	w := io.Writer(os.Stdout)
	if !isStdout {
		w = os.Stderr
	}
	go io.Copy(w, r)
}

// runExitBookkeeping waits for the exit code, closes stdin no later
// than that resolution, seals stdout/stderr shortly after, and resolves
// `done` to the value spec §3 requires.
func (s *Script) runExitBookkeeping(ambient *ambientContext, hasAmbient bool) {
	s.state.Store(int32(stateRunning))
	ec := s.exitCode.Wait()
	s.state.Store(int32(stateExiting))

	_ = s.stdin.Close()

	runtime.Gosched()
	s.stdout.seal()
	s.stderr.seal()

	var doneErr error
	if !ec.IsSuccess() {
		s.state.Store(int32(stateErrored))
		doneErr = serrors.NewScriptFailed(s.name, int(ec))
	}
	s.done.Complete(doneErr)
	s.state.Store(int32(stateDone))

	if hasAmbient {
		ambient.tracker.remove()
	}
}
