/*
© 2025–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package serrors

import (
	"errors"
	"fmt"
)

// sentinel errors usable with errors.Is
var (
	// ErrCaptureClosed: a Script was registered against a capture that
	// has already completed
	ErrCaptureClosed = errors.New("capture already closed")
	// ErrAlreadyConsumed: a second subscription was attempted on a
	// Script's stdout or stderr
	ErrAlreadyConsumed = errors.New("stream already consumed")
	// ErrInvalidInput: a structurally invalid argument — an empty
	// pipeline, conflicting flags, and similar
	ErrInvalidInput = errors.New("invalid input")
)

// ScriptFailed reports that a Script terminated with a non-zero exit
// code. exit_code != 0 is an invariant of construction.
type ScriptFailed struct {
	Name     string
	ExitCode int
}

func NewScriptFailed(name string, exitCode int) error {
	if exitCode == 0 {
		panic(NewPF(fmt.Sprintf("ScriptFailed constructed with exit code 0 for %q", name)))
	}
	return Stackn(&ScriptFailed{Name: name, ExitCode: exitCode}, 1)
}

func (e *ScriptFailed) Error() string {
	return fmt.Sprintf("script %q failed with exit code %d", e.Name, e.ExitCode)
}

// SpawnFailed reports that a subprocess could not be started.
// Carries ExitCode 256 per the sentinel taxonomy.
type SpawnFailed struct {
	Name string
	Err  error
}

func NewSpawnFailed(name string, err error) error {
	return Stackn(&SpawnFailed{Name: name, Err: err}, 1)
}

func (e *SpawnFailed) Error() string {
	return fmt.Sprintf("script %q failed to start: %s", e.Name, e.Err)
}
func (e *SpawnFailed) Unwrap() error { return e.Err }

// UnhandledInCapture reports a non-Script panic or error surfacing
// directly out of a capture callback. Carries ExitCode 257.
type UnhandledInCapture struct {
	Name string
	Err  error
}

func NewUnhandledInCapture(name string, err error) error {
	return Stackn(&UnhandledInCapture{Name: name, Err: err}, 1)
}

func (e *UnhandledInCapture) Error() string {
	return fmt.Sprintf("Error in %s:\n%s", e.Name, e.Err)
}
func (e *UnhandledInCapture) Unwrap() error { return e.Err }

// IsScriptFailed extracts a *ScriptFailed from err's chain
func IsScriptFailed(err error) (sf *ScriptFailed, ok bool) {
	ok = errors.As(err, &sf)
	return
}
