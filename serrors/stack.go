/*
© 2025–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

// Package serrors provides stack-capturing errors for the script module.
//   - every error built by this package's constructors carries a call
//     stack, obtainable via [Long]; [Short] renders a one-line form. The
//     sentinel errors ([ErrCaptureClosed] and the like) are plain values
//     returned as-is, without a stack
//   - [New] [NewPF] [Errorf] [ErrorfPF] are similar to the stdlib
//     equivalents but guarantee a stack trace is attached
//   - [AppendError] accumulates multiple errors into one value
package serrors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

const (
	stackDepth    = 32
	framesToSkip0 = 3 // runtime.Callers, captureStack, the serrors public function
)

// stackError is an error decorated with a captured call stack.
//   - implements Unwrap so errors.Is / errors.As traverse through it
type stackError struct {
	err   error
	stack []uintptr
}

func (e *stackError) Error() string { return e.err.Error() }
func (e *stackError) Unwrap() error { return e.err }

// ErrorCallStacker is implemented by errors carrying a call stack
type ErrorCallStacker interface{ StackTrace() []uintptr }

func (e *stackError) StackTrace() []uintptr { return e.stack }

// HasStack detects if the error chain already carries a stack trace
func HasStack(err error) (hasStack bool) {
	if err == nil {
		return
	}
	var e ErrorCallStacker
	return errors.As(err, &e)
}

// Stack ensures err carries a stack trace, attaching one if absent
func Stack(err error) (err2 error) {
	if err == nil || HasStack(err) {
		return err
	}
	return Stackn(err, 1)
}

// Stackn always attaches a new stack trace to err, skipping framesToSkip
// additional frames beyond the caller of Stackn
func Stackn(err error, framesToSkip int) (err2 error) {
	if err == nil {
		return
	}
	if framesToSkip < 0 {
		framesToSkip = 0
	}
	return &stackError{err: err, stack: captureStack(framesToSkip)}
}

func captureStack(extraSkip int) []uintptr {
	var pc [stackDepth]uintptr
	n := runtime.Callers(framesToSkip0+extraSkip, pc[:])
	return append([]uintptr(nil), pc[:n]...)
}

// New is similar to [errors.New] but ensures the returned error has a
// stack trace
func New(s string) (err error) {
	return Stackn(errors.New(s), 1)
}

// NewPF is like [New] but prepends the package and function name of the
// caller — “package.Function: message”
func NewPF(s string) (err error) {
	var prefix = callerPackFunc(1)
	if s == "" {
		s = prefix
	} else {
		s = prefix + ": " + s
	}
	return Stackn(errors.New(s), 1)
}

// Errorf is similar to [fmt.Errorf] but ensures the returned error has a
// stack trace
func Errorf(format string, a ...any) (err error) {
	err = fmt.Errorf(format, a...)
	if HasStack(err) {
		return
	}
	return Stackn(err, 1)
}

// ErrorfPF is like [Errorf] but prepends the package and function name of
// the caller
func ErrorfPF(format string, a ...any) (err error) {
	err = fmt.Errorf(callerPackFunc(1)+": "+format, a...)
	if HasStack(err) {
		return
	}
	return Stackn(err, 1)
}

// callerPackFunc returns "package.Function" for the caller skip frames up
func callerPackFunc(skip int) string {
	pc, _, _, ok := runtime.Caller(skip + 1)
	if !ok {
		return "serrors"
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "serrors"
	}
	name := fn.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// Short renders a one-line message plus the innermost code location —
// no stack trace, no associated errors
func Short(err error) (s string) {
	if err == nil {
		return "OK"
	}
	var e ErrorCallStacker
	if errors.As(err, &e) {
		if frames := e.StackTrace(); len(frames) > 0 {
			fr, _ := runtime.CallersFrames(frames[:1]).Next()
			return fmt.Sprintf("%s at %s:%d", err.Error(), trimPath(fr.File), fr.Line)
		}
	}
	return err.Error()
}

// Long renders the full error chain with every stack trace found along
// it, suitable for diagnostic logging
func Long(err error) (s string) {
	if err == nil {
		return "OK"
	}
	var b strings.Builder
	b.WriteString(err.Error())
	b.WriteString("\n")
	for e := err; e != nil; e = errors.Unwrap(e) {
		se, ok := e.(*stackError)
		if !ok {
			continue
		}
		frames := runtime.CallersFrames(se.stack)
		for {
			fr, more := frames.Next()
			fmt.Fprintf(&b, "  %s\n    %s:%d\n", fr.Function, trimPath(fr.File), fr.Line)
			if !more {
				break
			}
		}
	}
	return b.String()
}

func trimPath(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}
