/*
© 2025–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package script

import (
	"bufio"
	"context"
	"io"
	"os"
	"sync"
)

// ByteTransformer reads in to completion, writing whatever it produces
// to out. The Script's exit code resolves once it returns: 0 on a nil
// error, 257 otherwise (spec §4.D construction variant 3).
type ByteTransformer func(ctx context.Context, in io.Reader, out io.Writer) error

// streamWriter adapts an [OutputStream] to [io.Writer] for transformer
// output.
type streamWriter struct{ out *OutputStream }

func (w *streamWriter) Write(p []byte) (int, error) {
	data := make([]byte, len(p))
	copy(data, p)
	w.out.push(data)
	return len(p), nil
}

// FromByteTransformer constructs a Script whose stdin feeds tf and
// whose stdout is whatever tf writes; stderr is always empty (spec
// §4.D variant 3). Killing the Script closes tf's input and forces
// exit 143 regardless of tf's own return value (spec §4.F).
func FromByteTransformer(ctx context.Context, name string, tf ByteTransformer) (*Script, error) {
	if err := checkAmbient(ctx); err != nil {
		return nil, err
	}

	pr, pw := io.Pipe()
	stdoutStream := newOutputStream()
	stderrStream := newOutputStream()
	stderrStream.seal()
	exitCode := NewOneShot[ExitCode]()

	c := ScriptComponents{
		Stdin:    newStdinSink(pw),
		Stdout:   stdoutStream,
		Stderr:   stderrStream,
		ExitCode: exitCode,
	}

	var killedOnce sync.Once
	killed := make(chan struct{})
	kill := func(_ context.Context, _ os.Signal) bool {
		did := false
		killedOnce.Do(func() {
			did = true
			close(killed)
			_ = pr.CloseWithError(io.ErrClosedPipe)
		})
		return did
	}

	go func() {
		err := tf(ctx, pr, &streamWriter{out: stdoutStream})
		stdoutStream.seal()

		select {
		case <-killed:
			exitCode.Resolve(ExitSignaled)
		default:
			if err != nil {
				exitCode.Resolve(ExitUnhandledException)
			} else {
				exitCode.Resolve(ExitOK)
			}
		}
	}()

	return newScript(ctx, name, c, kill), nil
}

// LineTransformer processes one decoded input line at a time, calling
// emit zero or more times with output lines (no trailing newline) — the
// primitive behind grep/replace-style adapters (spec §4.D variant 4).
type LineTransformer func(ctx context.Context, line string, emit func(string)) error

// FromLineTransformer builds on [FromByteTransformer] with decode-by-
// lines / encode-with-newlines bracketing.
func FromLineTransformer(ctx context.Context, name string, tf LineTransformer) (*Script, error) {
	return FromByteTransformer(ctx, name, func(ctx context.Context, in io.Reader, out io.Writer) error {
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
		for scanner.Scan() {
			line := scanner.Text()
			var emitErr error
			emit := func(s string) {
				if emitErr != nil {
					return
				}
				if _, werr := io.WriteString(out, s+"\n"); werr != nil {
					emitErr = werr
				}
			}
			if err := tf(ctx, line, emit); err != nil {
				return err
			}
			if emitErr != nil {
				return emitErr
			}
		}
		return scanner.Err()
	})
}

// LineMapper transforms one line into one line; returning a non-nil
// error aborts the Script.
type LineMapper func(ctx context.Context, line string) (string, error)

// FromLineMap is the trivial reduction of [FromLineTransformer]: every
// input line maps to exactly one output line (spec §4.D variant 5).
func FromLineMap(ctx context.Context, name string, fn LineMapper) (*Script, error) {
	return FromLineTransformer(ctx, name, func(ctx context.Context, line string, emit func(string)) error {
		mapped, err := fn(ctx, line)
		if err != nil {
			return err
		}
		emit(mapped)
		return nil
	})
}
