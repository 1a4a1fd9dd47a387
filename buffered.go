/*
© 2025–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package script

import (
	"context"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

type bufferMode int

const (
	bufferBoth bufferMode = iota
	bufferStderrOnly
)

// BufferedScript wraps a [Capture] so that its stdout and stderr (or,
// in stderr-only mode, stderr alone) are withheld until
// [BufferedScript.Release], at which point the buffered bytes replay in
// their original cross-stream order followed by anything produced
// since (spec §4.H). It does not itself go through the generic Script
// grace-window/seal-on-exit lifecycle, because its exposed streams may
// legitimately outlive the inner capture's exit by an arbitrary amount
// of time — exactly the case the uniform Script seal-on-exit rule does
// not anticipate.
type BufferedScript struct {
	name      string
	inner     *Script
	pair      *EntangledPair
	mode      bufferMode
	stdoutOut *OutputStream
	stderrOut *OutputStream
	once      sync.Once
	released  atomic.Bool
}

// Buffer runs cb as a capture, withholding both stdout and stderr until
// [BufferedScript.Release].
func Buffer(ctx context.Context, name string, cb CaptureFunc) (*BufferedScript, error) {
	return newBuffered(ctx, name, cb, bufferBoth)
}

// BufferStderr is [Buffer], but stdout passes through unbuffered and
// only stderr is withheld until release.
func BufferStderr(ctx context.Context, name string, cb CaptureFunc) (*BufferedScript, error) {
	return newBuffered(ctx, name, cb, bufferStderrOnly)
}

func newBuffered(ctx context.Context, name string, cb CaptureFunc, mode bufferMode) (*BufferedScript, error) {
	inner, err := Capture(ctx, name, cb, nil)
	if err != nil {
		return nil, err
	}
	stdoutR, err := inner.Stdout()
	if err != nil {
		return nil, err
	}
	stderrR, err := inner.Stderr()
	if err != nil {
		return nil, err
	}

	b := &BufferedScript{
		name:      name,
		inner:     inner,
		pair:      NewEntangledPair(),
		mode:      mode,
		stdoutOut: newOutputStream(),
		stderrOut: newOutputStream(),
	}

	if mode == bufferStderrOnly {
		go passThrough(stdoutR, b.stdoutOut)
	} else {
		go pumpIntoPair(stdoutR, b.pair, 0)
	}
	go pumpIntoPair(stderrR, b.pair, 1)

	return b, nil
}

// Name returns the underlying capture's diagnostic label
func (b *BufferedScript) Name() string { return b.name }

// Stdout returns the buffered script's exposed stdout. Before
// [BufferedScript.Release], reading it blocks (no bytes arrive); after
// release, the full buffered-then-live sequence flows.
func (b *BufferedScript) Stdout() (io.Reader, error) { return b.stdoutOut.Consume() }

// Stderr is [BufferedScript.Stdout] for the stderr port
func (b *BufferedScript) Stderr() (io.Reader, error) { return b.stderrOut.Consume() }

// ExitCode blocks for the inner capture's exit code
func (b *BufferedScript) ExitCode() ExitCode { return b.inner.ExitCode() }

// Done blocks for the inner capture's completion
func (b *BufferedScript) Done() error { return b.inner.Done() }

// Kill forwards to the inner capture's signal handling
func (b *BufferedScript) Kill(ctx context.Context, sig os.Signal) bool {
	return b.inner.Kill(ctx, sig)
}

// IsReleased reports whether Release has been called
func (b *BufferedScript) IsReleased() bool { return b.released.Load() }

// Release flushes withheld output in its original interleaved order,
// then lets further bytes flow live. Idempotent (spec §8's
// BufferedScript.release idempotence law).
func (b *BufferedScript) Release() {
	b.once.Do(func() {
		b.released.Store(true)
		if b.mode != bufferStderrOnly {
			go forwardEntangled(b.pair.Subscribe(0), b.stdoutOut)
		}
		go forwardEntangled(b.pair.Subscribe(1), b.stderrOut)
	})
}

// Silence runs cb as a capture whose stdout and stderr both drain to
// nowhere.
func Silence(ctx context.Context, name string, cb CaptureFunc) (*Script, error) {
	inner, err := Capture(ctx, name, cb, nil)
	if err != nil {
		return nil, err
	}
	if r, cerr := inner.Stdout(); cerr == nil {
		go io.Copy(io.Discard, r)
	}
	if r, cerr := inner.Stderr(); cerr == nil {
		go io.Copy(io.Discard, r)
	}
	return inner, nil
}

// SilenceStderr runs cb as a capture whose stderr drains to nowhere;
// stdout is left for the caller (or the ambient-stdio grace window) as
// normal.
func SilenceStderr(ctx context.Context, name string, cb CaptureFunc) (*Script, error) {
	inner, err := Capture(ctx, name, cb, nil)
	if err != nil {
		return nil, err
	}
	if r, cerr := inner.Stderr(); cerr == nil {
		go io.Copy(io.Discard, r)
	}
	return inner, nil
}

// SilenceUntilFailure runs cb as a buffered capture that releases
// everything — then propagates the inner error — the moment the
// callback fails, and otherwise discards it all silently.
func SilenceUntilFailure(ctx context.Context, name string, cb CaptureFunc) (*BufferedScript, error) {
	b, err := newBuffered(ctx, name, cb, bufferBoth)
	if err != nil {
		return nil, err
	}
	go func() {
		if derr := b.inner.Done(); derr != nil {
			b.Release()
		}
	}()
	return b, nil
}

func passThrough(r io.Reader, out *OutputStream) {
	buf := make([]byte, 32*1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			data := make([]byte, n)
			copy(data, buf[:n])
			out.push(data)
		}
		if err != nil {
			if err != io.EOF {
				out.fail(err)
			} else {
				out.seal()
			}
			return
		}
	}
}

func pumpIntoPair(r io.Reader, pair *EntangledPair, side int) {
	buf := make([]byte, 32*1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			data := make([]byte, n)
			copy(data, buf[:n])
			pair.Submit(side, EntangledEvent{Data: data})
		}
		if err != nil {
			if err != io.EOF {
				pair.Submit(side, EntangledEvent{Err: err})
			}
			pair.Submit(side, EntangledEvent{Close: true})
			return
		}
	}
}

func forwardEntangled(ch <-chan EntangledEvent, out *OutputStream) {
	for ev := range ch {
		switch {
		case ev.Err != nil:
			out.fail(ev.Err)
			return
		case ev.Close:
			out.seal()
			return
		default:
			out.push(ev.Data)
		}
	}
}
