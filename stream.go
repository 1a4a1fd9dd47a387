/*
© 2025–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package script

import (
	"io"
	"sync/atomic"

	"github.com/haraldrudell/script/serrors"
)

// OutputStream is a broadcast-once byte stream: a Script's stdout or
// stderr port (spec §3 stdout/stderr streams). [OutputStream.Consume]
// may succeed at most once — a second caller, or the ambient-stdio
// grace window racing an explicit caller, gets [serrors.ErrAlreadyConsumed].
type OutputStream struct {
	q        unboundedQueue
	consumed atomic.Bool
}

func newOutputStream() *OutputStream { return &OutputStream{} }

// push appends data to the stream; a no-op once the stream is sealed
func (s *OutputStream) push(data []byte) {
	if len(data) == 0 {
		return
	}
	s.q.push(chunk{data: data})
}

// fail terminates the stream with a read error
func (s *OutputStream) fail(err error) { s.q.push(chunk{err: err}) }

// seal ends the stream cleanly; subsequent reads see io.EOF
func (s *OutputStream) seal() { s.q.seal() }

// Consume returns an [io.Reader] over the stream's bytes. It may be
// called at most once across the stream's lifetime.
func (s *OutputStream) Consume() (r io.Reader, err error) {
	if r, ok := s.attach(); ok {
		return r, nil
	}
	return nil, serrors.ErrAlreadyConsumed
}

// IsConsumed reports whether the stream has already been claimed, by
// either an explicit Consume or ambient-stdio attachment
func (s *OutputStream) IsConsumed() bool { return s.consumed.Load() }

// attach claims the stream for internal use (ambient-stdio forwarding,
// the grace-window logic of spec §4.D) without the public error value
func (s *OutputStream) attach() (r io.Reader, claimed bool) {
	if !s.consumed.CompareAndSwap(false, true) {
		return nil, false
	}
	return &queueReader{q: &s.q}, true
}
