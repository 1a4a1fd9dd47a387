/*
© 2025–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package script

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/haraldrudell/script/serrors"
)

// StdioGroup merges an unbounded, dynamically-growing set of child byte
// streams plus one synchronous writable sink into a single output
// stream (spec §4.C) — the mechanism a [Capture] block uses to combine
// its own Writeln/Print calls with the stdout/stderr of every child
// Script it spawns, in the order bytes actually arrive.
//
// Grounded on the gosh Cmd's shared-writer fan-in
// (other_examples/…gosh-cmd.go) reworked around the teacher's
// sync.Cond-based queue discipline (parl.ConduitDo) instead of
// gosh's io.MultiWriter, since StdioGroup's sink must keep accepting
// writes even while a concurrent [StdioGroup.Add] call is still
// registering a new child.
type StdioGroup struct {
	out unboundedQueue

	addMu   sync.Mutex
	closed  atomic.Bool
	childWG sync.WaitGroup
}

// NewStdioGroup returns an empty, open StdioGroup
func NewStdioGroup() *StdioGroup { return &StdioGroup{} }

// Add attaches stream as a new source copied into the merged output in
// the order its bytes are read. Returns [serrors.ErrCaptureClosed] if
// the group has already been closed.
func (g *StdioGroup) Add(stream io.Reader) error {
	if g.closed.Load() {
		return serrors.ErrCaptureClosed
	}
	g.addMu.Lock()
	if g.closed.Load() {
		g.addMu.Unlock()
		return serrors.ErrCaptureClosed
	}
	g.childWG.Add(1)
	g.addMu.Unlock()

	go g.copyChild(stream)
	return nil
}

func (g *StdioGroup) copyChild(stream io.Reader) {
	defer g.childWG.Done()
	buf := make([]byte, 32*1024)
	for {
		n, err := stream.Read(buf)
		if n > 0 {
			data := make([]byte, n)
			copy(data, buf[:n])
			g.out.push(chunk{data: data})
		}
		if err != nil {
			if err != io.EOF {
				g.out.push(chunk{err: err})
			}
			return
		}
	}
}

// Sink returns the group's control writer. Writes through it are
// interleaved into the merged output at the point they occur; closing
// the returned writer never closes the group — only [StdioGroup.Close]
// does.
func (g *StdioGroup) Sink() io.WriteCloser { return &groupSink{g: g} }

type groupSink struct{ g *StdioGroup }

func (s *groupSink) Write(p []byte) (n int, err error) {
	s.g.writeDirect(p)
	return len(p), nil
}

// Close is a no-op: the control sink never closes its StdioGroup
func (s *groupSink) Close() error { return nil }

// Writeln writes fmt.Sprint(object) plus a trailing newline straight
// into the merged output. It succeeds even if the sink has been closed
// or a concurrent [StdioGroup.Add] is mid-registration, since both of
// those only gate the sink wrapper and the child registry — never the
// underlying queue.
func (g *StdioGroup) Writeln(object any) { g.writeDirect([]byte(fmt.Sprint(object) + "\n")) }

func (g *StdioGroup) writeDirect(p []byte) {
	if len(p) == 0 {
		return
	}
	data := make([]byte, len(p))
	copy(data, p)
	g.out.push(chunk{data: data})
}

// Close stops accepting new children and seals the merged output once
// every already-registered child stream has finished copying.
func (g *StdioGroup) Close() {
	if !g.closed.CompareAndSwap(false, true) {
		return
	}
	g.addMu.Lock()
	g.addMu.Unlock()
	g.childWG.Wait()
	g.out.seal()
}

// Stream returns the single merged [io.Reader]; it admits only one
// consumer for the lifetime of the group.
func (g *StdioGroup) Stream() io.Reader { return &queueReader{q: &g.out} }

// AsOutputStream adapts the group's merged stream into an
// [OutputStream], giving it the same broadcast-once Consume semantics
// as a regular Script stdout/stderr port. Used to back the stdout and
// stderr of the Script a [Capture] block produces, since that Script's
// output IS the ambient stdio group's merged content.
func (g *StdioGroup) AsOutputStream() *OutputStream {
	out := newOutputStream()
	go func() {
		r := g.Stream()
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
	}()
	return out
}
