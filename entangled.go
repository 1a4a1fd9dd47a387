/*
© 2025–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package script

import (
	"runtime"
	"sync"
)

// EntangledEvent is one item flowing through an [EntangledPair]: a chunk
// of data, a production error, or the terminal close event for its
// channel.
type EntangledEvent struct {
	Data  []byte
	Err   error
	Close bool
}

// entangledQueued is an EntangledEvent labeled with the side (0 or 1)
// it belongs to, as held in the pre-drain buffer.
type entangledQueued struct {
	side int
	ev   EntangledEvent
}

type entangledState int

const (
	entangledBeforeSubscribe entangledState = iota
	entangledDraining
	entangledLive
)

// EntangledPair is two sibling event channels sharing one insertion-
// ordered buffer, used by [Buffer] to merge a capture's stdout and
// stderr while preserving submission order even across late
// subscription (spec §4.A).
//   - before either side is subscribed, all submissions queue
//   - the first subscription starts a drain: one queued event is
//     dispatched per scheduling step, in submission order, regardless
//     of which side it belongs to
//   - events submitted during drain append to the queue and
//     participate in it
//   - once the queue empties, submissions go straight to their side's
//     channel
//
// Go has no microtask queue; [runtime.Gosched] between drained events is
// the closest available analogue, chosen over a time-based tick because
// it yields the processor without introducing latency; it does not
// guarantee that another goroutine runs before the drain resumes — see
// the Open Questions in DESIGN.md.
type EntangledPair struct {
	mu    sync.Mutex
	state entangledState
	queue []entangledQueued
	sides [2]chan EntangledEvent
}

// NewEntangledPair returns a pair ready to accept submissions on sides 0
// and 1
func NewEntangledPair() *EntangledPair {
	p := &EntangledPair{}
	p.sides[0] = make(chan EntangledEvent, 256)
	p.sides[1] = make(chan EntangledEvent, 256)
	return p
}

// Submit enqueues or forwards ev for the given side (0 or 1)
func (p *EntangledPair) Submit(side int, ev EntangledEvent) {
	p.mu.Lock()
	switch p.state {
	case entangledBeforeSubscribe, entangledDraining:
		p.queue = append(p.queue, entangledQueued{side: side, ev: ev})
		p.mu.Unlock()
	case entangledLive:
		p.mu.Unlock()
		p.sides[side] <- ev
	}
}

// Subscribe returns the channel for the given side. The first
// subscription across either side starts the drain.
func (p *EntangledPair) Subscribe(side int) <-chan EntangledEvent {
	p.mu.Lock()
	if p.state == entangledBeforeSubscribe {
		p.state = entangledDraining
		p.mu.Unlock()
		go p.drain()
	} else {
		p.mu.Unlock()
	}
	return p.sides[side]
}

func (p *EntangledPair) drain() {
	for {
		p.mu.Lock()
		if len(p.queue) == 0 {
			p.state = entangledLive
			p.mu.Unlock()
			return
		}
		next := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()

		p.sides[next.side] <- next.ev
		runtime.Gosched()
	}
}
