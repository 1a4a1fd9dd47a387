/*
© 2025–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package script

import (
	"testing"
	"time"
)

func TestAwaitableIsClosedFalseInitially(t *testing.T) {
	var a Awaitable
	if a.IsClosed() {
		t.Error("zero-value Awaitable reports IsClosed before Close")
	}
}

func TestAwaitableCloseUnblocksCh(t *testing.T) {
	var a Awaitable
	ch := a.Ch()
	go a.Close()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("Ch did not close after Close")
	}
	if !a.IsClosed() {
		t.Error("IsClosed false after Close")
	}
}

func TestAwaitableCloseIsIdempotent(t *testing.T) {
	var a Awaitable
	if !a.Close() {
		t.Error("first Close() returned false")
	}
	if a.Close() {
		t.Error("second Close() returned true; want false")
	}
}

func TestAwaitableChBeforeAndAfterCloseAreSameChannel(t *testing.T) {
	var a Awaitable
	before := a.Ch()
	a.Close()
	after := a.Ch()
	select {
	case <-before:
	default:
		t.Error("channel obtained before Close did not close")
	}
	select {
	case <-after:
	default:
		t.Error("channel obtained after Close is not already closed")
	}
}
