/*
© 2025–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package script

import (
	"testing"
	"time"
)

func TestEntangledPairQueuesBeforeSubscribe(t *testing.T) {
	p := NewEntangledPair()
	p.Submit(0, EntangledEvent{Data: []byte("a")})
	p.Submit(1, EntangledEvent{Data: []byte("b")})
	p.Submit(0, EntangledEvent{Close: true})
	p.Submit(1, EntangledEvent{Close: true})

	ch0 := p.Subscribe(0)
	ch1 := p.Subscribe(1)

	var got0, got1 []byte
	timeout := time.After(time.Second)
	for ch0 != nil || ch1 != nil {
		select {
		case ev, ok := <-ch0:
			if !ok {
				ch0 = nil
				continue
			}
			if ev.Close {
				ch0 = nil
				continue
			}
			got0 = append(got0, ev.Data...)
		case ev, ok := <-ch1:
			if !ok {
				ch1 = nil
				continue
			}
			if ev.Close {
				ch1 = nil
				continue
			}
			got1 = append(got1, ev.Data...)
		case <-timeout:
			t.Fatal("timed out draining entangled pair")
		}
	}
	if string(got0) != "a" {
		t.Errorf("side 0 = %q; want %q", got0, "a")
	}
	if string(got1) != "b" {
		t.Errorf("side 1 = %q; want %q", got1, "b")
	}
}

func TestEntangledPairLiveAfterSubscribe(t *testing.T) {
	p := NewEntangledPair()
	ch := p.Subscribe(0)
	p.Submit(0, EntangledEvent{Data: []byte("live")})

	select {
	case ev := <-ch:
		if string(ev.Data) != "live" {
			t.Errorf("Data = %q; want %q", ev.Data, "live")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for live event")
	}
}
