/*
© 2025–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package script

import (
	"errors"
	"io"
	"testing"

	"github.com/haraldrudell/script/serrors"
)

func TestOutputStreamConsumeOnce(t *testing.T) {
	s := newOutputStream()
	s.push([]byte("payload"))
	s.seal()

	r, err := s.Consume()
	if err != nil {
		t.Fatalf("first Consume error: %v", err)
	}
	data, _ := io.ReadAll(r)
	if string(data) != "payload" {
		t.Errorf("data = %q; want %q", data, "payload")
	}

	if _, err := s.Consume(); !errors.Is(err, serrors.ErrAlreadyConsumed) {
		t.Errorf("second Consume error = %v; want %v", err, serrors.ErrAlreadyConsumed)
	}
	if !s.IsConsumed() {
		t.Error("IsConsumed false after Consume")
	}
}

func TestOutputStreamAttachClaimsOnce(t *testing.T) {
	s := newOutputStream()
	_, first := s.attach()
	_, second := s.attach()
	if !first {
		t.Error("first attach claimed = false")
	}
	if second {
		t.Error("second attach claimed = true")
	}
}

func TestOutputStreamFail(t *testing.T) {
	s := newOutputStream()
	wantErr := errors.New("boom")
	s.push([]byte("x"))
	s.fail(wantErr)

	r, _ := s.Consume()
	buf := make([]byte, 1)
	if _, err := r.Read(buf); err != nil {
		t.Fatalf("first Read error: %v", err)
	}
	if _, err := r.Read(buf); err != wantErr {
		t.Errorf("Read error = %v; want %v", err, wantErr)
	}
}
