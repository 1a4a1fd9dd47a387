/*
© 2025–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package sfs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchReportsCreate(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, errs, err := Watch(ctx, dir)
	if err != nil {
		t.Fatalf("Watch error: %v", err)
	}

	path := filepath.Join(dir, "new.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				t.Fatal("events closed before observing the write")
			}
			if ev.Path == path {
				return
			}
		case e := <-errs:
			t.Fatalf("watcher error: %v", e)
		case <-timeout:
			t.Fatal("timed out waiting for a create/write event")
		}
	}
}

func TestWatchClosesEventsOnContextCancel(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())

	events, _, err := Watch(ctx, dir)
	if err != nil {
		t.Fatalf("Watch error: %v", err)
	}
	cancel()

	select {
	case _, ok := <-events:
		if ok {
			t.Error("events yielded a value after cancel instead of closing")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("events channel did not close after context cancel")
	}
}
