/*
© 2025–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package sexec

import (
	"context"
	"io"
	"runtime"
	"testing"
)

func TestSpawnEchoExitsZero(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX shell")
	}
	var o OS
	proc, err := o.Spawn(context.Background(), "echo", "/bin/echo", []string{"hello"}, "", nil)
	if err != nil {
		t.Fatalf("Spawn error: %v", err)
	}
	defer proc.Stdin().Close()

	out, err := io.ReadAll(proc.Stdout())
	if err != nil {
		t.Fatalf("ReadAll error: %v", err)
	}
	if string(out) != "hello\n" {
		t.Errorf("stdout = %q; want %q", out, "hello\n")
	}

	code, err := proc.Wait()
	if err != nil {
		t.Fatalf("Wait error: %v", err)
	}
	if code != 0 {
		t.Errorf("exit code = %v; want 0", code)
	}
}

func TestSpawnNonZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX shell")
	}
	var o OS
	proc, err := o.Spawn(context.Background(), "false", "/bin/sh", []string{"-c", "exit 3"}, "", nil)
	if err != nil {
		t.Fatalf("Spawn error: %v", err)
	}
	proc.Stdin().Close()
	io.ReadAll(proc.Stdout())

	code, err := proc.Wait()
	if err != nil {
		t.Fatalf("Wait error: %v", err)
	}
	if code != 3 {
		t.Errorf("exit code = %v; want 3", code)
	}
}

func TestWaitIsIdempotent(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX shell")
	}
	var o OS
	proc, err := o.Spawn(context.Background(), "true", "/bin/true", nil, "", nil)
	if err != nil {
		t.Fatalf("Spawn error: %v", err)
	}
	proc.Stdin().Close()
	io.ReadAll(proc.Stdout())

	code1, err1 := proc.Wait()
	code2, err2 := proc.Wait()
	if code1 != code2 || err1 != err2 {
		t.Errorf("Wait not idempotent: (%v,%v) vs (%v,%v)", code1, err1, code2, err2)
	}
}
