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

	"github.com/haraldrudell/script/serrors"
)

// Process is a started subprocess handle, the external interface the
// core's subprocess constructor consumes (spec §6 "process spawner").
// [github.com/haraldrudell/script/sexec.OS] is the production
// implementation over os/exec.
type Process interface {
	// Stdin is the process's stdin pipe
	Stdin() io.WriteCloser
	// Stdout is the process's stdout pipe
	Stdout() io.ReadCloser
	// Stderr is the process's stderr pipe
	Stderr() io.ReadCloser
	// Wait blocks until the process exits and returns its classified
	// exit code (subprocess-native, or 143 if the exec layer determined
	// the process died by signal)
	Wait() (ExitCode, error)
	// Kill delivers sig to the process; returns false if it has already
	// exited
	Kill(sig os.Signal) bool
}

// Spawner starts a subprocess; the external interface the core's
// from-spawn-factory constructor consumes (spec §6).
// [github.com/haraldrudell/script/sexec.OS] is the production
// implementation.
type Spawner interface {
	Spawn(ctx context.Context, name, exe string, args []string, dir string, env map[string]string) (Process, error)
}

// FromSpawn constructs a Script backed by a subprocess (spec §4.D
// construction variant 1). The spawner is invoked asynchronously; if it
// returns an error, or the resulting process never starts, the error
// becomes the Script's exit (256, [serrors.SpawnFailed]).
func FromSpawn(ctx context.Context, name, exe string, args []string, spawner Spawner) (*Script, error) {
	if err := checkAmbient(ctx); err != nil {
		return nil, err
	}
	dir := ambientDir(ctx)
	env := ambientEnv(ctx)

	c := ScriptComponents{
		ExitCode: NewOneShot[ExitCode](),
	}
	stdoutStream := newOutputStream()
	stderrStream := newOutputStream()
	c.Stdout = stdoutStream
	c.Stderr = stderrStream

	procCh := make(chan Process, 1)
	var pendingMu sync.Mutex
	var pendingSig struct {
		sig os.Signal
		set bool
	}

	pr, pw := io.Pipe()
	c.Stdin = newStdinSink(pw)

	kill := func(_ context.Context, sig os.Signal) bool {
		select {
		case proc := <-procCh:
			procCh <- proc
			return proc.Kill(sig)
		default:
			pendingMu.Lock()
			pendingSig.sig = sig
			pendingSig.set = true
			pendingMu.Unlock()
			return true
		}
	}

	go func() {
		proc, err := spawner.Spawn(ctx, name, exe, args, dir, env)
		if err != nil {
			stderrStream.push([]byte(serrors.NewSpawnFailed(name, err).Error() + "\n"))
			stderrStream.seal()
			stdoutStream.seal()
			c.ExitCode.Resolve(ExitSpawnFailed)
			return
		}
		procCh <- proc
		pendingMu.Lock()
		sig, set := pendingSig.sig, pendingSig.set
		pendingMu.Unlock()
		if set {
			proc.Kill(sig)
		}

		go io.Copy(proc.Stdin(), pr)

		go func() {
			buf := make([]byte, 32*1024)
			for {
				n, rerr := proc.Stdout().Read(buf)
				if n > 0 {
					data := make([]byte, n)
					copy(data, buf[:n])
					stdoutStream.push(data)
				}
				if rerr != nil {
					return
				}
			}
		}()
		go func() {
			buf := make([]byte, 32*1024)
			for {
				n, rerr := proc.Stderr().Read(buf)
				if n > 0 {
					data := make([]byte, n)
					copy(data, buf[:n])
					stderrStream.push(data)
				}
				if rerr != nil {
					return
				}
			}
		}()

		ec, waitErr := proc.Wait()
		if waitErr != nil {
			ec = ExitUnhandledException
		}
		c.ExitCode.Resolve(ec)
	}()

	return newScript(ctx, name, c, kill), nil
}
