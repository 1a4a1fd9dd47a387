/*
© 2025–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package script

import "testing"

func TestExitCodeIsSuccess(t *testing.T) {
	if !ExitOK.IsSuccess() {
		t.Error("ExitOK not success")
	}
	for _, ec := range []ExitCode{ExitSpawnFailed, ExitUnhandledException, ExitSignaled, 1, 127} {
		if ec.IsSuccess() {
			t.Errorf("ExitCode %d reported success", ec)
		}
	}
}
