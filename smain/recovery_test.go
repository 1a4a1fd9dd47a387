/*
© 2025–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package smain

import (
	"io"
	"os"
	"strings"
	"testing"
)

// MinimalRecovery's error branch calls os.Exit(1) and so cannot be
// exercised in-process; only the success branch is testable directly.
func TestMinimalRecoveryLogsSuccessOnNilError(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Pipe error: %v", err)
	}
	orig := os.Stderr
	os.Stderr = w
	defer func() { os.Stderr = orig }()

	var errp error
	MinimalRecovery(&errp)

	w.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll error: %v", err)
	}
	if !strings.Contains(string(out), "completed successfully") {
		t.Errorf("output = %q; want it to mention success", out)
	}
}
