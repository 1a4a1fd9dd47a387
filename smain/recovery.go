/*
© 2025–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package smain

import (
	"fmt"
	"os"
	"time"

	"github.com/haraldrudell/script/serrors"
)

const rfc3339s = "2006-01-02 15:04:05-07:00"

// MinimalRecovery is the deferred error handler for a program's main
// function: on a nil *errp it logs a timestamped success line and
// returns; on a non-nil *errp it logs the error (with stack trace if
// one was captured) and calls os.Exit(1). Mirrors the teacher's
// mains.MinimalRecovery.
//
//	func main() {
//	  var err error
//	  defer smain.MinimalRecovery(&err)
//	  err = run()
//	}
func MinimalRecovery(errp *error) {
	var err error
	if errp != nil {
		err = *errp
	}
	ts := time.Now().Format(rfc3339s)

	if err == nil {
		fmt.Fprintf(os.Stderr, "%s completed successfully\n", ts)
		return
	}

	fmt.Fprintf(os.Stderr, "%s error: %s\n", ts, serrors.Long(err))
	os.Exit(1)
}
