/*
© 2025–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package script

import (
	"context"
	"fmt"
	"os"
)

// Print and Println write to the stdout group of ctx's enclosing
// Capture, or to the real process stdout at top level — the ambient
// redirection rule of spec §4.E ("calls to the host's print-equivalent
// are captured into the stdout group").
func Print(ctx context.Context, a ...any) {
	writeAmbientStdout(ctx, fmt.Sprint(a...))
}

// Println is [Print] with a trailing newline
func Println(ctx context.Context, a ...any) {
	writeAmbientStdout(ctx, fmt.Sprintln(a...))
}

// Printf is [Print] with fmt.Sprintf formatting
func Printf(ctx context.Context, format string, a ...any) {
	writeAmbientStdout(ctx, fmt.Sprintf(format, a...))
}

func writeAmbientStdout(ctx context.Context, s string) {
	if amb, ok := ambientFrom(ctx); ok && amb.stdout != nil {
		amb.stdout.writeDirect([]byte(s))
		return
	}
	fmt.Fprint(os.Stdout, s)
}
