/*
© 2025–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package smain

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatRuns renders runs as a locale-formatted table (run count and
// millisecond durations grouped per [message.Printer] conventions),
// the way a program built on [Audit.Recent] would print its history.
func FormatRuns(runs []Run) string {
	p := message.NewPrinter(language.AmericanEnglish)
	var b strings.Builder
	p.Fprintf(&b, "%d runs\n", len(runs))
	for _, r := range runs {
		p.Fprintf(&b, "%s\t%s\texit %d\t%dms\n",
			r.StartedAt.Format("2006-01-02 15:04:05"), r.Name, r.ExitCode, r.DurationMs)
	}
	return b.String()
}
