/*
© 2025–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

// Package sregex provides regex-based line-stream transformers — grep
// and replace — composed over the root package's line-transformer
// Script factory (spec §6). stdlib regexp is the deliberate choice:
// no example repo in the pack imports a third-party regex engine, and
// this is exactly the job regexp already does.
package sregex

import (
	"context"
	"regexp"

	"github.com/haraldrudell/script"
)

// Grep builds a Script that passes through only lines matching re,
// or only lines NOT matching when invert is true.
func Grep(ctx context.Context, name string, re *regexp.Regexp, invert bool) (*script.Script, error) {
	return script.FromLineTransformer(ctx, name, func(ctx context.Context, line string, emit func(string)) error {
		if re.MatchString(line) != invert {
			emit(line)
		}
		return nil
	})
}

// Replace builds a Script that rewrites every line via re.ReplaceAllString(line, repl).
func Replace(ctx context.Context, name string, re *regexp.Regexp, repl string) (*script.Script, error) {
	return script.FromLineMap(ctx, name, func(ctx context.Context, line string) (string, error) {
		return re.ReplaceAllString(line, repl), nil
	})
}
