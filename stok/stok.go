/*
© 2025–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

// Package stok tokenizes a shell-like command line into an executable
// and its arguments, with quote/escape handling and glob expansion
// (spec §6).
package stok

import (
	"runtime"
	"strings"

	shellquote "github.com/kballard/go-shellquote"
)

// globMeta are the characters that make a token glob-eligible.
const globMeta = "*?["

// Parse tokenizes cmdline with shell quoting/escaping rules, then
// expands any token containing a glob meta-character against root
// using filepath.Glob. Glob expansion defaults to disabled on Windows,
// matching typical shell behavior where the program, not the shell,
// performs expansion.
func Parse(cmdline string, root string) (exe string, args []string, err error) {
	words, err := shellquote.Split(cmdline)
	if err != nil {
		return "", nil, err
	}
	if len(words) == 0 {
		return "", nil, nil
	}

	expanded := make([]string, 0, len(words))
	for _, w := range words {
		if runtime.GOOS != "windows" && strings.ContainsAny(w, globMeta) {
			matches, gerr := globIn(root, w)
			if gerr == nil && len(matches) > 0 {
				expanded = append(expanded, matches...)
				continue
			}
		}
		expanded = append(expanded, w)
	}

	return expanded[0], expanded[1:], nil
}
