/*
© 2025–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package stok

import (
	"path/filepath"
)

// globIn expands pattern relative to root (root may be "" for the
// current working directory) and returns matches rewritten relative
// to pattern's own form, i.e. without root prepended when root was
// empty.
func globIn(root, pattern string) ([]string, error) {
	joined := pattern
	if root != "" && !filepath.IsAbs(pattern) {
		joined = filepath.Join(root, pattern)
	}
	matches, err := filepath.Glob(joined)
	if err != nil {
		return nil, err
	}
	if root == "" || filepath.IsAbs(pattern) || len(matches) == 0 {
		return matches, nil
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		if rel, rerr := filepath.Rel(root, m); rerr == nil {
			out[i] = rel
		} else {
			out[i] = m
		}
	}
	return out, nil
}
