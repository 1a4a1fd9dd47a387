/*
© 2025–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

// Package senv provides a scoped, Windows-case-insensitive environment
// overlay for the ambient script context (spec §6), built on the
// root package's dynamically-scoped [context.Context] carrier — the
// same ambient-scoping pattern the teacher uses for cancel contexts.
package senv

import (
	"context"
	"runtime"
	"strings"

	"github.com/haraldrudell/script"
)

// Overlay is a pending set of environment-variable changes: a non-nil
// value sets the variable, a nil value deletes it from whatever the
// enclosing scope inherited.
type Overlay map[string]*string

// Set returns an Overlay entry setting key to value — sugar for
// building an [Overlay] literal.
func Set(value string) *string { return &value }

// Unset is the Overlay entry that deletes an inherited key.
var Unset *string

// With runs fn with ctx's environment overlay replaced by overlay
// merged on top of the current overlay when includeParent is true, or
// on top of an empty overlay when it is false, then
// restores nothing — like the root package's Capture blocks, With does
// not itself unwind; callers scope it by only using the returned
// context within fn's call tree, matching [script.WithEnv]'s contract.
func With(ctx context.Context, overlay Overlay, includeParent bool, fn func(ctx context.Context) error) error {
	return fn(script.WithEnv(ctx, normalize(overlay), includeParent))
}

// WithContext is [With] without invoking fn directly — for callers
// building a context to pass to several Scripts at once.
func WithContext(ctx context.Context, overlay Overlay, includeParent bool) context.Context {
	return script.WithEnv(ctx, normalize(overlay), includeParent)
}

// normalize case-folds overlay keys on Windows, where environment
// variable names are case-insensitive, so that e.g. "Path" and "PATH"
// entries in the same Overlay do not silently create two variables.
func normalize(overlay Overlay) map[string]*string {
	if runtime.GOOS != "windows" {
		return overlay
	}
	out := make(map[string]*string, len(overlay))
	for k, v := range overlay {
		out[strings.ToUpper(k)] = v
	}
	return out
}
