/*
© 2025–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

// Package sfs provides the filesystem helpers the core's capture
// blocks use for temp files, reads, writes and directory listings
// (spec §6), grounded on the teacher's pfs package's directory/entry
// naming conventions.
package sfs

import (
	"os"
	"path/filepath"
)

// TempFile creates a new empty file in dir (os.TempDir() if "") named
// pattern*, matching os.CreateTemp, and returns its path. The file is
// left open only long enough to be created.
func TempFile(dir, pattern string) (path string, err error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return "", err
	}
	path = f.Name()
	if cerr := f.Close(); cerr != nil {
		return path, cerr
	}
	return path, nil
}

// TempDir creates a new empty directory in dir (os.TempDir() if "")
// named pattern*, and returns its path.
func TempDir(dir, pattern string) (string, error) {
	return os.MkdirTemp(dir, pattern)
}

// ReadFile reads the entire contents of path.
func ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes data to path with perm, creating or truncating it.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}

// Entry is one listed directory member.
type Entry struct {
	Name  string
	IsDir bool
	Size  int64
}

// ListDir lists dir's immediate children in the order os.ReadDir
// returns them, which is sorted by Name.
func ListDir(dir string) ([]Entry, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(des))
	for _, de := range des {
		info, ierr := de.Info()
		var size int64
		if ierr == nil {
			size = info.Size()
		}
		entries = append(entries, Entry{Name: de.Name(), IsDir: de.IsDir(), Size: size})
	}
	return entries, nil
}

// JoinAbs is filepath.Join followed by filepath.Abs, the pattern the
// teacher's pfs package uses throughout for path normalization before
// filesystem operations (abs-eval.go).
func JoinAbs(dir, name string) (string, error) {
	return filepath.Abs(filepath.Join(dir, name))
}
