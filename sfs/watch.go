/*
© 2025–present Harald Rudell <harald.rudell@gmail.com> (https://haraldrudell.github.io/haraldrudell/)
ISC License
*/

package sfs

import (
	"context"

	"github.com/fsnotify/fsnotify"
)

// Event is one filesystem change notification, decoupled from
// fsnotify's own type so the core and other packages never need to
// import fsnotify directly (SPEC_FULL.md §4 supplement).
type Event struct {
	Path   string
	Create bool
	Write  bool
	Remove bool
	Rename bool
}

// Watch watches dir for changes until ctx is canceled, sending one
// Event per filesystem notification on the returned channel. The
// channel is closed when ctx is done or the underlying watcher fails;
// errs receives any watcher errors (buffered, best-effort).
func Watch(ctx context.Context, dir string) (events <-chan Event, errs <-chan error, err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, nil, err
	}

	out := make(chan Event, 64)
	errCh := make(chan error, 8)

	go func() {
		defer w.Close()
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				out <- Event{
					Path:   ev.Name,
					Create: ev.Op&fsnotify.Create != 0,
					Write:  ev.Op&fsnotify.Write != 0,
					Remove: ev.Op&fsnotify.Remove != 0,
					Rename: ev.Op&fsnotify.Rename != 0,
				}
			case e, ok := <-w.Errors:
				if !ok {
					return
				}
				select {
				case errCh <- e:
				default:
				}
			}
		}
	}()

	return out, errCh, nil
}
