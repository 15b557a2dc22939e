package game

import "log"

// Viewport reports the host window size and its changes.
type Viewport interface {
	Size() (w, h int)

	// AddResizeListener registers fn and returns a function removing it.
	AddResizeListener(fn func(w, h int)) (remove func())
}

// ViewportWatcher is a Viewport fed from the host's layout callback.
type ViewportWatcher struct {
	w, h      int
	nextID    int
	listeners map[int]func(w, h int)
}

// NewViewportWatcher creates a watcher with the initial size.
func NewViewportWatcher(w, h int) *ViewportWatcher {
	return &ViewportWatcher{
		w:         w,
		h:         h,
		listeners: make(map[int]func(w, h int)),
	}
}

// Size implements Viewport.
func (v *ViewportWatcher) Size() (int, int) {
	return v.w, v.h
}

// AddResizeListener implements Viewport.
func (v *ViewportWatcher) AddResizeListener(fn func(w, h int)) func() {
	v.nextID++
	id := v.nextID
	v.listeners[id] = fn
	return func() {
		delete(v.listeners, id)
	}
}

// Update records the current size and notifies listeners if it changed.
func (v *ViewportWatcher) Update(w, h int) {
	if w == v.w && h == v.h {
		return
	}
	log.Printf("[Viewport] resize %dx%d -> %dx%d", v.w, v.h, w, h)
	v.w, v.h = w, h
	for _, fn := range v.listeners {
		fn(w, h)
	}
}

// ListenerCount returns the number of registered listeners.
func (v *ViewportWatcher) ListenerCount() int {
	return len(v.listeners)
}
