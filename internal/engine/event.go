package engine

import "sync"

// ListenerID identifies a registered listener so it can be removed later.
type ListenerID uint64

// EventWithArg is a multi-cast event with one argument.
// Listeners may be added from any goroutine; Invoke calls them outside the lock,
// so a listener may itself add or remove listeners.
type EventWithArg[T any] struct {
	mu        sync.RWMutex
	nextID    ListenerID
	ids       []ListenerID
	listeners []func(T)
}

// AddListener adds a callback to be invoked when the event fires
func (e *EventWithArg[T]) AddListener(callback func(T)) ListenerID {
	if callback == nil {
		return 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nextID++
	e.ids = append(e.ids, e.nextID)
	e.listeners = append(e.listeners, callback)
	return e.nextID
}

// RemoveListener reports whether a listener with the given id was registered.
func (e *EventWithArg[T]) RemoveListener(id ListenerID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, existing := range e.ids {
		if existing == id {
			e.ids = append(e.ids[:i], e.ids[i+1:]...)
			e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
			return true
		}
	}
	return false
}

func (e *EventWithArg[T]) RemoveAllListeners() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ids = nil
	e.listeners = nil
}

// Invoke calls all registered listeners in registration order
func (e *EventWithArg[T]) Invoke(arg T) {
	e.mu.RLock()
	listeners := make([]func(T), len(e.listeners))
	copy(listeners, e.listeners)
	e.mu.RUnlock()

	for _, listener := range listeners {
		listener(arg)
	}
}

func (e *EventWithArg[T]) GetListenerCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.listeners)
}
