package engine

// EventWithArg is a Unity-style multi-cast event carrying one argument.
// Allows multiple listeners to subscribe to a single event.
type EventWithArg[T any] struct {
	listeners []func(T)
}

// AddListener adds a callback to be invoked when the event fires
func (e *EventWithArg[T]) AddListener(callback func(T)) {
	if callback == nil {
		return
	}
	e.listeners = append(e.listeners, callback)
}

// RemoveAllListeners clears all listeners
func (e *EventWithArg[T]) RemoveAllListeners() {
	e.listeners = nil
}

// Invoke calls all registered listeners
func (e *EventWithArg[T]) Invoke(arg T) {
	for _, listener := range e.listeners {
		if listener != nil {
			listener(arg)
		}
	}
}

// GetListenerCount returns the number of registered listeners (for debugging)
func (e *EventWithArg[T]) GetListenerCount() int {
	return len(e.listeners)
}
