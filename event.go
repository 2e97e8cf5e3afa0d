package listview

// Disposable releases a subscription, a timer or any other held resource.
type Disposable interface {
	Dispose()
}

// DisposableFunc adapts a function to Disposable. Dispose runs it once.
type DisposableFunc func()

// Dispose implements Disposable.
func (f DisposableFunc) Dispose() {
	if f != nil {
		f()
	}
}

type noopDisposable struct{}

func (noopDisposable) Dispose() {}

// None is a Disposable that does nothing.
var None Disposable = noopDisposable{}

// DisposableStore collects disposables and releases them together.
type DisposableStore struct {
	items    []Disposable
	disposed bool
}

// Add stores d. When the store is already disposed, d is disposed right away.
func (s *DisposableStore) Add(d Disposable) {
	if d == nil {
		return
	}
	if s.disposed {
		d.Dispose()
		return
	}
	s.items = append(s.items, d)
}

// Dispose releases every stored disposable in reverse order.
func (s *DisposableStore) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	for i := len(s.items) - 1; i >= 0; i-- {
		s.items[i].Dispose()
	}
	s.items = nil
}

// MutableDisposable holds at most one disposable and disposes the previous one
// when replaced.
type MutableDisposable struct {
	value Disposable
}

// Set replaces the held value.
func (m *MutableDisposable) Set(d Disposable) {
	if m.value != nil {
		m.value.Dispose()
	}
	m.value = d
}

// Clear disposes the held value.
func (m *MutableDisposable) Clear() {
	m.Set(nil)
}

// IsSet reports whether a value is held.
func (m *MutableDisposable) IsSet() bool {
	return m.value != nil
}

// Emitter is a synchronous event source.
type Emitter[E any] struct {
	listeners []*listener[E]
}

type listener[E any] struct {
	fn func(E)
}

// Subscribe registers fn and returns the handle that removes it.
func (e *Emitter[E]) Subscribe(fn func(E)) Disposable {
	l := &listener[E]{fn: fn}
	e.listeners = append(e.listeners, l)
	return DisposableFunc(func() {
		for i, other := range e.listeners {
			if other == l {
				e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
				return
			}
		}
	})
}

// Fire calls every listener with event, in subscription order.
func (e *Emitter[E]) Fire(event E) {
	listeners := append([]*listener[E](nil), e.listeners...)
	for _, l := range listeners {
		l.fn(event)
	}
}

// Latch fires only when the event differs from the last fired value.
type Latch[E comparable] struct {
	Emitter[E]
	last  E
	fired bool
}

// Fire forwards event to the listeners when it changed.
func (l *Latch[E]) Fire(event E) {
	if l.fired && l.last == event {
		return
	}
	l.fired = true
	l.last = event
	l.Emitter.Fire(event)
}
