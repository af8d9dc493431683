package query

// Value is a settable, subscribable piece of state with synchronous
// notification. It follows the same single-writer model as the rest
// of the library: not safe for concurrent use.
type Value[T any] struct {
	v        T
	validate func(T) error
	subs     []subscriber[T]
	nextID   int
	closed   bool
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

func newValue[T any](initial T, validate func(T) error) *Value[T] {
	return &Value[T]{v: initial, validate: validate}
}

// Get returns the current value.
func (s *Value[T]) Get() T {
	return s.v
}

// Set updates the value and synchronously notifies subscribers in
// registration order. Setting a destroyed value fails with
// ErrDestroyed; invalid values are rejected before any notification.
func (s *Value[T]) Set(v T) error {
	if s.closed {
		return ErrDestroyed
	}
	if s.validate != nil {
		if err := s.validate(v); err != nil {
			return err
		}
	}
	s.v = v
	for _, sub := range s.subs {
		sub.fn(v)
	}
	return nil
}

// Subscribe registers fn to be called on every Set. The returned func
// unregisters it. Subscribing to a destroyed value is a no-op.
func (s *Value[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	if s.closed {
		return func() {}
	}
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscriber[T]{id: id, fn: fn})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// close makes the value terminal: further Sets fail and all
// subscribers are released.
func (s *Value[T]) close() {
	s.closed = true
	s.subs = nil
}
