package observable

import (
	"sort"
	"sync"
)

// Value holds a piece of mutable UI state and notifies subscribers whenever it
// changes. It is safe for concurrent use. Subscribers are invoked synchronously
// on the goroutine that performed the update, outside the internal lock, so a
// subscriber may read or update the value it observes.
type Value[T any] struct {
	mu      sync.RWMutex
	current T
	nextID  int
	subs    map[int]func(T)
}

// New constructs a Value seeded with initial.
func New[T any](initial T) *Value[T] {
	return &Value[T]{current: initial}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current
}

// Set stores value and notifies subscribers in registration order.
func (v *Value[T]) Set(value T) {
	v.mu.Lock()
	v.current = value
	listeners := v.snapshot()
	v.mu.Unlock()

	for _, fn := range listeners {
		fn(value)
	}
}

// Update applies fn to the current value and stores the result.
func (v *Value[T]) Update(fn func(T) T) {
	if fn == nil {
		return
	}
	v.mu.Lock()
	next := fn(v.current)
	v.current = next
	listeners := v.snapshot()
	v.mu.Unlock()

	for _, listener := range listeners {
		listener(next)
	}
}

// Subscribe registers fn and immediately delivers the current value, mirroring
// how state holders replay their latest emission. The returned function
// removes the subscription; calling it more than once is a no-op.
func (v *Value[T]) Subscribe(fn func(T)) (cancel func()) {
	if fn == nil {
		return func() {}
	}

	v.mu.Lock()
	if v.subs == nil {
		v.subs = make(map[int]func(T))
	}
	id := v.nextID
	v.nextID++
	v.subs[id] = fn
	current := v.current
	v.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			delete(v.subs, id)
			v.mu.Unlock()
		})
	}
}

// snapshot must be called with the lock held.
func (v *Value[T]) snapshot() []func(T) {
	if len(v.subs) == 0 {
		return nil
	}
	ids := make([]int, 0, len(v.subs))
	for id := range v.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]func(T), 0, len(ids))
	for _, id := range ids {
		out = append(out, v.subs[id])
	}
	return out
}
