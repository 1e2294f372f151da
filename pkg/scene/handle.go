package scene

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidHandle is returned for a handle that was never issued.
	ErrInvalidHandle = errors.New("invalid object handle")
	// ErrStaleHandle is returned for a handle whose object was removed.
	ErrStaleHandle = errors.New("stale object handle")
	// ErrUnknownLight is returned for a light id that is not registered.
	ErrUnknownLight = errors.New("unknown light")
)

// Handle names an object in a Scene. The low 32 bits are the slot index and
// the high 32 bits the slot's generation when the handle was issued, so a
// handle outlives neither its object nor a reuse of its slot.
type Handle uint64

func newHandle(index, gen uint32) Handle {
	return Handle(uint64(gen)<<32 | uint64(index))
}

// Index returns the slot index.
func (h Handle) Index() uint32 {
	return uint32(h)
}

// Generation returns the slot generation the handle was issued for.
func (h Handle) Generation() uint32 {
	return uint32(h >> 32)
}

func (h Handle) String() string {
	return fmt.Sprintf("object %d/%d", h.Index(), h.Generation())
}

type slot[T any] struct {
	gen   uint32
	live  bool
	value T
}

// slotMap stores values behind generation-tagged handles. Freed slots are
// reused most recent first, with their generation bumped.
type slotMap[T any] struct {
	slots []slot[T]
	free  []uint32
	live  int
}

func (m *slotMap[T]) insert(v T) Handle {
	m.live++
	if n := len(m.free); n > 0 {
		idx := m.free[n-1]
		m.free = m.free[:n-1]
		s := &m.slots[idx]
		s.live = true
		s.value = v
		return newHandle(idx, s.gen)
	}
	m.slots = append(m.slots, slot[T]{live: true, value: v})
	return newHandle(uint32(len(m.slots)-1), 0)
}

func (m *slotMap[T]) lookup(h Handle) (*slot[T], error) {
	idx := h.Index()
	if int(idx) >= len(m.slots) {
		return nil, fmt.Errorf("%s: %w", h, ErrInvalidHandle)
	}
	s := &m.slots[idx]
	if s.gen != h.Generation() || !s.live {
		return nil, fmt.Errorf("%s: %w", h, ErrStaleHandle)
	}
	return s, nil
}

func (m *slotMap[T]) get(h Handle) (T, error) {
	s, err := m.lookup(h)
	if err != nil {
		var zero T
		return zero, err
	}
	return s.value, nil
}

func (m *slotMap[T]) set(h Handle, v T) error {
	s, err := m.lookup(h)
	if err != nil {
		return err
	}
	s.value = v
	return nil
}

func (m *slotMap[T]) remove(h Handle) error {
	s, err := m.lookup(h)
	if err != nil {
		return err
	}
	var zero T
	s.value = zero
	s.live = false
	s.gen++
	m.free = append(m.free, h.Index())
	m.live--
	return nil
}

// each visits live entries in slot order.
func (m *slotMap[T]) each(fn func(Handle, T)) {
	for i := range m.slots {
		s := &m.slots[i]
		if s.live {
			fn(newHandle(uint32(i), s.gen), s.value)
		}
	}
}
