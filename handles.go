package glint

// Handles vended to the UI library are generation-tagged slot indices
// rather than raw GPU object addresses: the low 32 bits identify a slot in
// a typed arena, the high 32 bits carry the slot's generation at insertion
// time. Releasing a handle bumps the generation, so a stale handle fails
// lookup instead of aliasing whatever resource reused the slot.

// GeometryHandle identifies compiled geometry. The zero value is invalid.
type GeometryHandle uint64

// TextureHandle identifies a GPU texture. The zero value is invalid.
type TextureHandle uint64

// FilterHandle identifies a compiled filter. The zero value is invalid.
type FilterHandle uint64

// ShaderHandle identifies a compiled shader effect. The zero value is
// invalid.
type ShaderHandle uint64

// LayerHandle identifies a layer on the render layer stack. Handles are
// stack positions, assigned 0..depth-1, and are only valid between the
// PushLayer that returned them and its matching PopLayer.
type LayerHandle int

type arenaSlot[T any] struct {
	value T
	gen   uint32
	live  bool
}

// arena is a slot map with generation tags. Slot 0 is never used so that
// handle 0 stays an invalid sentinel.
type arena[T any] struct {
	slots []arenaSlot[T]
	free  []uint32
	count int
}

func (a *arena[T]) insert(v T) uint64 {
	if len(a.slots) == 0 {
		a.slots = append(a.slots, arenaSlot[T]{})
	}
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.slots = append(a.slots, arenaSlot[T]{})
		idx = uint32(len(a.slots) - 1)
	}
	s := &a.slots[idx]
	s.value = v
	s.live = true
	a.count++
	return uint64(s.gen)<<32 | uint64(idx)
}

func (a *arena[T]) lookup(h uint64) (*T, bool) {
	idx := uint32(h)
	gen := uint32(h >> 32)
	if idx == 0 || int(idx) >= len(a.slots) {
		return nil, false
	}
	s := &a.slots[idx]
	if !s.live || s.gen != gen {
		return nil, false
	}
	return &s.value, true
}

// remove releases the handle's slot for reuse and returns its value. A
// stale or already-removed handle is a no-op.
func (a *arena[T]) remove(h uint64) (T, bool) {
	var zero T
	v, ok := a.lookup(h)
	if !ok {
		return zero, false
	}
	idx := uint32(h)
	s := &a.slots[idx]
	out := *v
	s.value = zero
	s.live = false
	s.gen++
	a.free = append(a.free, idx)
	a.count--
	return out, true
}

func (a *arena[T]) len() int {
	return a.count
}

// drain removes every live value, invoking fn on each. Used by Cleanup.
func (a *arena[T]) drain(fn func(T)) {
	for i := range a.slots {
		s := &a.slots[i]
		if s.live {
			fn(s.value)
			var zero T
			s.value = zero
			s.live = false
			s.gen++
		}
	}
	a.free = a.free[:0]
	a.slots = a.slots[:0]
	a.count = 0
}
