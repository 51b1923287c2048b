package resource

import (
	"sync"
)

// Handle is an opaque reference to a resource in a table.
// Handle 0 is reserved and always invalid.
type Handle uint32

// Nil is the null handle sentinel.
const Nil Handle = 0

// Dropper is optionally implemented by resource values that need
// cleanup when removed from the table.
type Dropper interface {
	Drop()
}

type entry struct {
	value  any
	typeID uint32
}

// Table maps handles to values with type information.
//
// The table itself is safe for concurrent use; the values behind the
// handles are not synchronized, per the single-owner contract.
type Table struct {
	entries map[Handle]entry
	next    Handle
	mu      sync.Mutex
	closed  bool
}

// NewTable creates an empty handle table.
func NewTable() *Table {
	return &Table{
		entries: make(map[Handle]entry, 16),
	}
}

// Insert adds a value and returns its handle, or Nil if the table is
// closed.
func (t *Table) Insert(typeID uint32, value any) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return Nil
	}

	t.next++
	if t.next == Nil {
		// 2^32 allocations; latch exhaustion so a restarted counter
		// can never alias a live handle.
		t.closed = true
		return Nil
	}
	t.entries[t.next] = entry{value: value, typeID: typeID}
	return t.next
}

// Get retrieves a value by handle.
func (t *Table) Get(handle Handle) (any, bool) {
	if handle == Nil {
		return nil, false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[handle]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// GetTyped retrieves a value only if it matches the expected type.
func (t *Table) GetTyped(handle Handle, typeID uint32) (any, bool) {
	if handle == Nil {
		return nil, false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[handle]
	if !ok || e.typeID != typeID {
		return nil, false
	}
	return e.value, true
}

// Remove drops a resource and returns (value, true) if found. Values
// implementing Dropper are cleaned up.
func (t *Table) Remove(handle Handle) (any, bool) {
	if handle == Nil {
		return nil, false
	}

	t.mu.Lock()
	e, ok := t.entries[handle]
	if ok {
		delete(t.entries, handle)
	}
	t.mu.Unlock()

	if !ok {
		return nil, false
	}
	if d, isDropper := e.value.(Dropper); isDropper {
		d.Drop()
	}
	return e.value, true
}

// RemoveTyped drops a resource only if it matches the expected type.
func (t *Table) RemoveTyped(handle Handle, typeID uint32) (any, bool) {
	if handle == Nil {
		return nil, false
	}

	t.mu.Lock()
	e, ok := t.entries[handle]
	if ok && e.typeID != typeID {
		ok = false
	} else if ok {
		delete(t.entries, handle)
	}
	t.mu.Unlock()

	if !ok {
		return nil, false
	}
	if d, isDropper := e.value.(Dropper); isDropper {
		d.Drop()
	}
	return e.value, true
}

// Len returns the number of active resources.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// Close releases all resources and stops accepting inserts.
func (t *Table) Close() error {
	t.mu.Lock()
	t.closed = true
	dropped := make([]any, 0, len(t.entries))
	for h, e := range t.entries {
		dropped = append(dropped, e.value)
		delete(t.entries, h)
	}
	t.mu.Unlock()

	for _, v := range dropped {
		if d, ok := v.(Dropper); ok {
			d.Drop()
		}
	}
	return nil
}
