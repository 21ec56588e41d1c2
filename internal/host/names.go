package host

import "sync"

// NameTable interns strings. Keys start at 1 and are stable for the
// lifetime of the table.
type NameTable struct {
	mu   sync.RWMutex
	keys map[string]int
}

// NewNameTable returns an empty table.
func NewNameTable() *NameTable {
	return &NameTable{keys: make(map[string]int)}
}

func (t *NameTable) Key(name string) int {
	t.mu.RLock()
	k, ok := t.keys[name]
	t.mu.RUnlock()
	if ok {
		return k
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if k, ok := t.keys[name]; ok {
		return k
	}
	k = len(t.keys) + 1
	t.keys[name] = k
	return k
}

// Len returns the number of names in the table.
func (t *NameTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.keys)
}
