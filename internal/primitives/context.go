// ExtendedState is the optional, thread-safe key-value store a machine's
// guards and actions may use to carry data that outlives a single event
// (UML's "extended state variables"). The core itself never reads or writes
// it; it is plumbed through so guard/action closures built by the builder
// package have somewhere to keep data without reaching for a package global.
package primitives

import "sync"

// ExtendedState is a thread-safe key-value store backed by sync.Map.
type ExtendedState struct {
	data sync.Map
}

// NewExtendedState creates an empty ExtendedState.
func NewExtendedState() *ExtendedState {
	return &ExtendedState{}
}

// Get retrieves a value by key. Safe for concurrent reads.
func (c *ExtendedState) Get(key string) (any, bool) {
	return c.data.Load(key)
}

// Set stores a value by key. Safe for concurrent use.
func (c *ExtendedState) Set(key string, val any) {
	c.data.Store(key, val)
}

// Delete removes a key-value pair. Safe for concurrent use.
func (c *ExtendedState) Delete(key string) {
	c.data.Delete(key)
}

// Snapshot returns a serializable copy of the context data for persistence.
func (c *ExtendedState) Snapshot() map[string]any {
	snap := map[string]any{}
	c.data.Range(func(k, v any) bool {
		snap[k.(string)] = v
		return true
	})
	return snap
}

// Restore replaces the context data from a snapshot map.
func (c *ExtendedState) Restore(snap map[string]any) {
	c.data.Range(func(k, v any) bool {
		c.data.Delete(k)
		return true
	})
	for k, v := range snap {
		c.data.Store(k, v)
	}
}
