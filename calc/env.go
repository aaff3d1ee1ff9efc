package calc

import (
	"maps"
	"slices"
)

// Env maps variable names to their current values for one run. It is not
// safe for concurrent use.
type Env struct {
	values map[string]int64
}

func NewEnv() *Env {
	return &Env{values: make(map[string]int64)}
}

func (e *Env) Get(name string) (int64, bool) {
	val, ok := e.values[name]
	return val, ok
}

// Set binds name to val, replacing any earlier binding.
func (e *Env) Set(name string, val int64) {
	e.values[name] = val
}

func (e *Env) Len() int {
	return len(e.values)
}

// Names returns the bound names in sorted order.
func (e *Env) Names() []string {
	return slices.Sorted(maps.Keys(e.values))
}

func (e *Env) Snapshot() map[string]int64 {
	return maps.Clone(e.values)
}
