// Package source provides the named sample tables a waveform view reads
// from. Tables belong to a Registry; views only hold a Handle, a name
// plus a lookup that is re-validated before every read.
package source

import "fmt"

// Table is a named mono sample buffer.
type Table struct {
	name string
	path string
	rate int
	data []float32
}

// NewTable returns a table over data. The slice is owned by the table.
func NewTable(name string, data []float32, sampleRate int) *Table {
	return &Table{name: name, data: data, rate: sampleRate}
}

func (t *Table) Name() string       { return t.name }
func (t *Table) Path() string       { return t.path }
func (t *Table) SampleRate() int    { return t.rate }
func (t *Table) Len() int           { return len(t.data) }
func (t *Table) Samples() []float32 { return t.data }

// Rename changes the table name. Call it before the table is registered.
func (t *Table) Rename(name string) { t.name = name }

// Resize truncates the table or grows it with silence.
func (t *Table) Resize(n int) {
	n = max(n, 0)
	if n <= cap(t.data) {
		old := len(t.data)
		t.data = t.data[:n]
		if n > old {
			clear(t.data[old:])
		}
		return
	}
	grown := make([]float32, n)
	copy(grown, t.data)
	t.data = grown
}

// Set writes sample i. Out of range writes are ignored.
func (t *Table) Set(i int, v float32) {
	if i >= 0 && i < len(t.data) {
		t.data[i] = v
	}
}

// Registry maps names to tables. It is used from a single goroutine.
type Registry struct {
	tables map[string]*Table
	order  []string
}

func NewRegistry() *Registry {
	return &Registry{tables: make(map[string]*Table)}
}

// Put adds t, replacing any table registered under the same name.
func (r *Registry) Put(t *Table) {
	if _, ok := r.tables[t.name]; !ok {
		r.order = append(r.order, t.name)
	}
	r.tables[t.name] = t
}

// Get looks up a table by name.
func (r *Registry) Get(name string) (*Table, bool) {
	t, ok := r.tables[name]
	return t, ok
}

// Delete removes a table. Handles bound to it become invalid.
func (r *Registry) Delete(name string) {
	if _, ok := r.tables[name]; !ok {
		return
	}
	delete(r.tables, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Names returns table names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// UniqueName returns name, or name with a numeric suffix when it is taken.
func (r *Registry) UniqueName(name string) string {
	if _, ok := r.tables[name]; !ok {
		return name
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s (%d)", name, i)
		if _, ok := r.tables[candidate]; !ok {
			return candidate
		}
	}
}

