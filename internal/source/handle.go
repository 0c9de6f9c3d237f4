package source

// Handle is a weak reference to a table in a Registry. It never owns the
// table: Update looks the name up again and caches the result, and reads
// through an invalid handle return silence.
type Handle struct {
	reg   *Registry
	name  string
	table *Table
}

// NewHandle returns an unbound handle on reg.
func NewHandle(reg *Registry) *Handle {
	return &Handle{reg: reg}
}

// Open binds the handle to name and reports whether it resolves.
func (h *Handle) Open(name string) bool {
	h.name = name
	return h.Update()
}

// Update re-resolves the bound name. Call it before reading whenever the
// table may have been replaced, resized or deleted.
func (h *Handle) Update() bool {
	h.table = nil
	if h.reg == nil || h.name == "" {
		return false
	}
	t, ok := h.reg.Get(h.name)
	if ok {
		h.table = t
	}
	return ok
}

// Name returns the bound table name.
func (h *Handle) Name() string { return h.name }

// Valid reports the result of the last Open or Update.
func (h *Handle) Valid() bool { return h.table != nil }

// Table returns the resolved table, or nil.
func (h *Handle) Table() *Table { return h.table }

// Size returns the length of the resolved table.
func (h *Handle) Size() int {
	if h.table == nil {
		return 0
	}
	return h.table.Len()
}

// At returns sample i, or 0 when i is out of range or the handle is invalid.
func (h *Handle) At(i int) float32 {
	if h.table == nil || i < 0 || i >= len(h.table.data) {
		return 0
	}
	return h.table.data[i]
}

// Slice copies samples [from,to) clamped to the table.
func (h *Handle) Slice(from, to int) []float32 {
	if h.table == nil {
		return nil
	}
	from = max(from, 0)
	to = min(to, len(h.table.data))
	if from >= to {
		return nil
	}
	return append([]float32(nil), h.table.data[from:to]...)
}
