package models

// NotAvailable is the sentinel stored for fields the external source omitted
// or returned malformed. Renderers print it verbatim instead of branching on
// absence.
const NotAvailable = "not available"

// DisplayRecord is a normalized mapping from semantic field name to rendered
// string. Fields keep insertion order so renderers can preserve the external
// API's return order. Lookups are total: a missing field reads as
// NotAvailable.
type DisplayRecord struct {
	fields map[string]string
	order  []string
}

// NewDisplayRecord returns an empty record.
func NewDisplayRecord() *DisplayRecord {
	return &DisplayRecord{fields: make(map[string]string)}
}

// Set stores a field value, keeping first-set order.
func (r *DisplayRecord) Set(field, value string) {
	if _, ok := r.fields[field]; !ok {
		r.order = append(r.order, field)
	}
	r.fields[field] = value
}

// Get returns the field value, or NotAvailable when it was never set.
func (r *DisplayRecord) Get(field string) string {
	if v, ok := r.fields[field]; ok {
		return v
	}
	return NotAvailable
}

// Has reports whether the field was set with a real (non-sentinel) value.
func (r *DisplayRecord) Has(field string) bool {
	v, ok := r.fields[field]
	return ok && v != NotAvailable
}

// Fields returns the field names in insertion order.
func (r *DisplayRecord) Fields() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of fields set on the record.
func (r *DisplayRecord) Len() int {
	return len(r.order)
}
