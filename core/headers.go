package core

import "strings"

// Headers is an ordered header multimap. Names keep the casing they were
// added with, lookups and removals match any case variant.
type Headers struct {
	entries []headerEntry
}

type headerEntry struct {
	Name  string
	Value string
}

// NewHeaders make an empty multimap
func NewHeaders() *Headers {
	return &Headers{}
}

// Add append a value under name, keeping earlier values
func (h *Headers) Add(name, value string) {
	h.entries = append(h.entries, headerEntry{Name: name, Value: value})
}

// Set replace every value stored under any case variant of name
func (h *Headers) Set(name, value string) {
	h.Del(name)
	h.Add(name, value)
}

// Get returns the ordered values for name, nil if never set
func (h *Headers) Get(name string) []string {
	var values []string
	for _, e := range h.entries {
		if strings.EqualFold(e.Name, name) {
			values = append(values, e.Value)
		}
	}
	return values
}

// Has report whether at least one value is stored under name
func (h *Headers) Has(name string) bool {
	for _, e := range h.entries {
		if strings.EqualFold(e.Name, name) {
			return true
		}
	}
	return false
}

// Del remove every value stored under any case variant of name
func (h *Headers) Del(name string) {
	kept := h.entries[:0]
	for _, e := range h.entries {
		if !strings.EqualFold(e.Name, name) {
			kept = append(kept, e)
		}
	}
	h.entries = kept
}

// Len number of stored values
func (h *Headers) Len() int {
	return len(h.entries)
}

// Each visit every value in insertion order with its original casing
func (h *Headers) Each(fn func(name, value string)) {
	for _, e := range h.entries {
		fn(e.Name, e.Value)
	}
}

// Clone returns an independent copy
func (h *Headers) Clone() *Headers {
	out := &Headers{entries: make([]headerEntry, len(h.entries))}
	copy(out.entries, h.entries)
	return out
}

// Map returns the full multimap keyed by the first-seen casing of each
// name, values in insertion order
func (h *Headers) Map() map[string][]string {
	out := make(map[string][]string)
	casing := make(map[string]string)
	for _, e := range h.entries {
		lower := strings.ToLower(e.Name)
		key, ok := casing[lower]
		if !ok {
			key = e.Name
			casing[lower] = key
		}
		out[key] = append(out[key], e.Value)
	}
	return out
}
