package core

import "sort"

// Mapping is an insertion-ordered string map. The zero value is ready to use.
type Mapping struct {
	keys   []string
	values map[string]string
}

func NewMapping() *Mapping {
	return &Mapping{values: map[string]string{}}
}

// Set stores v under k. An existing key keeps its position.
func (m *Mapping) Set(k, v string) {
	if m.values == nil {
		m.values = map[string]string{}
	}
	if _, ok := m.values[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.values[k] = v
}

func (m *Mapping) Get(k string) (string, bool) {
	if m == nil || m.values == nil {
		return "", false
	}
	v, ok := m.values[k]
	return v, ok
}

func (m *Mapping) Has(k string) bool {
	_, ok := m.Get(k)
	return ok
}

// Delete removes k and reports whether it was present.
func (m *Mapping) Delete(k string) bool {
	if !m.Has(k) {
		return false
	}
	delete(m.values, k)
	for i, key := range m.keys {
		if key == k {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return true
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

func (m *Mapping) Clone() *Mapping {
	out := NewMapping()
	if m == nil {
		return out
	}
	for _, k := range m.keys {
		out.Set(k, m.values[k])
	}
	return out
}

// Map returns an unordered copy.
func (m *Mapping) Map() map[string]string {
	out := make(map[string]string, m.Len())
	if m == nil {
		return out
	}
	for k, v := range m.values {
		out[k] = v
	}
	return out
}

// FromMap builds a mapping from m with keys in sorted order.
func FromMap(m map[string]string) *Mapping {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := NewMapping()
	for _, k := range keys {
		out.Set(k, m[k])
	}
	return out
}
