package sqlqb

import "sort"

// Params is an ordered mapping of names to values. It is used both as the
// payload of INSERT and UPDATE statements (where its order decides the order
// of columns and placeholders) and as the parameter set of named-style
// queries.
type Params struct {
	keys   []string
	values map[string]interface{}
}

// NewParams creates an empty Params object
func NewParams() *Params {
	return &Params{values: make(map[string]interface{})}
}

// MapParams creates a Params object from a map. Since maps are unordered,
// keys are sorted alphabetically.
func MapParams(in map[string]interface{}) *Params {
	p := NewParams()
	for _, key := range sortKeys(in) {
		p.Set(key, in[key])
	}
	return p
}

// Set adds a value under the provided name. Setting an existing name
// replaces its value but keeps its original position.
func (p *Params) Set(name string, value interface{}) *Params {
	if p.values == nil {
		p.values = make(map[string]interface{})
	}
	if _, exists := p.values[name]; !exists {
		p.keys = append(p.keys, name)
	}
	p.values[name] = value
	return p
}

// Get returns the value stored under name, and whether it exists
func (p *Params) Get(name string) (value interface{}, ok bool) {
	if p == nil {
		return nil, false
	}
	value, ok = p.values[name]
	return value, ok
}

// Keys returns the names in insertion order
func (p *Params) Keys() []string {
	if p == nil {
		return nil
	}
	return append([]string{}, p.keys...)
}

// Values returns the values in insertion order
func (p *Params) Values() []interface{} {
	if p == nil {
		return nil
	}
	values := make([]interface{}, 0, len(p.keys))
	for _, key := range p.keys {
		values = append(values, p.values[key])
	}
	return values
}

// Len returns the number of stored values
func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Map returns the parameters as an (unordered) map, suitable for
// sqlx's named binding.
func (p *Params) Map() map[string]interface{} {
	out := make(map[string]interface{}, p.Len())
	if p == nil {
		return out
	}
	for key, val := range p.values {
		out[key] = val
	}
	return out
}

// Clone returns a copy of the Params object
func (p *Params) Clone() *Params {
	c := NewParams()
	if p == nil {
		return c
	}
	for _, key := range p.keys {
		c.Set(key, p.values[key])
	}
	return c
}

// merge appends all entries of other to p
func (p *Params) merge(other *Params) *Params {
	if other == nil {
		return p
	}
	for _, key := range other.keys {
		p.Set(key, other.values[key])
	}
	return p
}

func sortKeys(in map[string]interface{}) []string {
	keys := make([]string, 0, len(in))
	for key := range in {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
