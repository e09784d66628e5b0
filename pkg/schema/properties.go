package schema

// Properties is an ordered mapping from field name to Property. Keys are
// unique; setting an existing key replaces its value in place, keeping the
// position of the first insertion. The zero value is ready to use.
type Properties struct {
	keys    []string
	entries map[string]Property
}

// NewProperties builds an ordered mapping from the supplied descriptors.
func NewProperties(props ...Property) Properties {
	var out Properties
	for _, prop := range props {
		out.Set(prop)
	}
	return out
}

// Set inserts or replaces the descriptor stored under prop.Name.
func (p *Properties) Set(prop Property) {
	if p.entries == nil {
		p.entries = make(map[string]Property)
	}
	if _, exists := p.entries[prop.Name]; !exists {
		p.keys = append(p.keys, prop.Name)
	}
	p.entries[prop.Name] = prop.clone()
}

// Get looks up a descriptor by field name.
func (p Properties) Get(name string) (Property, bool) {
	prop, ok := p.entries[name]
	if !ok {
		return Property{}, false
	}
	return prop.clone(), true
}

// Len returns the number of descriptors.
func (p Properties) Len() int {
	return len(p.keys)
}

// Keys returns the field names in insertion order.
func (p Properties) Keys() []string {
	if len(p.keys) == 0 {
		return nil
	}
	return append([]string(nil), p.keys...)
}

// Entries returns the descriptors in insertion order.
func (p Properties) Entries() []Property {
	if len(p.keys) == 0 {
		return nil
	}
	out := make([]Property, 0, len(p.keys))
	for _, key := range p.keys {
		out = append(out, p.entries[key].clone())
	}
	return out
}

// Clone returns an independent copy.
func (p Properties) Clone() Properties {
	return NewProperties(p.Entries()...)
}

// Merge applies every entry of other on top of p. Shared keys are overwritten
// in place; new keys are appended in other's order.
func (p *Properties) Merge(other Properties) {
	for _, prop := range other.Entries() {
		p.Set(prop)
	}
}
