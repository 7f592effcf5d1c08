package gateway

import "encoding/json"

// Body builds a request payload that only carries the fields the caller
// supplied. An absent field is not the same as a field set to its zero
// value, so optional inputs must go through Set instead of struct tags.
type Body struct {
	fields map[string]any
}

// NewBody creates an empty payload.
func NewBody() *Body {
	return &Body{fields: make(map[string]any)}
}

// Set records a field for serialization and returns the builder.
func (b *Body) Set(key string, value any) *Body {
	b.fields[key] = value
	return b
}

// Has reports whether the field was supplied.
func (b *Body) Has(key string) bool {
	_, ok := b.fields[key]
	return ok
}

// MarshalJSON serializes exactly the supplied fields.
func (b *Body) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.fields)
}
