package core

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Body wraps one immutable byte payload of a captured message. All
// conversions are pure reads, the wrapped bytes never change.
type Body struct {
	data []byte
}

// NewBody wrap any accepted byte form into a Body
func NewBody(data interface{}) *Body {
	return &Body{data: NormalizeBytes(data)}
}

// Len byte length of the payload
func (b *Body) Len() int {
	return len(b.data)
}

// ToRaw returns the exact original bytes with no loss. The returned slice
// is a copy, mutating it does not touch the Body.
func (b *Body) ToRaw() []byte {
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}

// ToText decode the payload as text, degrading undecodable bytes to the
// replacement character instead of failing
func (b *Body) ToText() string {
	return DecodeLossy(b.data)
}

// ToJSON decode the payload as text then parse it as JSON. Invalid JSON
// surfaces as a *SyntaxError, never as a partial result.
func (b *Body) ToJSON() (interface{}, error) {
	var out interface{}
	if err := json.UnmarshalFromString(b.ToText(), &out); err != nil {
		return nil, &SyntaxError{Err: err}
	}
	return out, nil
}
