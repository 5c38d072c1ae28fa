package core

import (
	"strings"
	"unicode/utf8"
)

// NormalizeBytes turn any accepted content form into one canonical byte
// slice. Accepted forms are string, []byte, []int byte-value sequences
// (values masked to 0-255) and an existing *Body. The result is always an
// independent copy, anything else normalizes to nil.
func NormalizeBytes(data interface{}) []byte {
	switch v := data.(type) {
	case nil:
		return nil
	case []byte:
		out := make([]byte, len(v))
		copy(out, v)
		return out
	case string:
		return []byte(v)
	case []int:
		out := make([]byte, len(v))
		for i, n := range v {
			out[i] = byte(n & 0xff)
		}
		return out
	case *Body:
		if v == nil {
			return nil
		}
		return v.ToRaw()
	}
	return nil
}

// DecodeLossy decode bytes as UTF-8 text. Every byte that does not form
// valid text becomes the replacement character, the call never fails and
// the same input always yields the same string.
func DecodeLossy(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	var sb strings.Builder
	sb.Grow(len(data))
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			sb.WriteRune(utf8.RuneError)
		} else {
			sb.WriteRune(r)
		}
		i += size
	}
	return sb.String()
}
