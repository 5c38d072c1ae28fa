package core

import (
	"bytes"
	"errors"
	"testing"
)

func TestBodyRoundTrip(t *testing.T) {
	data := []byte{0x47, 0x00, 0xff, 0xfe, 0x21}
	body := NewBody(data)

	raw := body.ToRaw()
	if !bytes.Equal(raw, data) {
		t.Errorf("Error raw round trip: %v", raw)
	}

	// mutating the returned slice must not leak into the body
	raw[0] = 0x00
	if !bytes.Equal(body.ToRaw(), data) {
		t.Errorf("Error body mutated through ToRaw")
	}

	// the original input slice must not alias the body either
	data[1] = 0x99
	if body.ToRaw()[1] == 0x99 {
		t.Errorf("Error body aliases input slice")
	}
}

func TestBodyNormalize(t *testing.T) {
	fromString := NewBody("abc")
	fromBytes := NewBody([]byte("abc"))
	fromInts := NewBody([]int{97, 98, 99})

	if fromString.ToText() != "abc" || fromBytes.ToText() != "abc" || fromInts.ToText() != "abc" {
		t.Errorf("Error normalizing byte forms")
	}
	if NewBody(nil).Len() != 0 {
		t.Errorf("Error normalizing nil")
	}
}

func TestBodyToText(t *testing.T) {
	body := NewBody([]byte{0xff, 0xfe, 'h', 'i'})

	first := body.ToText()
	second := body.ToText()
	if first != second {
		t.Errorf("Error ToText not deterministic")
	}
	if first != "��hi" {
		t.Errorf("Error lossy decode: %q", first)
	}

	valid := NewBody("xin chào")
	if valid.ToText() != "xin chào" {
		t.Errorf("Error decoding valid text")
	}
}

func TestBodyToJSON(t *testing.T) {
	body := NewBody(`{"example1": [1, "x", null, true]}`)
	parsed, err := body.ToJSON()
	if err != nil {
		t.Errorf("Error parsing valid JSON: %v", err)
	}
	obj, ok := parsed.(map[string]interface{})
	if !ok {
		t.Fatalf("Error JSON value type: %T", parsed)
	}
	arr, ok := obj["example1"].([]interface{})
	if !ok || len(arr) != 4 {
		t.Errorf("Error JSON structure: %v", obj)
	}

	_, err = NewBody(`{"oops"`).ToJSON()
	if err == nil {
		t.Fatalf("Error invalid JSON accepted")
	}
	var synErr *SyntaxError
	if !errors.As(err, &synErr) {
		t.Errorf("Error wrong error kind: %v", err)
	}

	if _, err := NewBody("").ToJSON(); err == nil {
		t.Errorf("Error empty body parsed as JSON")
	}
}
