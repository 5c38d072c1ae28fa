package core

import (
	"strings"
	"testing"
)

func TestHeadersMultimap(t *testing.T) {
	h := NewHeaders()
	h.Add("X-Test", "1")
	h.Add("x-test", "2")
	h.Add("Content-Type", "text/html")

	values := h.Get("X-TEST")
	if len(values) != 2 || values[0] != "1" || values[1] != "2" {
		t.Errorf("Error case-insensitive lookup: %v", values)
	}

	h.Set("x-TeSt", "3")
	if v := h.Get("X-Test"); len(v) != 1 || v[0] != "3" {
		t.Errorf("Error replacing values: %v", v)
	}

	h.Del("X-TEST")
	if h.Get("x-test") != nil {
		t.Errorf("Error removing all case variants")
	}
	if !h.Has("content-type") {
		t.Errorf("Error keeping unrelated header")
	}
}

func TestHeadersMapAndOrder(t *testing.T) {
	h := NewHeaders()
	h.Add("Set-Cookie", "a=1")
	h.Add("set-cookie", "b=2")
	h.Add("Host", "example.com")

	m := h.Map()
	if len(m["Set-Cookie"]) != 2 {
		t.Errorf("Error multimap keyed by first-seen casing: %v", m)
	}

	var seen []string
	h.Each(func(name, value string) {
		seen = append(seen, name+"="+value)
	})
	joined := strings.Join(seen, ",")
	if joined != "Set-Cookie=a=1,set-cookie=b=2,Host=example.com" {
		t.Errorf("Error insertion order: %v", joined)
	}
}

func TestHeadersClone(t *testing.T) {
	h := NewHeaders()
	h.Add("X-A", "1")
	clone := h.Clone()
	clone.Set("X-A", "2")

	if v := h.Get("X-A"); v[0] != "1" {
		t.Errorf("Error clone shares state: %v", v)
	}
}
