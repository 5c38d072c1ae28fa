package core

import "testing"

func TestAsString(t *testing.T) {
	sdk := NewSDK(nil, nil, nil)

	if sdk.AsString("plain") != "plain" {
		t.Errorf("Error decoding string form")
	}
	if sdk.AsString([]byte{104, 105}) != "hi" {
		t.Errorf("Error decoding byte form")
	}
	if sdk.AsString([]int{104, 105}) != "hi" {
		t.Errorf("Error decoding int form")
	}

	decoded := sdk.AsString([]byte{0xff, 'a'})
	if decoded != "�a" {
		t.Errorf("Error lossy decode: %q", decoded)
	}
	if decoded != NewBody([]byte{0xff, 'a'}).ToText() {
		t.Errorf("Error AsString disagrees with Body.ToText")
	}
}
