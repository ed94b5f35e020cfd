package step

import "testing"

func TestDecodeString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "no directives", input: "Room 101", expected: "Room 101"},
		{name: "backslash", input: `a\\b`, expected: `a\b`},
		{name: "latin1 hex", input: `Stra\X\DFe`, expected: "Straße"},
		{name: "high half", input: `\S\i`, expected: "é"},
		{name: "page switch ignored", input: `\PA\abc`, expected: "abc"},
		{name: "utf16", input: `\X2\041A0443\X0\`, expected: "Ку"},
		{name: "utf16 surrogate pair", input: `\X2\D83DDE00\X0\`, expected: "😀"},
		{name: "utf32", input: `\X4\0001F600\X0\`, expected: "😀"},
		{name: "lone backslash", input: `C:\temp`, expected: `C:\temp`},
		{name: "unterminated wide", input: `\X2\0041`, wantErr: true},
		{name: "odd wide", input: `\X2\004\X0\`, wantErr: true},
		{name: "bad hex", input: `\X\ZZ`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeString(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeString failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("DecodeString(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
