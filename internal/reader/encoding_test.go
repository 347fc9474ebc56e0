package reader

import (
	"bytes"
	"testing"
)

func TestResolveEncoding(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"plain ascii", []byte("plain ascii text"), "utf-8"},
		{"multibyte utf-8", []byte("naïve — résumé"), "utf-8"},
		{"bom prefixed", append(append([]byte{}, utf8BOM...), "hello"...), "utf-8"},
		{"latin-1 byte", []byte{'c', 'a', 'f', 0xE9}, "latin-1"},
		{"empty file", nil, "utf-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.name+".txt", tt.data)
			if got := ResolveEncoding(path); got != tt.want {
				t.Errorf("ResolveEncoding() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveEncoding_MissingFile(t *testing.T) {
	// Resolution never fails; unreadable files fall back to utf-8.
	if got := ResolveEncoding(t.TempDir() + "/missing.txt"); got != "utf-8" {
		t.Errorf("expected utf-8 fallback, got %q", got)
	}
}

func TestResolveEncoding_TruncatedProbe(t *testing.T) {
	// A multibyte rune split at the probe boundary must not force a
	// latin-1 misdetection.
	data := bytes.Repeat([]byte{'a'}, encodingProbeSize-1)
	data = append(data, "é"...) // 2 bytes, second lands past the probe

	path := writeFile(t, t.TempDir(), "truncated.txt", data)
	if got := ResolveEncoding(path); got != "utf-8" {
		t.Errorf("expected utf-8 for truncated multibyte tail, got %q", got)
	}
}

func TestDecodeWith(t *testing.T) {
	tests := []struct {
		encoding string
		data     []byte
		want     string
	}{
		{"utf-8", []byte("hello"), "hello"},
		{"utf-8-bom", append(append([]byte{}, utf8BOM...), "hello"...), "hello"},
		{"latin-1", []byte{0xE9}, "é"},
		{"cp1252", []byte{0x93, 0x94}, "“”"},
		{"iso-8859-1", []byte{0xDF}, "ß"},
	}

	for _, tt := range tests {
		got, err := decodeWith(tt.encoding, tt.data)
		if err != nil {
			t.Errorf("decodeWith(%q) failed: %v", tt.encoding, err)
			continue
		}
		if got != tt.want {
			t.Errorf("decodeWith(%q) = %q, want %q", tt.encoding, got, tt.want)
		}
	}
}

func TestDecodeWith_UnknownEncoding(t *testing.T) {
	if _, err := decodeWith("utf-16", []byte("x")); err == nil {
		t.Error("expected error for unknown encoding name")
	}
}

func TestDecodeWith_InvalidUTF8(t *testing.T) {
	if _, err := decodeWith("utf-8", []byte{0xFF, 0xFE}); err == nil {
		t.Error("expected error for invalid utf-8 bytes")
	}
}
