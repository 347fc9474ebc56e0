package model

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
)

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"unsupported format", &UnsupportedFormatError{Ext: ".mobi", Supported: []string{".txt"}}},
		{"file read", &FileReadError{Path: "x.txt", Msg: "file not found"}},
		{"file read with cause", &FileReadError{Path: "x.txt", Msg: "open failed", Err: os.ErrPermission}},
		{"empty file", &EmptyFileError{Source: "x.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, ErrAnalyzer) {
				t.Errorf("%T does not match ErrAnalyzer", tt.err)
			}
			// Errors stay matchable through ordinary wrapping.
			wrapped := fmt.Errorf("analyze: %w", tt.err)
			if !errors.Is(wrapped, ErrAnalyzer) {
				t.Errorf("wrapped %T does not match ErrAnalyzer", tt.err)
			}
		})
	}
}

func TestFileReadError_PreservesCause(t *testing.T) {
	err := &FileReadError{Path: "locked.txt", Msg: "open failed", Err: os.ErrPermission}

	if !errors.Is(err, os.ErrPermission) {
		t.Error("expected the underlying cause to stay matchable")
	}
	if !errors.Is(err, ErrAnalyzer) {
		t.Error("expected the taxonomy ancestor to stay matchable")
	}
	if !strings.Contains(err.Error(), "locked.txt") {
		t.Errorf("message should name the path: %q", err.Error())
	}
}

func TestUnsupportedFormatError_Message(t *testing.T) {
	err := &UnsupportedFormatError{Ext: ".mobi", Supported: []string{".epub", ".txt"}}

	msg := err.Error()
	for _, want := range []string{".mobi", ".epub", ".txt"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}
