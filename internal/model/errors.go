package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAnalyzer is the common ancestor of every typed error this module
// returns. errors.Is(err, ErrAnalyzer) matches any of them, which lets
// callers do catch-all handling without enumerating the taxonomy.
var ErrAnalyzer = errors.New("bookscan: analysis failed")

// UnsupportedFormatError is returned when no reader is registered for a
// file's extension, or when a format's parsing capability is unavailable.
// The caller can recover by choosing another input.
type UnsupportedFormatError struct {
	Ext       string   // the extension that was requested, e.g. ".mobi"
	Supported []string // extensions the registry currently serves
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format %q (supported: %s)",
		e.Ext, strings.Join(e.Supported, ", "))
}

func (e *UnsupportedFormatError) Unwrap() error { return ErrAnalyzer }

// FileReadError is returned when a document exists in a supported format
// but its content cannot be read or extracted. Fatal for that document,
// but a batch run continues past it.
type FileReadError struct {
	Path string
	Msg  string
	Err  error // underlying cause, may be nil
}

func (e *FileReadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("read %s: %s: %v", e.Path, e.Msg, e.Err)
	}
	return fmt.Sprintf("read %s: %s", e.Path, e.Msg)
}

func (e *FileReadError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrAnalyzer, e.Err}
	}
	return []error{ErrAnalyzer}
}

// EmptyFileError is returned when a document was read successfully but
// contains no usable text.
type EmptyFileError struct {
	Source string
}

func (e *EmptyFileError) Error() string {
	return fmt.Sprintf("no usable text in %s", e.Source)
}

func (e *EmptyFileError) Unwrap() error { return ErrAnalyzer }
