// Package reader normalizes heterogeneous document formats into a single
// decoded text string. A Registry maps file extensions to format readers;
// each reader owns its extraction and cleanup rules.
package reader

import (
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"bookscan/internal/model"
)

// Reader turns a file path into decoded text. Implementations are
// stateless; one instance serves all calls.
type Reader interface {
	// Extensions lists the lower-cased extensions (with dot) this reader
	// handles.
	Extensions() []string

	// Read extracts the document text. It returns *model.FileReadError
	// when the file cannot be read or yields no text.
	Read(path string) (string, error)
}

// Registry dispatches paths to format readers by extension. Readers are
// registered at construction and the mapping is never mutated afterwards.
type Registry struct {
	readers map[string]Reader
	logger  *zap.Logger
}

// NewRegistry builds a registry with the built-in text, PDF and EPUB
// readers registered.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Registry{
		readers: make(map[string]Reader),
		logger:  logger,
	}
	r.register(NewTextReader(logger))
	r.register(NewPDFReader(logger))
	r.register(NewEPUBReader(logger))
	return r
}

func (r *Registry) register(rd Reader) {
	for _, ext := range rd.Extensions() {
		r.readers[strings.ToLower(ext)] = rd
	}
}

// Lookup selects the reader for a path's extension.
func (r *Registry) Lookup(path string) (Reader, error) {
	ext := strings.ToLower(filepath.Ext(path))
	rd, ok := r.readers[ext]
	if !ok {
		return nil, &model.UnsupportedFormatError{
			Ext:       ext,
			Supported: r.Supported(),
		}
	}
	return rd, nil
}

// Read selects a reader for the path and extracts the document text.
func (r *Registry) Read(path string) (string, error) {
	rd, err := r.Lookup(path)
	if err != nil {
		return "", err
	}
	r.logger.Debug("reading document", zap.String("path", path))
	return rd.Read(path)
}

// Supported returns the sorted list of registered extensions.
func (r *Registry) Supported() []string {
	exts := make([]string, 0, len(r.readers))
	for ext := range r.readers {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// IsSupported reports whether the path's extension has a registered reader.
func (r *Registry) IsSupported(path string) bool {
	_, ok := r.readers[strings.ToLower(filepath.Ext(path))]
	return ok
}
