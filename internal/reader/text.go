package reader

import (
	"os"

	"go.uber.org/zap"

	"bookscan/internal/model"
)

// TextReader reads plain-text documents, resolving the character encoding
// by trial decoding before the full read.
type TextReader struct {
	logger *zap.Logger
}

// NewTextReader creates a plain-text reader.
func NewTextReader(logger *zap.Logger) *TextReader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TextReader{logger: logger}
}

// Extensions implements Reader.
func (r *TextReader) Extensions() []string {
	return []string{".txt", ".text", ".md", ".markdown", ".rst"}
}

// Read implements Reader. A file whose resolved encoding still fails to
// decode the full content is a read failure, never silently mangled text.
func (r *TextReader) Read(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", &model.FileReadError{Path: path, Msg: "file not found", Err: err}
	}

	enc := ResolveEncoding(path)
	r.logger.Debug("resolved encoding", zap.String("path", path), zap.String("encoding", enc))

	data, err := os.ReadFile(path)
	if err != nil {
		return "", &model.FileReadError{Path: path, Msg: "read failed", Err: err}
	}

	text, err := decodeWith(enc, data)
	if err != nil {
		return "", &model.FileReadError{Path: path, Msg: "decode failed with " + enc, Err: err}
	}
	return text, nil
}
