package reader

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"bookscan/internal/model"
)

// PDFReader extracts text from PDF documents page by page. A page that
// fails to extract is skipped with a logged warning rather than failing
// the whole document.
type PDFReader struct {
	logger *zap.Logger
}

// NewPDFReader creates a PDF reader.
func NewPDFReader(logger *zap.Logger) *PDFReader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PDFReader{logger: logger}
}

// Extensions implements Reader.
func (r *PDFReader) Extensions() []string {
	return []string{".pdf"}
}

// Read implements Reader.
func (r *PDFReader) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &model.FileReadError{Path: path, Msg: "file not found", Err: err}
	}

	pr, err := r.open(data)
	if err != nil {
		return "", &model.FileReadError{Path: path, Msg: "invalid PDF", Err: err}
	}

	pages := r.pageCount(pr)
	if pages <= 0 {
		return "", &model.FileReadError{Path: path, Msg: "PDF has no pages"}
	}
	r.logger.Info("reading PDF", zap.String("path", path), zap.Int("pages", pages))

	var parts []string
	for i := 1; i <= pages; i++ {
		text, err := r.extractPage(pr, i)
		if err != nil {
			r.logger.Warn("skipping unreadable PDF page",
				zap.String("path", path),
				zap.Int("page", i),
				zap.Error(err))
			continue
		}
		if strings.TrimSpace(text) != "" {
			parts = append(parts, text)
		}
	}

	text := cleanupExtracted(strings.Join(parts, "\n\n"))
	if text == "" {
		return "", &model.FileReadError{
			Path: path,
			Msg:  "no text extracted; likely a scanned or image-only PDF",
		}
	}
	return text, nil
}

// open parses the document, converting parser panics on malformed input
// into errors.
func (r *PDFReader) open(data []byte) (pr *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			pr = nil
			err = fmt.Errorf("PDF parsing panicked: %v", rec)
		}
	}()
	return pdf.NewReader(bytes.NewReader(data), int64(len(data)))
}

// pageCount reads the page count, absorbing panics the PDF library may
// raise on malformed cross-reference tables.
func (r *PDFReader) pageCount(pr *pdf.Reader) (pages int) {
	defer func() {
		if rec := recover(); rec != nil {
			pages = 0
		}
	}()
	return pr.NumPage()
}

// extractPage pulls the plain text of one page. The library panics on
// some malformed content streams; those are converted into a per-page
// error so only the page is lost.
func (r *PDFReader) extractPage(pr *pdf.Reader, n int) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("page extraction panicked: %v", rec)
		}
	}()

	page := pr.Page(n)
	if page.V.IsNull() {
		return "", fmt.Errorf("page %d is null", n)
	}
	return page.GetPlainText(nil)
}
