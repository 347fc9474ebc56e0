package reader

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// encodingProbeSize is how many leading bytes a trial decode inspects.
const encodingProbeSize = 1024

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// encodingCandidate is one entry in the fixed trial order. decode must
// return an error when the bytes are not valid in that encoding.
type encodingCandidate struct {
	name   string
	decode func([]byte) (string, error)
}

// encodingCandidates is tried in order; the first candidate whose trial
// decode succeeds wins. The single-byte charmaps accept any input, so in
// practice resolution never falls past latin-1, but the utf-8 default at
// the end keeps the contract explicit.
var encodingCandidates = []encodingCandidate{
	{"utf-8", decodeUTF8},
	{"utf-8-bom", decodeUTF8BOM},
	{"latin-1", charmapDecode(charmap.ISO8859_1)},
	{"cp1252", charmapDecode(charmap.Windows1252)},
	{"iso-8859-1", charmapDecode(charmap.ISO8859_1)},
}

// ResolveEncoding determines a working encoding for a plain-text file by
// trial decoding its first kilobyte. It never fails: when every candidate
// rejects the sample it falls back to utf-8 and lets the full-file decode
// surface the error.
func ResolveEncoding(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return "utf-8"
	}
	defer f.Close()

	probe := make([]byte, encodingProbeSize)
	n, err := io.ReadFull(f, probe)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "utf-8"
	}
	probe = probe[:n]
	if n == encodingProbeSize {
		// A full probe may have cut a multi-byte sequence at the
		// boundary; drop the partial rune before the trial decodes.
		probe = trimPartialRune(probe)
	}

	for _, c := range encodingCandidates {
		if _, err := c.decode(probe); err == nil {
			return c.name
		}
	}
	return "utf-8"
}

// decodeWith decodes a whole file's bytes using a named candidate.
func decodeWith(name string, data []byte) (string, error) {
	for _, c := range encodingCandidates {
		if c.name == name {
			return c.decode(data)
		}
	}
	return decodeUTF8(data)
}

func decodeUTF8(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("invalid utf-8 sequence")
	}
	return string(data), nil
}

func decodeUTF8BOM(data []byte) (string, error) {
	trimmed := bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(trimmed) {
		return "", fmt.Errorf("invalid utf-8 sequence after BOM")
	}
	return string(trimmed), nil
}

// trimPartialRune drops a multi-byte sequence cut off at the end of a
// full probe. Samples that are invalid beyond the tail come back as-is.
func trimPartialRune(data []byte) []byte {
	for trim := 1; trim < utf8.UTFMax && trim < len(data); trim++ {
		if utf8.Valid(data[len(data)-trim:]) {
			break
		}
		if utf8.RuneStart(data[len(data)-trim]) {
			if utf8.Valid(data[:len(data)-trim]) {
				return data[:len(data)-trim]
			}
			break
		}
	}
	return data
}

func charmapDecode(cm *charmap.Charmap) func([]byte) (string, error) {
	return func(data []byte) (string, error) {
		out, err := cm.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
}
