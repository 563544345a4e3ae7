package dom

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"

	"backtest-analyzer/internal/interfaces"
)

var (
	// ErrUnsupportedExtension is returned for files that are not .htm/.html reports
	ErrUnsupportedExtension = errors.New("only .htm or .html reports are accepted")
	// ErrEmptyReport is returned for a zero-length report file
	ErrEmptyReport = errors.New("report file is empty")
)

var (
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// CheckExtension validates the report file name
func CheckExtension(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".htm", ".html":
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedExtension, filepath.Base(path))
	}
}

// LoadFile reads, decodes and parses a report from disk
func LoadFile(path string) (interfaces.Node, error) {
	if err := CheckExtension(path); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	return Load(raw)
}

// Load decodes raw report bytes to UTF-8 and parses them
func Load(raw []byte) (interfaces.Node, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyReport
	}
	text, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	return Parse(bytes.NewReader(text))
}

// Decode converts report bytes to UTF-8. Strategy tester exports are commonly
// UTF-16 with a byte order mark; anything else is sniffed from the BOM or the
// meta charset declaration.
func Decode(raw []byte) ([]byte, error) {
	var enc encoding.Encoding
	switch {
	case bytes.HasPrefix(raw, bomUTF16LE), bytes.HasPrefix(raw, bomUTF16BE):
		enc = unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM)
	default:
		enc, _, _ = charset.DetermineEncoding(raw, "text/html")
	}

	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return bytes.TrimPrefix(out, []byte("\ufeff")), nil
}
