package pdfocr

import (
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// encodeWinAnsi converts text to Windows-1252, the WinAnsiEncoding of the PDF core fonts.
// Runes outside the charset become '?' and ok reports whether any were replaced.
func encodeWinAnsi(s string) (string, bool) {
	var b strings.Builder
	b.Grow(len(s))
	ok := true
	for _, r := range s {
		c, found := charmap.Windows1252.EncodeRune(r)
		if !found {
			ok = false
			c = '?'
		}
		b.WriteByte(c)
	}
	return b.String(), ok
}

// unescapePDFString resolves the escapes of a PDF literal string body
func unescapePDFString(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// decodeUTF16BE decodes a PDF text string that starts with the UTF-16BE byte order mark
func decodeUTF16BE(b []byte) (string, error) {
	if len(b) < 2 || b[0] != 0xFE || b[1] != 0xFF {
		return "", fmt.Errorf("no BOM detected, cannot confirm UTF-16BE")
	}
	dec := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
	out, err := dec.Bytes(b)
	if err != nil {
		return "", fmt.Errorf("failed to decode UTF-16BE: %w", err)
	}
	return string(out), nil
}

// getLogger returns the configured logger, defaulting to slog.Default() if nil.
func getLogger(config Config) *slog.Logger {
	if config.Logger == nil {
		return slog.Default()
	}
	return config.Logger
}
