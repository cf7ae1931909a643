package extractor

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// sniffLen is how much of a file ValidateTXT inspects.
const sniffLen = 512

var errNotText = errors.New("file does not appear to be valid text")

// ExtractTXT decodes a text quote and returns its non-blank lines, trimmed.
func ExtractTXT(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyFile
	}

	text, err := decodeText(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode text file: %w", err)
	}

	text = normalizeLines(text)
	if text == "" {
		return "", fmt.Errorf("no text could be extracted from file")
	}
	return text, nil
}

// decodeText honours a UTF-8 or UTF-16 byte order mark. Without one, valid UTF-8 is taken as
// is and anything else is read as Windows-1252, the usual code page of spreadsheet exports.
func decodeText(data []byte) (string, error) {
	fallback := unicode.UTF8.NewDecoder()
	if !utf8.Valid(data) {
		fallback = charmap.Windows1252.NewDecoder()
	}

	decoded, _, err := transform.Bytes(unicode.BOMOverride(fallback), data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

func normalizeLines(text string) string {
	text = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\x00", "", "\u00a0", " ").Replace(text)

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// ValidateTXT rejects data that looks binary: more than a fifth of the first bytes are
// control characters. UTF-16 text is full of NULs, so a UTF-16 byte order mark exempts it.
func ValidateTXT(data []byte) error {
	if len(data) == 0 {
		return ErrEmptyFile
	}
	if hasUTF16BOM(data) {
		return nil
	}

	sample := data[:min(len(data), sniffLen)]
	control := 0
	for _, b := range sample {
		if (b < 32 && b != '\t' && b != '\n' && b != '\r') || b == 127 {
			control++
		}
	}
	if control*5 > len(sample) {
		return errNotText
	}
	return nil
}

func hasUTF16BOM(data []byte) bool {
	return len(data) >= 2 && ((data[0] == 0xFF && data[1] == 0xFE) || (data[0] == 0xFE && data[1] == 0xFF))
}
