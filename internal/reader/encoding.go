package reader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeLadder tries UTF-8, then Windows-1252, then ISO-8859-1, returning the
// first decoding that produces valid UTF-8 text. Plain text files virtually
// always decode successfully under one of these three, so this ladder -- not
// a single fixed charset -- is what keeps ragged real-estate export files
// readable.
func decodeLadder(raw []byte) (string, string, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)

	if isValidUTF8(raw) {
		return string(raw), "utf-8", nil
	}

	if s, err := decodeWith(charmap.Windows1252, raw); err == nil {
		return s, "windows-1252", nil
	}

	if s, err := decodeWith(charmap.ISO8859_1, raw); err == nil {
		return s, "iso-8859-1", nil
	}

	return "", "", fmt.Errorf("%w: no encoding could decode input", ErrInputUnreadable)
}

func decodeWith(enc *charmap.Charmap, raw []byte) (string, error) {
	out, err := io.ReadAll(transform.NewReader(bytes.NewReader(raw), enc.NewDecoder()))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func isValidUTF8(raw []byte) bool {
	return utf8.Valid(raw)
}

func readDelimited(path string) (*Result, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputUnreadable, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrInputUnreadable)
	}

	text, _, err := decodeLadder(raw)
	if err != nil {
		return nil, err
	}

	delim := detectDelimiter(text)

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	all, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputUnreadable, err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInputUnreadable)
	}

	header := all[0]
	for i, h := range header {
		header[i] = trimBOMAndSpace(h)
	}
	data := all[1:]

	synthetic := false
	if looksSynthetic(header) && len(data) > 0 && looksLikeData(header) {
		data = all
		header = syntheticColumnNames(len(header))
		synthetic = true
	} else if looksSynthetic(header) {
		synthetic = true
	}

	return &Result{
		Columns:          header,
		Rows:             toRawRows(header, data),
		SyntheticHeaders: synthetic,
	}, nil
}

// detectDelimiter picks comma, tab, semicolon or pipe by counting occurrences
// in the first line, preferring comma on ties.
func detectDelimiter(text string) rune {
	firstLine := text
	if idx := strings.IndexAny(text, "\r\n"); idx >= 0 {
		firstLine = text[:idx]
	}

	candidates := []rune{',', '\t', ';', '|'}
	best := ','
	bestCount := -1
	for _, c := range candidates {
		count := strings.Count(firstLine, string(c))
		if count > bestCount {
			bestCount = count
			best = c
		}
	}
	return best
}
