package inference

import (
	"context"
	"log"
	"regexp"
	"strings"
)

// fieldSubstrings drives the deterministic fallback: on
// parser failure, malformed JSON, or network errors, inspect column names
// for these substrings and fill column_map by name match (§4.4).
var fieldSubstrings = map[SemanticField][]string{
	FieldPrimaryName:     {"name", "owner"},
	FieldHouseNumber:     {"house", "number", "num"},
	FieldStreetName:      {"street", "address"},
	FieldCity:            {"city"},
	FieldState:           {"state"},
	FieldZip:             {"zip", "postal"},
	FieldExistingPhones:  {"phone", "mobile", "cell"},
}

// Heuristic builds a deterministic Formula by matching column names against
// substrings, with confidence forced to low.
func Heuristic(columns []string) *Formula {
	columnMap := make(map[SemanticField]string)
	for _, col := range columns {
		lower := strings.ToLower(col)
		for field, subs := range fieldSubstrings {
			if _, already := columnMap[field]; already {
				continue
			}
			for _, sub := range subs {
				if strings.Contains(lower, sub) {
					columnMap[field] = col
					break
				}
			}
		}
	}

	addressMethod := MethodParseCombined
	if _, ok := columnMap[FieldHouseNumber]; ok {
		addressMethod = MethodSeparatedComponents
	}

	return &Formula{
		FormatType:      FormatUnknown,
		ColumnMap:       columnMap,
		AddressMethod:   addressMethod,
		Confidence:      ConfidenceLow,
		ValidationNotes: "heuristic fallback: matched column names by substring",
	}
}

var phoneDigitsRe = regexp.MustCompile(`\d{10,11}`)

// PostValidate scans every row's raw values with a phone-regex and updates
// the formula's empirically observed phone counts, per §4.4.
func PostValidate(f *Formula, rows [][]string) {
	if f == nil {
		return
	}
	withPhones := 0
	processable := 0
	for _, row := range rows {
		hasPhone := false
		hasAny := false
		for _, v := range row {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			hasAny = true
			digits := digitsOnly(v)
			if phoneDigitsRe.MatchString(digits) {
				hasPhone = true
			}
		}
		if hasPhone {
			withPhones++
		}
		if hasAny {
			processable++
		}
	}
	f.RecordsWithPhones = withPhones
	f.RecordsProcessable = processable
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Derive runs the format-inference contract: a single remote call attempt,
// falling back to the heuristic on any failure. It never returns an error --
// the inference call must never block the pipeline.
func Derive(ctx context.Context, client *Client, columns []string, sampleRowsJSON string, recordCount int, allRows [][]string) *Formula {
	var f *Formula
	if client != nil {
		inferred, err := client.Infer(ctx, columns, sampleRowsJSON, recordCount)
		if err != nil {
			log.Printf("inference: remote call failed, using heuristic fallback: %v", err)
		} else {
			f = inferred
		}
	}
	if f == nil {
		f = Heuristic(columns)
	}
	PostValidate(f, allRows)
	return f
}
