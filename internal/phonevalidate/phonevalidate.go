// Package phonevalidate classifies phone numbers as mobile, landline, or
// invalid, and explodes StandardizedRow-shaped phone pairs into one output
// row per mobile number (§4.9 Phone Validator).
package phonevalidate

import (
	"context"
	"fmt"
	"strings"
)

// Label is the outcome of classifying a single phone number.
type Label string

const (
	Mobile   Label = "mobile"
	Landline Label = "landline"
	Invalid  Label = "invalid"
)

// Classifier calls a remote batch phone-validation service. Implementations
// must return one Label per input number, in order.
type Classifier interface {
	ClassifyBatch(ctx context.Context, numbers []string) ([]Label, error)
}

// mobileFirstAreaCodes is the curated South-Florida "mobile-first" area
// code list from original_source/column_syncer.py, used as the fallback
// heuristic when no remote classifier is available or it fails.
var mobileFirstAreaCodes = map[string]bool{
	"321": true, "407": true, "689": true, "754": true, "786": true,
}

const maxBatchSize = 800

// normalizeDigits strips everything but digits and the leading country code.
func normalizeDigits(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	d := b.String()
	if len(d) == 11 && strings.HasPrefix(d, "1") {
		d = d[1:]
	}
	return d
}

// Format renders a 10-digit number as "(NNN) NNN-NNNN", the on-storage
// format required by the data-model invariants (spec §3).
func Format(raw string) (string, bool) {
	d := normalizeDigits(raw)
	if len(d) != 10 {
		return "", false
	}
	return fmt.Sprintf("(%s) %s-%s", d[0:3], d[3:6], d[6:10]), true
}

func areaCode(raw string) string {
	d := normalizeDigits(raw)
	if len(d) != 10 {
		return ""
	}
	return d[0:3]
}

// heuristicClassify labels by the mobile-first area-code list: codes in the
// list are mobile, a valid 10-digit number outside the list is landline,
// anything that doesn't normalize to 10 digits is invalid.
func heuristicClassify(numbers []string) []Label {
	labels := make([]Label, len(numbers))
	for i, n := range numbers {
		ac := areaCode(n)
		switch {
		case ac == "":
			labels[i] = Invalid
		case mobileFirstAreaCodes[ac]:
			labels[i] = Mobile
		default:
			labels[i] = Landline
		}
	}
	return labels
}

// ValidateBatch implements the validate_batch(numbers[]) contract: splits
// into batches of at most maxBatchSize, calls the remote classifier, and
// falls back to the area-code heuristic on any classifier failure.
func ValidateBatch(ctx context.Context, c Classifier, numbers []string) []Label {
	if len(numbers) == 0 {
		return nil
	}
	if c == nil {
		return heuristicClassify(numbers)
	}

	out := make([]Label, 0, len(numbers))
	for start := 0; start < len(numbers); start += maxBatchSize {
		end := start + maxBatchSize
		if end > len(numbers) {
			end = len(numbers)
		}
		batch := numbers[start:end]
		labels, err := c.ClassifyBatch(ctx, batch)
		if err != nil || len(labels) != len(batch) {
			labels = heuristicClassify(batch)
		}
		out = append(out, labels...)
	}
	return out
}

// Pair is a row's two candidate phone numbers prior to validation.
type Pair struct {
	Primary   string
	Secondary string
}

// ExplodedRow is one output row produced by row-explosion: carries a single
// validated mobile number.
type ExplodedRow struct {
	SourceIndex int
	PhoneNumber string
}

// Explode implements the row-explosion table from §4.9: mobile+mobile
// yields two rows, mobile+other yields one row carrying the mobile number,
// other+other drops the row. Original phone columns are not part of
// ExplodedRow; SourceIndex is the row's position in pairs, which the caller
// maps back to its source record.
func Explode(pairs []Pair, primaryLabels, secondaryLabels []Label) []ExplodedRow {
	out := make([]ExplodedRow, 0, len(pairs))
	for i, p := range pairs {
		l1 := primaryLabels[i]
		l2 := secondaryLabels[i]

		if l1 == Mobile {
			if formatted, ok := Format(p.Primary); ok {
				out = append(out, ExplodedRow{SourceIndex: i, PhoneNumber: formatted})
			}
		}
		if l2 == Mobile {
			if formatted, ok := Format(p.Secondary); ok {
				out = append(out, ExplodedRow{SourceIndex: i, PhoneNumber: formatted})
			}
		}
	}
	return out
}
