// Package applier applies an inference.Formula to every RawRow to produce a
// standardized staging table (§4.5 Formula Applier).
package applier

import (
	"regexp"
	"strings"

	"leadenrich/internal/address"
	"leadenrich/internal/inference"
	"leadenrich/internal/nameclean"
	"leadenrich/internal/reader"
)

// StandardizedRow is the data-model entity produced by the Applier.
type StandardizedRow struct {
	OriginalIndex    int
	CleanedName      string
	StreetAddress    string
	City             string
	State            string
	SearchFormat     string
	HasExistingPhone bool
	ExistingPrimary  string
	ExistingSecondary string
	Eligible         bool
}

var missingValueSentinels = map[string]bool{
	"NAN": true, "NONE": true, "NULL": true, "": true,
}

// coalesce replaces missing-value sentinels with "".
func coalesce(v string) string {
	v = strings.TrimSpace(v)
	if missingValueSentinels[strings.ToUpper(v)] {
		return ""
	}
	return v
}

var phoneRe = regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)

// Apply runs the Formula Applier contract over every RawRow in deterministic
// input order, producing a staging table. Rows that yield neither a usable
// name nor a usable address are dropped from the result (but the caller's
// original rows are untouched).
func Apply(rows []reader.RawRow, f *inference.Formula) []StandardizedRow {
	out := make([]StandardizedRow, 0, len(rows))
	for i, row := range rows {
		sr, ok := applyRow(i, row, f)
		if !ok {
			continue
		}
		out = append(out, sr)
	}
	return out
}

func applyRow(index int, row reader.RawRow, f *inference.Formula) (StandardizedRow, bool) {
	get := func(field inference.SemanticField) string {
		col := f.Column(field)
		if col == "" {
			return ""
		}
		return coalesce(row.Get(col))
	}

	primaryName := get(inference.FieldPrimaryName)
	cleanedName := nameclean.Clean(primaryName)

	streetAddress := buildStreetAddress(row, f, get)
	city := strings.ToUpper(get(inference.FieldCity))
	state := strings.ToUpper(get(inference.FieldState))

	if cleanedName == "" && streetAddress == "" {
		return StandardizedRow{}, false
	}

	searchFormat := ""
	if streetAddress != "" {
		searchFormat = streetAddress + ", " + city
	}

	hasPhone, primary, secondary := scanPhones(row)
	if existing := get(inference.FieldExistingPhones); existing != "" && !hasPhone {
		if phoneRe.MatchString(existing) {
			hasPhone = true
			primary = phoneRe.FindString(existing)
		}
	}

	return StandardizedRow{
		OriginalIndex:     index,
		CleanedName:       cleanedName,
		StreetAddress:     streetAddress,
		City:              city,
		State:             state,
		SearchFormat:      searchFormat,
		HasExistingPhone:  hasPhone,
		ExistingPrimary:   primary,
		ExistingSecondary: secondary,
		Eligible:          address.Eligible(city),
	}, true
}

func buildStreetAddress(row reader.RawRow, f *inference.Formula, get func(inference.SemanticField) string) string {
	if f.AddressMethod == inference.MethodSeparatedComponents {
		parts := []string{
			get(inference.FieldHouseNumber),
			get(inference.FieldPrefixDirection),
			get(inference.FieldStreetName),
			get(inference.FieldStreetType),
			get(inference.FieldPostDirection),
		}
		if unit := get(inference.FieldUnit); unit != "" {
			parts = append(parts, "#"+unit)
		}
		return address.Normalize(joinNonEmpty(parts))
	}

	combined := get(inference.FieldCombinedAddress)
	combined = stripTrailingStateZip(combined)
	return address.Normalize(combined)
}

func joinNonEmpty(parts []string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}

var trailingStateZipRe = regexp.MustCompile(`,?\s*[A-Za-z]{2}\s*\d{5}(-\d{4})?\s*$`)

func stripTrailingStateZip(s string) string {
	return strings.TrimSpace(trailingStateZipRe.ReplaceAllString(s, ""))
}

// scanPhones scans every cell of a row for phone tokens, returning the
// first two distinct matches in order of appearance.
func scanPhones(row reader.RawRow) (has bool, primary, secondary string) {
	for _, cell := range row {
		matches := phoneRe.FindAllString(cell.Value, -1)
		for _, m := range matches {
			if primary == "" {
				primary = m
				has = true
			} else if secondary == "" && m != primary {
				secondary = m
			}
		}
	}
	return has, primary, secondary
}
