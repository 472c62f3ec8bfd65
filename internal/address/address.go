// Package address normalizes street addresses to a canonical token form and
// scores two addresses for equivalence, grounded on original_source/
// address_matching_analyzer.py's simulate_addresses_match algorithm.
package address

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var nonAlnumRe = regexp.MustCompile(`[-.]`)

// Normalize uppercases, collapses whitespace, strips "-" and ".", and
// contracts street types, directionals and ordinal words to their short form
// ("STREET" -> "ST", "SOUTHWEST" -> "SW", "TWENTY-FIRST" -> "21ST").
// Variation expansion for matching happens in Match.
func Normalize(s string) string {
	s = strings.ToUpper(s)
	for word, short := range ordinalWords {
		if strings.Contains(word, "-") {
			s = strings.ReplaceAll(s, word, short)
		}
	}
	s = nonAlnumRe.ReplaceAllString(s, " ")
	tokens := strings.Fields(s)
	for i, t := range tokens {
		if short, ok := streetTypeLong[t]; ok {
			tokens[i] = short
		}
		if short, ok := directionLong[t]; ok {
			tokens[i] = short
		}
		if short, ok := ordinalWords[t]; ok {
			tokens[i] = short
		}
	}
	return strings.Join(tokens, " ")
}

// Eligible reports whether a city is within the target county's assessor
// jurisdiction: the curated whitelist, plus pattern-based admissions
// (BEACH suffix, FORT prefix, containing LAUDERDALE).
func Eligible(city string) bool {
	c := strings.ToUpper(strings.TrimSpace(city))
	if c == "" {
		return false
	}
	if eligibleCities[c] {
		return true
	}
	if strings.HasSuffix(c, "BEACH") {
		return true
	}
	if strings.HasPrefix(c, "FORT ") {
		return true
	}
	if strings.Contains(c, "LAUDERDALE") {
		return true
	}
	return false
}

// Result is the outcome of Match/Analyze.
type Result struct {
	Matched    bool
	Confidence int
	Reason     string
}

// Match implements the §4.3 matching contract.
func Match(a, b string) Result {
	return analyze(a, b, false)
}

// Analyze is the diagnostic variant of Match used for the terminal log
// stream: same algorithm, richer reason text giving the match count, the
// required or maximum token count, and the house number.
func Analyze(a, b string) Result {
	return analyze(a, b, true)
}

func analyze(a, b string, verbose bool) Result {
	ta := strings.Fields(Normalize(a))
	tb := strings.Fields(Normalize(b))

	if len(ta) < 2 || len(tb) < 2 {
		return Result{Matched: false, Confidence: 0, Reason: "fewer than two tokens on one side"}
	}

	if ta[0] != tb[0] {
		return Result{Matched: false, Confidence: 0, Reason: "house number mismatch: " + ta[0] + " vs " + tb[0]}
	}

	setA := variationSet(ta[1:])
	setB := variationSet(tb[1:])

	matched := make(map[string]bool)
	matchedGeneric := true
	matchCount := 0
	for v := range setA {
		if setB[v] && !matched[v] {
			matched[v] = true
			matchCount++
			if !streetTypeShort[v] {
				matchedGeneric = false
			}
		}
	}

	maxTokens := len(ta)
	if len(tb) > maxTokens {
		maxTokens = len(tb)
	}

	required := 2
	if maxTokens <= 3 {
		required = 1
	}

	if matchCount == 0 {
		return Result{Matched: false, Confidence: 0, Reason: "no overlapping street tokens"}
	}

	if matchCount < required {
		reason := "insufficient token matches"
		if verbose {
			reason = fmt.Sprintf("insufficient matches: %d < %d required", matchCount, required)
		}
		return Result{Matched: false, Confidence: 0, Reason: reason}
	}

	if matchedGeneric && matchCount == 1 {
		return Result{Matched: false, Confidence: 30, Reason: "only a generic street type matched"}
	}

	confidence := matchCount * 100 / maxTokens
	confidence += 20
	if matchCount >= 2 {
		confidence += 10
	}
	if confidence > 100 {
		confidence = 100
	}
	if confidence < 70 {
		confidence = 70
	}

	reason := "house number and street tokens matched"
	if verbose {
		reason = fmt.Sprintf("matched %d of max %d tokens, house number %s", matchCount, maxTokens, ta[0])
	}
	return Result{Matched: true, Confidence: confidence, Reason: reason}
}

// variationSet expands each token into itself plus ordinal/directional
// equivalents, so two differently-styled addresses can still line up.
func variationSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens)*2)
	for _, t := range tokens {
		set[t] = true
		if w, ok := ordinalToWord[t]; ok {
			set[w] = true
		}
		if w, ok := ordinalWords[t]; ok {
			set[w] = true
		}
		if n, ok := numericOrdinalSuffix(t); ok {
			set[n] = true
		}
		if short, ok := directionLong[t]; ok {
			set[short] = true
		}
		for long, short := range directionLong {
			if short == t {
				set[long] = true
			}
		}
	}
	return set
}

var bareNumberRe = regexp.MustCompile(`^\d+$`)
var ordinalNumberRe = regexp.MustCompile(`^(\d+)(ST|ND|RD|TH)$`)

// numericOrdinalSuffix normalizes a bare number or an existing ordinal
// number to its correctly-suffixed ordinal form (11th/12th/13th carve-out,
// else mod-10 based).
func numericOrdinalSuffix(t string) (string, bool) {
	var digits string
	if bareNumberRe.MatchString(t) {
		digits = t
	} else if m := ordinalNumberRe.FindStringSubmatch(t); m != nil {
		digits = m[1]
	} else {
		return "", false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return "", false
	}
	return digits + ordinalSuffix(n), true
}

func ordinalSuffix(n int) string {
	if n%100 >= 11 && n%100 <= 13 {
		return "TH"
	}
	switch n % 10 {
	case 1:
		return "ST"
	case 2:
		return "ND"
	case 3:
		return "RD"
	default:
		return "TH"
	}
}
