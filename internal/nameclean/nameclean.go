// Package nameclean reduces raw property-owner strings to a clean
// "FIRST LAST" pair, rejecting business entities and stripping titles,
// suffixes, and middle initials.
package nameclean

import (
	"regexp"
	"strings"
)

var middleInitialRe = regexp.MustCompile(`\b[A-Z]\.?\s`)

// Clean implements the §4.2 Name Normalizer contract: clean(raw) -> string.
// It returns "" when no plausible personal name survives.
func Clean(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}

	s = strings.Join(strings.Fields(s), " ")
	s = strings.NewReplacer(`"`, "", "'", "", "-", " ", "_", " ").Replace(s)
	s = strings.Join(strings.Fields(s), " ")

	if looksLikeBusiness(s) && !containsCommonFirstName(s) {
		return ""
	}

	hasComma := strings.Contains(s, ",")
	s = strings.ReplaceAll(s, ",", " ")
	s = strings.Join(strings.Fields(s), " ")

	tokens := strings.Fields(s)
	tokens = stripListed(tokens, businessSuffixes)
	tokens = stripListed(tokens, titles)
	tokens = stripListed(tokens, generationalSuffixes)
	tokens = stripListed(tokens, middleIndicators)

	s = strings.Join(tokens, " ")
	s = middleInitialRe.ReplaceAllString(s+" ", " ")
	s = strings.Join(strings.Fields(s), " ")
	tokens = strings.Fields(s)

	if len(tokens) == 0 {
		return ""
	}

	first, last := order(tokens, hasComma)
	if first == "" || last == "" {
		return ""
	}
	return first + " " + last
}

func stripListed(tokens []string, list map[string]bool) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if list[t] {
			continue
		}
		out = append(out, t)
	}
	return out
}

var businessPatternRe = regexp.MustCompile(`\b(LLC|INC|CORP|LTD|CO|COMPANY|TRUST|TR|ESTATE|PROPERTIES|INVESTMENTS|ENTERPRISES|HOLDINGS|GROUP|ASSOCIATES)\b`)

func looksLikeBusiness(s string) bool {
	return businessPatternRe.MatchString(s)
}

func containsCommonFirstName(s string) bool {
	for _, t := range strings.Fields(s) {
		if personIndicators[t] {
			return true
		}
	}
	return false
}

// order applies comma-based "LAST, FIRST" detection, or falls back to the
// common-surname/first-name heuristic, and groups multi-word surname
// prefixes with the following token.
func order(tokens []string, hasComma bool) (first, last string) {
	if hasComma {
		// tokens is now [LAST ...middle/prefix-words... FIRST-rest]
		// Original form before the comma-strip was "LAST, FIRST ...";
		// after replacing the comma with a space the surname is the
		// leading token (grouped with any following prefix word).
		last, rest := groupSurnamePrefix(tokens)
		if len(rest) == 0 {
			return "", ""
		}
		return rest[0], last
	}

	if len(tokens) == 1 {
		return "", ""
	}

	if len(tokens) >= 2 && commonSurnames[tokens[0]] && commonFirstNames[tokens[1]] {
		last, rest := groupSurnamePrefix(tokens)
		if len(rest) == 0 {
			return "", ""
		}
		return rest[0], last
	}

	// Default: FIRST LAST, with the surname possibly spanning a
	// multi-word prefix at the end.
	firstTok := tokens[0]
	lastTokens := tokens[1:]
	last = joinSurnameWithPrefix(lastTokens)
	if last == "" {
		return "", ""
	}
	return firstTok, last
}

// groupSurnamePrefix consumes leading tokens that are multi-word surname
// prefixes (DE, VAN, MC, ...) together with the token that follows them,
// returning the combined surname and the remaining tokens.
func groupSurnamePrefix(tokens []string) (surname string, rest []string) {
	if len(tokens) == 0 {
		return "", nil
	}
	i := 0
	parts := []string{tokens[0]}
	i++
	for i < len(tokens)-1 && namePrefixesToRemove[parts[len(parts)-1]] {
		parts = append(parts, tokens[i])
		i++
	}
	// Joined without spaces so the final name keeps exactly two tokens
	// (first, last) even when the surname carries a multi-word prefix.
	return strings.Join(parts, ""), tokens[i:]
}

// joinSurnameWithPrefix folds a trailing multi-word prefix (e.g. "VAN DER
// BERG") into a single surname string.
func joinSurnameWithPrefix(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	if len(tokens) == 1 {
		return tokens[0]
	}
	if !namePrefixesToRemove[tokens[0]] {
		// No multi-word prefix: any middle tokens are dropped, keeping
		// exactly the last token as the surname.
		return tokens[len(tokens)-1]
	}
	i := 0
	for i < len(tokens)-1 && namePrefixesToRemove[tokens[i]] {
		i++
	}
	return strings.Join(tokens[:i+1], "")
}
