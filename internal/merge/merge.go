// Package merge reattaches scraped phone/owner records to a user's original
// file, cascading through match strategies when a stable row index isn't
// available (§4.10 Merge Engine). The cascade shape is grounded on
// cloudbun-floatbox's JoinAgainstSoT, adapted from SoT/satellite joins to
// original-row/scraped-record reattachment.
package merge

import (
	"sort"
	"strings"

	"leadenrich/internal/address"
)

// Target is the MergeTarget data-model entity: the user's original file
// enriched with new columns.
type Target struct {
	OriginalIndex int
	Columns       map[string]string
}

// ScrapedRecord is a scraped phone or owner record awaiting reattachment.
type ScrapedRecord struct {
	OriginalIndex int // -1 when not present; triggers strategies 2-4.
	Name          string
	Address       string
	Columns       map[string]string
}

const (
	nameAddressThreshold = 0.6
	fuzzyPrefixLen       = 5
	jaccardThreshold     = 0.7
	lowCoverageThreshold = 0.30
)

// MatchType records which cascade strategy produced a reattachment, for
// diagnostics.
type MatchType string

const (
	MatchStableIndex    MatchType = "stable_index"
	MatchNameAddress    MatchType = "name_address"
	MatchFuzzyPrefix    MatchType = "fuzzy_prefix"
	MatchJaccard        MatchType = "jaccard"
	MatchNone           MatchType = "none"
)

// Attach is the outcome of reattaching one ScrapedRecord.
type Attach struct {
	Record    ScrapedRecord
	TargetIdx int // index into the `targets` slice, -1 if unattached.
	MatchType MatchType
}

// Merge runs the §4.10 cascade over every scraped record, re-sorting by
// original_index first since scraper batches may complete out of order
// (§5 ordering guarantees).
func Merge(targets []Target, records []ScrapedRecord) []Attach {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].OriginalIndex < records[j].OriginalIndex
	})

	byIndex := make(map[int]int, len(targets))
	for i, t := range targets {
		byIndex[t.OriginalIndex] = i
	}

	attaches := make([]Attach, len(records))
	attachedCount := 0
	for i, rec := range records {
		attaches[i] = attachOne(rec, targets, byIndex)
		if attaches[i].TargetIdx >= 0 {
			attachedCount++
		}
	}

	coverage := 0.0
	if len(records) > 0 {
		coverage = float64(attachedCount) / float64(len(records))
	}
	if coverage < lowCoverageThreshold {
		for i, a := range attaches {
			if a.TargetIdx >= 0 {
				continue
			}
			if idx, ok := jaccardMatch(a.Record, targets); ok {
				attaches[i] = Attach{Record: a.Record, TargetIdx: idx, MatchType: MatchJaccard}
			}
		}
	}

	return attaches
}

func attachOne(rec ScrapedRecord, targets []Target, byIndex map[int]int) Attach {
	// Strategy 1: stable index match -- the only strategy used when the
	// index is present.
	if rec.OriginalIndex >= 0 {
		if idx, ok := byIndex[rec.OriginalIndex]; ok {
			return Attach{Record: rec, TargetIdx: idx, MatchType: MatchStableIndex}
		}
		return Attach{Record: rec, TargetIdx: -1, MatchType: MatchNone}
	}

	// Strategy 2: name+address similarity, score >= 0.6.
	if idx, ok := nameAddressMatch(rec, targets); ok {
		return Attach{Record: rec, TargetIdx: idx, MatchType: MatchNameAddress}
	}

	// Strategy 3: fuzzy name prefix (first 5-6 chars match on both sides).
	if idx, ok := fuzzyPrefixMatch(rec, targets); ok {
		return Attach{Record: rec, TargetIdx: idx, MatchType: MatchFuzzyPrefix}
	}

	return Attach{Record: rec, TargetIdx: -1, MatchType: MatchNone}
}

func nameAddressMatch(rec ScrapedRecord, targets []Target) (int, bool) {
	bestIdx := -1
	bestScore := 0.0
	for i, t := range targets {
		score := nameAddressScore(rec, t)
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	if bestIdx >= 0 && bestScore >= nameAddressThreshold {
		return bestIdx, true
	}
	return -1, false
}

func nameAddressScore(rec ScrapedRecord, t Target) float64 {
	targetName := t.Columns["cleaned_name"]
	targetAddr := t.Columns["street_address"]

	nameScore := tokenSimilarity(rec.Name, targetName) * 2
	addrScore := 0.0
	if rec.Address != "" && targetAddr != "" && address.Normalize(rec.Address) == address.Normalize(targetAddr) {
		addrScore = 1
	}
	// Weighted average: name counts double.
	return (nameScore + addrScore) / 3
}

func tokenSimilarity(a, b string) float64 {
	ta := strings.Fields(strings.ToUpper(a))
	tb := strings.Fields(strings.ToUpper(b))
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	setB := make(map[string]bool, len(tb))
	for _, t := range tb {
		setB[t] = true
	}
	matches := 0
	for _, t := range ta {
		if setB[t] {
			matches++
		}
	}
	denom := len(ta)
	if len(tb) > denom {
		denom = len(tb)
	}
	return float64(matches) / float64(denom)
}

func fuzzyPrefixMatch(rec ScrapedRecord, targets []Target) (int, bool) {
	recPrefix := namePrefix(rec.Name)
	if recPrefix == "" {
		return -1, false
	}
	for i, t := range targets {
		if namePrefix(t.Columns["cleaned_name"]) == recPrefix {
			return i, true
		}
	}
	return -1, false
}

func namePrefix(name string) string {
	name = strings.ToUpper(strings.Join(strings.Fields(name), ""))
	n := fuzzyPrefixLen
	if len(name) < n {
		n = len(name)
	}
	if n == 0 {
		return ""
	}
	return name[:n]
}

func jaccardMatch(rec ScrapedRecord, targets []Target) (int, bool) {
	bestIdx := -1
	bestScore := 0.0
	recSet := wordSet(rec.Name)
	if len(recSet) == 0 {
		return -1, false
	}
	for i, t := range targets {
		score := jaccard(recSet, wordSet(t.Columns["cleaned_name"]))
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	if bestIdx >= 0 && bestScore >= jaccardThreshold {
		return bestIdx, true
	}
	return -1, false
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, t := range strings.Fields(strings.ToUpper(s)) {
		set[t] = true
	}
	return set
}

func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	intersection := 0
	for t := range a {
		if b[t] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// OutputFilename implements the deterministic output-naming rule:
// Merged_<original-basename>.csv.
func OutputFilename(originalBasename string) string {
	return "Merged_" + originalBasename
}
