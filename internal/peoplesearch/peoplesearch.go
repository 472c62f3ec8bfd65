// Package peoplesearch implements the name+address -> mobile phone lookup
// against the people-search site (§4.7). Grounded on the teacher's
// internal/scraper/scraper.go goquery card-parsing idiom and
// original_source/zabasearch_scraper.py's dual-DOM-shape and
// "Last Known Phone Numbers"-only extraction rules.
package peoplesearch

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"leadenrich/internal/address"
)

// Driver abstracts the browser interactions needed to run one query.
type Driver interface {
	SubmitQuery(ctx context.Context, first, last, city, state string) error
	ResultHTML(ctx context.Context) (string, error)
	StatusCode() int
}

// PhoneRecord is the people-search scraper's output entity (spec §3).
type PhoneRecord struct {
	OriginalIndex          int
	MatchedAddress         string
	AddressMatchConfidence int
	PrimaryPhone           string
	SecondaryPhone         string
	AllPhones              []string
}

// LookupPhones implements lookup_phones(first, last, city, state,
// search_format) -> PhoneRecord | NotFound | Error, including the
// empty-city retry on an initial 404.
func LookupPhones(ctx context.Context, d Driver, originalIndex int, first, last, city, state, searchFormat string) (*PhoneRecord, bool, error) {
	if err := d.SubmitQuery(ctx, first, last, city, state); err != nil {
		return nil, false, err
	}
	if d.StatusCode() == 404 && city != "" {
		if err := d.SubmitQuery(ctx, first, last, "", state); err != nil {
			return nil, false, err
		}
	}
	if d.StatusCode() == 404 {
		return nil, false, nil
	}

	html, err := d.ResultHTML(ctx)
	if err != nil {
		return nil, false, err
	}

	rec := ParseResults(html, originalIndex, first, last, searchFormat)
	if rec == nil {
		return nil, false, nil
	}
	return rec, true, nil
}

// ParseResults walks the candidate cards on a results page (handling both
// historical DOM shapes), finds the first one whose name matches and whose
// address matches search_format, and extracts its mobile phones.
func ParseResults(html string, originalIndex int, first, last, searchFormat string) *PhoneRecord {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	for _, card := range candidateCards(doc) {
		text := card.Text()
		if !containsNameFold(text, first, last) {
			continue
		}

		addr, ok := bestAddressMatch(card, searchFormat)
		if !ok {
			continue
		}

		phones, primary, secondary := extractMobilePhones(card)
		if len(phones) == 0 {
			continue
		}

		return &PhoneRecord{
			OriginalIndex:          originalIndex,
			MatchedAddress:         addr.text,
			AddressMatchConfidence: addr.confidence,
			PrimaryPhone:           primary,
			SecondaryPhone:         secondary,
			AllPhones:              phones,
		}
	}
	return nil
}

// candidateCards locates person cards under either historical DOM shape:
// a stable CSS class, or a div containing both a name heading and a
// "Last Known ..." section heading.
func candidateCards(doc *goquery.Document) []*goquery.Selection {
	var cards []*goquery.Selection

	doc.Find(".search-result, .person-card, .result-card").Each(func(i int, s *goquery.Selection) {
		cards = append(cards, s)
	})
	if len(cards) > 0 {
		return cards
	}

	doc.Find("div").Each(func(i int, s *goquery.Selection) {
		if s.Find("h2").Length() == 0 {
			return
		}
		hasSectionHeading := false
		s.Find("h3").EachWithBreak(func(j int, h *goquery.Selection) bool {
			t := strings.ToLower(h.Text())
			if strings.Contains(t, "last known phone") || strings.Contains(t, "last known address") {
				hasSectionHeading = true
				return false
			}
			return true
		})
		if hasSectionHeading {
			cards = append(cards, s)
		}
	})
	return cards
}

func containsNameFold(text, first, last string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, strings.ToLower(first)) && strings.Contains(lower, strings.ToLower(last))
}

var addressLineRe = regexp.MustCompile(`(?m)^\s*\d+\s+\S.*$`)
var cityStateZipRe = regexp.MustCompile(`[A-Za-z .]+,\s*[A-Z]{2}\s+\d{5}`)

type addressCandidate struct {
	text       string
	confidence int
}

// bestAddressMatch scans the card text for candidate address lines and
// runs §4.3 matching against searchFormat, accepting the first match.
func bestAddressMatch(card *goquery.Selection, searchFormat string) (addressCandidate, bool) {
	text := card.Text()
	var lines []string
	for _, m := range addressLineRe.FindAllString(text, -1) {
		lines = append(lines, strings.TrimSpace(m))
	}
	for _, m := range cityStateZipRe.FindAllString(text, -1) {
		lines = append(lines, strings.TrimSpace(m))
	}

	for _, line := range lines {
		result := address.Match(line, searchFormat)
		if result.Matched {
			return addressCandidate{text: line, confidence: result.Confidence}, true
		}
	}
	if len(lines) > 0 {
		return addressCandidate{text: lines[0], confidence: 0}, false
	}
	return addressCandidate{}, false
}

const lastKnownPhonesHeading = "last known phone numbers"

var sectionBoundaryHeadings = []string{
	"last known address", "past addresses", "associated email",
}

var phoneTokenRe = regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)

type taggedPhone struct {
	formatted string
	primary   bool
}

// extractMobilePhones locates the "Last Known Phone Numbers" section
// (and only that section) and extracts mobile-tagged numbers from it,
// per §4.7's mobile-only contract.
func extractMobilePhones(card *goquery.Selection) (all []string, primary, secondary string) {
	section := findSectionText(card, lastKnownPhonesHeading)
	if section == "" {
		return nil, "", ""
	}

	matches := phoneTokenRe.FindAllStringIndex(section, -1)
	seen := map[string]bool{}
	var tagged []taggedPhone

	for _, loc := range matches {
		raw := section[loc[0]:loc[1]]
		formatted, ok := formatPhone(raw)
		if !ok || seen[formatted] {
			continue
		}

		end := loc[1] + 200
		if end > len(section) {
			end = len(section)
		}
		context := strings.ToLower(section[loc[1]:end])

		if strings.Contains(context, "landline") {
			continue
		}

		seen[formatted] = true
		tagged = append(tagged, taggedPhone{
			formatted: formatted,
			primary:   strings.Contains(context, "primary phone"),
		})
	}

	if len(tagged) == 0 {
		return nil, "", ""
	}

	sort.SliceStable(tagged, func(i, j int) bool { return tagged[i].primary && !tagged[j].primary })

	for _, t := range tagged {
		all = append(all, t.formatted)
	}
	primary = all[0]
	if len(all) > 1 {
		secondary = all[1]
	}
	return all, primary, secondary
}

// findSectionText returns the text of the card between a heading matching
// headingWanted (case-insensitive) and the next section-boundary heading,
// or "" if the heading is absent. This is a deliberately narrow window:
// the scraper must not fall back to scanning the whole card.
func findSectionText(card *goquery.Selection, headingWanted string) string {
	var found bool
	var builder strings.Builder

	card.Find("h3, h4, strong").Each(func(i int, h *goquery.Selection) {
		heading := strings.ToLower(strings.TrimSpace(h.Text()))
		if heading == headingWanted {
			found = true
			node := h.Next()
			for node.Length() > 0 {
				t := strings.ToLower(strings.TrimSpace(node.Text()))
				if isBoundaryHeading(t) {
					break
				}
				builder.WriteString(node.Text())
				builder.WriteString(" ")
				node = node.Next()
			}
		}
	})

	if !found {
		return ""
	}
	return builder.String()
}

func isBoundaryHeading(text string) bool {
	for _, h := range sectionBoundaryHeadings {
		if text == h {
			return true
		}
	}
	return false
}

// formatPhone normalizes a raw phone token to "(NNN) NNN-NNNN", accepting
// 10-digit numbers and 11-digit numbers whose leading digit is 1.
func formatPhone(raw string) (string, bool) {
	var digits []byte
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c >= '0' && c <= '9' {
			digits = append(digits, c)
		}
	}
	if len(digits) == 11 && digits[0] == '1' {
		digits = digits[1:]
	}
	if len(digits) != 10 {
		return "", false
	}
	return "(" + string(digits[0:3]) + ") " + string(digits[3:6]) + "-" + string(digits[6:10]), true
}
