// Package assessor implements the reverse address -> owner lookup against
// the county assessor site (§4.6 Assessor Scraper). Grounded on the
// teacher's internal/scraper/{scraper,selenium_scraper}.go state-machine
// and goquery usage, and original_source/bcpa_owner_search.py's eligibility
// and owner-parsing rules.
package assessor

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"leadenrich/internal/address"
	"leadenrich/internal/nameclean"
)

// State is a query's position in the per-query state machine (§4.6).
type State string

const (
	StateInit      State = "INIT"
	StateLoaded    State = "LOADED"
	StateSubmitted State = "SUBMITTED"
	StateParcel    State = "PARCEL"
	StateResults   State = "RESULTS"
	StateNotFound  State = "NOTFOUND"
	StateRetry     State = "RETRY"
	StateError     State = "ERROR"
	StateSkipped   State = "SKIPPED"
)

// maxRetries bounds the RETRY state per the "(<=N)" annotation in §4.6.
const maxRetries = 1

// OwnerRecord is the assessor scraper's output entity (spec §3).
type OwnerRecord struct {
	OriginalIndex int
	Owners        []string
	State         State
}

// Driver abstracts the browser interactions the assessor scraper needs,
// implemented by an adapter over browser.Context in production and by a
// fake in tests.
type Driver interface {
	Navigate(ctx context.Context, url string) error
	SubmitSearch(ctx context.Context, searchFormat string) error
	PageHTML(ctx context.Context) (string, error)
}

// LookupOwner implements lookup_owner(search_format) -> OwnerRecord |
// NotFound | Error (§4.6 contract), including the eligibility gate and
// retry-on-timeout behavior.
func LookupOwner(ctx context.Context, d Driver, searchURL string, originalIndex int, searchFormat string, eligible bool) OwnerRecord {
	if !eligible {
		log.Printf("assessor: row %d skipped, ineligible city", originalIndex)
		return OwnerRecord{OriginalIndex: originalIndex, State: StateSkipped}
	}

	state := StateInit
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := d.Navigate(ctx, searchURL); err != nil {
			log.Printf("assessor: row %d navigation failed (attempt %d): %v", originalIndex, attempt, err)
			state = StateRetry
			continue
		}
		state = StateLoaded

		if err := d.SubmitSearch(ctx, searchFormat); err != nil {
			log.Printf("assessor: row %d submit failed (attempt %d): %v", originalIndex, attempt, err)
			state = StateRetry
			continue
		}
		state = StateSubmitted

		html, err := d.PageHTML(ctx)
		if err != nil {
			log.Printf("assessor: row %d page read failed (attempt %d): %v", originalIndex, attempt, err)
			state = StateRetry
			continue
		}

		owners, found := ParseOwners(html)
		if !found {
			return OwnerRecord{OriginalIndex: originalIndex, State: StateNotFound}
		}
		return OwnerRecord{OriginalIndex: originalIndex, Owners: owners, State: StateParcel}
	}

	log.Printf("assessor: row %d giving up after %d attempts (last state %s)", originalIndex, maxRetries+1, state)
	return OwnerRecord{OriginalIndex: originalIndex, State: StateError}
}

var ownerFieldRe = regexp.MustCompile(`(?is)Property\s+Owner\(s\):\s*(.+?)(?:Mailing\s+Address:|$)`)
var ownerSplitRe = regexp.MustCompile(`\s+&\s+|\s+AND\s+|;|\s+/\s+|\s*H\s*/\s*E\s*`)

// ParseOwners locates the "Property Owner(s)" value on a parcel page and
// splits it into cleaned owner names, per §4.6's three-tier lookup
// (explicit field, label-row, regex fallback) and multi-owner separators.
func ParseOwners(html string) (owners []string, found bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, false
	}

	raw := findOwnerField(doc)
	if raw == "" {
		raw = findOwnerRow(doc)
	}
	if raw == "" {
		if m := ownerFieldRe.FindStringSubmatch(doc.Text()); m != nil {
			raw = strings.TrimSpace(m[1])
		}
	}
	if raw == "" {
		return nil, false
	}

	owners = splitOwners(raw)
	return owners, len(owners) > 0
}

// splitOwners splits a raw "Property Owner(s)" value on the multi-owner
// separators and cleans each piece, carrying the last parsed surname
// forward onto later pieces that reduce to a bare first name or initial
// (e.g. "BARATZ, PHILIP J & LISA T" -> ["PHILIP BARATZ", "LISA BARATZ"]).
func splitOwners(raw string) []string {
	var owners []string
	lastSurname := ""
	for _, piece := range ownerSplitRe.Split(raw, -1) {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}

		cleaned := nameclean.Clean(piece)
		if cleaned == "" && lastSurname != "" && !strings.Contains(piece, ",") {
			cleaned = nameclean.Clean(piece + " " + lastSurname)
		}
		if cleaned == "" {
			continue
		}

		owners = append(owners, cleaned)
		if fields := strings.Fields(cleaned); len(fields) > 0 {
			lastSurname = fields[len(fields)-1]
		}
	}
	return owners
}

func findOwnerField(doc *goquery.Document) string {
	var value string
	doc.Find("[data-field='owner'], .property-owner, #propertyOwner").EachWithBreak(func(i int, s *goquery.Selection) bool {
		value = strings.TrimSpace(s.Text())
		return value == ""
	})
	return value
}

func findOwnerRow(doc *goquery.Document) string {
	var value string
	doc.Find("tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return true
		}
		label := strings.TrimSpace(cells.First().Text())
		if strings.EqualFold(label, "Property Owner(s)") || strings.EqualFold(label, "Property Owner(s):") {
			value = strings.TrimSpace(cells.Eq(1).Text())
			return false
		}
		return true
	})
	return value
}

// Eligible reports whether a StandardizedRow's city permits this scraper to
// be invoked at all (§4.6 eligibility gate, delegated to internal/address).
func Eligible(city string) bool {
	return address.Eligible(city)
}

// SearchURL builds the search-form URL for a given search_format query
// string.
func SearchURL(baseURL, searchFormat string) string {
	return fmt.Sprintf("%s?q=%s", baseURL, searchFormat)
}
