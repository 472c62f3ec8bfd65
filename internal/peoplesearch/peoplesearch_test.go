package peoplesearch

import (
	"context"
	"testing"
)

func TestFormatPhone(t *testing.T) {
	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"(954) 555-1234", "(954) 555-1234", true},
		{"9545551234", "(954) 555-1234", true},
		{"19545551234", "(954) 555-1234", true},
		{"954-555-123", "", false},
	}
	for _, c := range cases {
		got, ok := formatPhone(c.raw)
		if ok != c.ok || (ok && got != c.want) {
			t.Errorf("formatPhone(%q) = (%q, %v), want (%q, %v)", c.raw, got, ok, c.want, c.ok)
		}
	}
}

func TestParseResultsStableClassCard(t *testing.T) {
	html := `<html><body>
		<div class="search-result">
			<h2>John Smith</h2>
			<p>123 Main St, Fort Lauderdale, FL 33301</p>
			<h3>Last Known Phone Numbers</h3>
			<p>(954) 555-1111 Mobile, primary phone</p>
			<p>(954) 555-2222 Cellular</p>
			<h3>Last Known Address</h3>
			<p>999 Other Ave, Sunrise, FL 33322</p>
		</div>
	</body></html>`

	rec := ParseResults(html, 7, "JOHN", "SMITH", "123 MAIN ST, FORT LAUDERDALE")
	if rec == nil {
		t.Fatal("expected a match")
	}
	if rec.PrimaryPhone != "(954) 555-1111" {
		t.Errorf("expected primary to be tagged phone, got %s", rec.PrimaryPhone)
	}
	if len(rec.AllPhones) != 2 {
		t.Errorf("expected 2 phones, got %v", rec.AllPhones)
	}
}

func TestParseResultsHeadingShapeCard(t *testing.T) {
	html := `<html><body>
		<div>
			<h2>Jane Doe</h2>
			<p>200 Oak Ave, Miami, FL 33101</p>
			<h3>Last Known Phone Numbers</h3>
			<p>(305) 555-3333 Wireless</p>
			<h3>Associated Email</h3>
			<p>jane@example.com</p>
		</div>
	</body></html>`

	rec := ParseResults(html, 2, "JANE", "DOE", "200 OAK AVE, MIAMI")
	if rec == nil {
		t.Fatal("expected a match for the heading-shape card layout")
	}
	if rec.PrimaryPhone != "(305) 555-3333" {
		t.Errorf("unexpected primary phone: %s", rec.PrimaryPhone)
	}
}

func TestParseResultsNoCandidateAddressRejected(t *testing.T) {
	html := `<html><body>
		<div>
			<h2>Jane Doe</h2>
			<h3>Last Known Phone Numbers</h3>
			<p>(305) 555-3333 Wireless</p>
		</div>
	</body></html>`

	rec := ParseResults(html, 2, "JANE", "DOE", "200 OAK AVE, MIAMI")
	if rec != nil {
		t.Error("expected no record when no candidate address line exists to verify against")
	}
}

func TestParseResultsSkipsLandlineOnlySection(t *testing.T) {
	html := `<html><body>
		<div class="search-result">
			<h2>John Smith</h2>
			<p>123 Main St, Fort Lauderdale, FL 33301</p>
			<h3>Last Known Phone Numbers</h3>
			<p>(954) 555-4444 landline</p>
			<h3>Last Known Address</h3>
		</div>
	</body></html>`

	rec := ParseResults(html, 1, "JOHN", "SMITH", "123 MAIN ST, FORT LAUDERDALE")
	if rec != nil {
		t.Errorf("expected no record when all numbers are landline, got %+v", rec)
	}
}

func TestParseResultsNoPhoneSectionAborts(t *testing.T) {
	html := `<html><body>
		<div class="search-result">
			<h2>John Smith</h2>
			<p>123 Main St, Fort Lauderdale, FL 33301</p>
			<h3>Last Known Address</h3>
			<p>(954) 555-9999 somewhere in the wrong section</p>
		</div>
	</body></html>`

	rec := ParseResults(html, 1, "JOHN", "SMITH", "123 MAIN ST, FORT LAUDERDALE")
	if rec != nil {
		t.Error("expected no record when the phone section is absent, even if numbers appear elsewhere")
	}
}

type fakeDriver struct {
	status int
	html   string
	calls  int
}

func (f *fakeDriver) SubmitQuery(ctx context.Context, first, last, city, state string) error {
	f.calls++
	return nil
}
func (f *fakeDriver) ResultHTML(ctx context.Context) (string, error) { return f.html, nil }
func (f *fakeDriver) StatusCode() int                                { return f.status }

func TestLookupPhonesRetriesWithEmptyCityOn404(t *testing.T) {
	d := &fakeDriver{status: 404}
	_, found, err := LookupPhones(context.Background(), d, 1, "JOHN", "SMITH", "FORT LAUDERDALE", "FL", "123 MAIN ST, FORT LAUDERDALE")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected not found on persistent 404")
	}
	if d.calls != 2 {
		t.Errorf("expected a retry call, got %d calls", d.calls)
	}
}
