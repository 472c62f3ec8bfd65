package assessor

import (
	"context"
	"errors"
	"testing"
)

func TestParseOwnersFieldLabel(t *testing.T) {
	html := `<html><body>
		<table><tr><td>Property Owner(s)</td><td>SMITH JOHN &amp; SMITH JANE</td></tr></table>
	</body></html>`
	owners, found := ParseOwners(html)
	if !found {
		t.Fatal("expected owners to be found")
	}
	if len(owners) != 2 || owners[0] != "JOHN SMITH" || owners[1] != "JANE SMITH" {
		t.Errorf("unexpected owners: %v", owners)
	}
}

func TestParseOwnersRegexFallback(t *testing.T) {
	html := `<html><body><p>Some header text Property Owner(s): DOE JOHN H/E DOE MARY Mailing Address: 123 MAIN ST</p></body></html>`
	owners, found := ParseOwners(html)
	if !found {
		t.Fatal("expected owners to be found")
	}
	if len(owners) != 2 {
		t.Fatalf("expected 2 owners, got %v", owners)
	}
}

func TestParseOwnersSemicolonSeparator(t *testing.T) {
	html := `<html><body><p>Property Owner(s): GARCIA MARIA; GARCIA LUIS</p></body></html>`
	owners, found := ParseOwners(html)
	if !found || len(owners) != 2 {
		t.Fatalf("unexpected result: %v found=%v", owners, found)
	}
}

// A bare first name/initial following the separator must inherit the
// surname parsed from the preceding "LAST, FIRST" piece.
func TestParseOwnersSurnameCarriesForwardToBareFirstName(t *testing.T) {
	html := `<html><body><p>Property Owner(s): BARATZ, PHILIP J &amp; LISA T Mailing Address: 1 OCEAN DR</p></body></html>`
	owners, found := ParseOwners(html)
	if !found {
		t.Fatal("expected owners to be found")
	}
	if len(owners) != 2 || owners[0] != "PHILIP BARATZ" || owners[1] != "LISA BARATZ" {
		t.Errorf("owners = %v, want [PHILIP BARATZ LISA BARATZ]", owners)
	}
}

func TestParseOwnersNotFound(t *testing.T) {
	html := `<html><body><p>No parcel matched your search.</p></body></html>`
	_, found := ParseOwners(html)
	if found {
		t.Error("expected not found")
	}
}

type fakeDriver struct {
	navigateErr  error
	submitErr    error
	html         string
	htmlErr      error
	navigateCall int
}

func (f *fakeDriver) Navigate(ctx context.Context, url string) error {
	f.navigateCall++
	return f.navigateErr
}
func (f *fakeDriver) SubmitSearch(ctx context.Context, searchFormat string) error {
	return f.submitErr
}
func (f *fakeDriver) PageHTML(ctx context.Context) (string, error) {
	return f.html, f.htmlErr
}

func TestLookupOwnerSkippedWhenIneligible(t *testing.T) {
	rec := LookupOwner(context.Background(), &fakeDriver{}, "http://x", 3, "123 MAIN ST", false)
	if rec.State != StateSkipped {
		t.Errorf("expected Skipped, got %s", rec.State)
	}
}

func TestLookupOwnerParcelFound(t *testing.T) {
	d := &fakeDriver{html: `<p>Property Owner(s): SMITH JOHN</p>`}
	rec := LookupOwner(context.Background(), d, "http://x", 1, "123 MAIN ST", true)
	if rec.State != StateParcel {
		t.Errorf("expected Parcel, got %s", rec.State)
	}
	if len(rec.Owners) != 1 || rec.Owners[0] != "JOHN SMITH" {
		t.Errorf("unexpected owners: %v", rec.Owners)
	}
}

func TestLookupOwnerNotFound(t *testing.T) {
	d := &fakeDriver{html: `<p>No results found.</p>`}
	rec := LookupOwner(context.Background(), d, "http://x", 2, "123 MAIN ST", true)
	if rec.State != StateNotFound {
		t.Errorf("expected NotFound, got %s", rec.State)
	}
}

func TestLookupOwnerRetriesThenErrors(t *testing.T) {
	d := &fakeDriver{navigateErr: errors.New("timeout")}
	rec := LookupOwner(context.Background(), d, "http://x", 4, "123 MAIN ST", true)
	if rec.State != StateError {
		t.Errorf("expected Error, got %s", rec.State)
	}
	if d.navigateCall != maxRetries+1 {
		t.Errorf("expected %d navigate attempts, got %d", maxRetries+1, d.navigateCall)
	}
}
