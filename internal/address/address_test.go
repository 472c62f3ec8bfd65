package address

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"123 main street", "123 MAIN ST"},
		{"456 N. Ocean Drive", "456 N OCEAN DR"},
		{"789 twenty-first avenue", "789 21ST AVE"},
		{"100 southwest boulevard", "100 SW BLVD"},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEligible(t *testing.T) {
	cases := []struct {
		city string
		want bool
	}{
		{"Hollywood", true},
		{"Fort Lauderdale", true},
		{"Pembroke Pines", true},
		{"Deerfield Beach", true},
		{"Some Random Beach Town", false},
		{"Fort Myers", true},
		{"North Lauderdale Annex", true},
		{"Miami", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := Eligible(tc.city); got != tc.want {
			t.Errorf("Eligible(%q) = %v, want %v", tc.city, got, tc.want)
		}
	}
}

func TestMatchHouseNumberGate(t *testing.T) {
	r := Match("123 MAIN ST", "456 MAIN ST")
	if r.Matched {
		t.Error("expected house number mismatch to fail")
	}
	if r.Confidence != 0 {
		t.Errorf("confidence = %d, want 0", r.Confidence)
	}
}

func TestMatchExact(t *testing.T) {
	r := Match("123 MAIN STREET", "123 MAIN ST")
	if !r.Matched {
		t.Fatalf("expected match, got %+v", r)
	}
	if r.Confidence < 70 {
		t.Errorf("confidence = %d, want >= 70", r.Confidence)
	}
}

func TestMatchOrdinalEquivalence(t *testing.T) {
	r := Match("200 21ST AVE", "200 TWENTY-FIRST AVE")
	if !r.Matched {
		t.Fatalf("expected ordinal-equivalent match, got %+v", r)
	}
}

func TestMatchOrdinalEquivalenceTwentySecond(t *testing.T) {
	r := Match("5920 22ND AVE", "5920 TWENTY-SECOND AVE")
	if !r.Matched {
		t.Fatalf("expected ordinal-equivalent match, got %+v", r)
	}
}

func TestMatchDirectionalEquivalence(t *testing.T) {
	r := Match("300 N OCEAN DR", "300 NORTH OCEAN DR")
	if !r.Matched {
		t.Fatalf("expected directional-equivalent match, got %+v", r)
	}
}

func TestMatchGenericStreetTypeOnlyDowngrades(t *testing.T) {
	r := Match("100 ST", "100 AVE ST")
	if r.Matched {
		t.Errorf("expected generic-only match to be rejected, got %+v", r)
	}
}

func TestMatchTooFewTokens(t *testing.T) {
	r := Match("123", "123 MAIN ST")
	if r.Matched {
		t.Error("expected single-token side to fail")
	}
}

func TestOrdinalSuffix(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{1, "ST"}, {2, "ND"}, {3, "RD"}, {4, "TH"},
		{11, "TH"}, {12, "TH"}, {13, "TH"},
		{21, "ST"}, {22, "ND"}, {23, "RD"}, {24, "TH"},
		{111, "TH"}, {112, "TH"}, {113, "TH"},
	}
	for _, tc := range cases {
		if got := ordinalSuffix(tc.n); got != tc.want {
			t.Errorf("ordinalSuffix(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}
