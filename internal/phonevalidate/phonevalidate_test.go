package phonevalidate

import (
	"context"
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"3055551234", "(305) 555-1234", true},
		{"13055551234", "(305) 555-1234", true},
		{"(305) 555-1234", "(305) 555-1234", true},
		{"12345", "", false},
	}
	for _, tc := range cases {
		got, ok := Format(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("Format(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestHeuristicClassify(t *testing.T) {
	labels := heuristicClassify([]string{"3215551234", "3055551234", "123"})
	if labels[0] != Mobile {
		t.Errorf("321 area code = %v, want mobile", labels[0])
	}
	if labels[1] != Landline {
		t.Errorf("305 area code = %v, want landline", labels[1])
	}
	if labels[2] != Invalid {
		t.Errorf("short number = %v, want invalid", labels[2])
	}
}

type fakeClassifier struct {
	labels []Label
	err    error
}

func (f *fakeClassifier) ClassifyBatch(ctx context.Context, numbers []string) ([]Label, error) {
	return f.labels, f.err
}

func TestValidateBatchFallsBackOnClassifierError(t *testing.T) {
	c := &fakeClassifier{err: errors.New("boom")}
	labels := ValidateBatch(context.Background(), c, []string{"3215551234"})
	if labels[0] != Mobile {
		t.Errorf("expected heuristic fallback to label 321 as mobile, got %v", labels[0])
	}
}

func TestValidateBatchUsesClassifier(t *testing.T) {
	c := &fakeClassifier{labels: []Label{Landline}}
	labels := ValidateBatch(context.Background(), c, []string{"3055551234"})
	if labels[0] != Landline {
		t.Errorf("expected classifier result landline, got %v", labels[0])
	}
}

func TestExplode(t *testing.T) {
	pairs := []Pair{
		{Primary: "3215551111", Secondary: "3215552222"}, // mobile+mobile
		{Primary: "3215553333", Secondary: "3055554444"}, // mobile+other
		{Primary: "3055555555", Secondary: "3215556666"}, // other+mobile
		{Primary: "3055557777", Secondary: "3055558888"}, // other+other
	}
	primaryLabels := []Label{Mobile, Mobile, Landline, Landline}
	secondaryLabels := []Label{Mobile, Landline, Mobile, Landline}

	out := Explode(pairs, primaryLabels, secondaryLabels)
	if len(out) != 4 {
		t.Fatalf("len = %d, want 4 (2 from row0, 1 from row1, 1 from row2, 0 from row3)", len(out))
	}
	for _, row := range out {
		if row.SourceIndex == 3 {
			t.Errorf("row 3 (other+other) should have been dropped")
		}
	}
}
