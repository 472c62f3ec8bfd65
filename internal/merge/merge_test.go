package merge

import "testing"

func TestMergeStableIndex(t *testing.T) {
	targets := []Target{
		{OriginalIndex: 0, Columns: map[string]string{"cleaned_name": "JOHN SMITH"}},
		{OriginalIndex: 1, Columns: map[string]string{"cleaned_name": "JANE DOE"}},
	}
	records := []ScrapedRecord{
		{OriginalIndex: 1, Name: "JANE DOE"},
		{OriginalIndex: 0, Name: "JOHN SMITH"},
	}
	attaches := Merge(targets, records)
	if len(attaches) != 2 {
		t.Fatalf("len = %d, want 2", len(attaches))
	}
	for _, a := range attaches {
		if a.MatchType != MatchStableIndex {
			t.Errorf("MatchType = %q, want stable_index", a.MatchType)
		}
		if a.TargetIdx < 0 {
			t.Error("expected attached target")
		}
	}
	// Out-of-order completion must still resolve to the correct target.
	if attaches[0].Record.OriginalIndex != 0 {
		t.Errorf("expected re-sort by original index, got order %+v", attaches)
	}
}

func TestMergeNameAddressFallback(t *testing.T) {
	targets := []Target{
		{OriginalIndex: 0, Columns: map[string]string{
			"cleaned_name":   "JOHN SMITH",
			"street_address": "123 MAIN ST",
		}},
	}
	records := []ScrapedRecord{
		{OriginalIndex: -1, Name: "JOHN SMITH", Address: "123 MAIN ST"},
	}
	attaches := Merge(targets, records)
	if attaches[0].TargetIdx != 0 {
		t.Fatalf("expected match via name+address, got %+v", attaches[0])
	}
	if attaches[0].MatchType != MatchNameAddress {
		t.Errorf("MatchType = %q, want name_address", attaches[0].MatchType)
	}
}

func TestMergeFuzzyPrefixFallback(t *testing.T) {
	targets := []Target{
		{OriginalIndex: 0, Columns: map[string]string{"cleaned_name": "JONATHAN SMYTHE"}},
	}
	records := []ScrapedRecord{
		{OriginalIndex: -1, Name: "JONATHAN SMITH"},
	}
	attaches := Merge(targets, records)
	if attaches[0].TargetIdx != 0 {
		t.Fatalf("expected fuzzy prefix match, got %+v", attaches[0])
	}
}

func TestMergeUnattachedWhenNoCandidate(t *testing.T) {
	targets := []Target{
		{OriginalIndex: 0, Columns: map[string]string{"cleaned_name": "ALICE WONG"}},
	}
	records := []ScrapedRecord{
		{OriginalIndex: -1, Name: "ZZZZZ NOBODY"},
	}
	attaches := Merge(targets, records)
	if attaches[0].TargetIdx != -1 {
		t.Errorf("expected no match, got %+v", attaches[0])
	}
}

func TestOutputFilename(t *testing.T) {
	if got := OutputFilename("leads.csv"); got != "Merged_leads.csv" {
		t.Errorf("OutputFilename = %q", got)
	}
}
