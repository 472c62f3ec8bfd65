package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"leadenrich/internal/workspace"
)

func newTestWorkspace(t *testing.T) *workspace.Manager {
	t.Helper()
	root := t.TempDir()
	ws, err := workspace.NewManager(root)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return ws
}

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestRunInputUnreadableIsFatal(t *testing.T) {
	ws := newTestWorkspace(t)
	job := Job{
		UserID:       "u1",
		InputPath:    filepath.Join(t.TempDir(), "missing.csv"),
		OriginalName: "missing.csv",
		Type:         JobOwnerSearch,
		Workspace:    ws,
	}

	_, err := Run(context.Background(), job)
	if err == nil {
		t.Fatal("expected an error for a missing input file")
	}
	if !strings.Contains(err.Error(), ErrInputUnreadable.Error()) {
		t.Errorf("err = %v, want wrapping %v", err, ErrInputUnreadable)
	}
}

// Without a reachable WebDriver, browser.New fails for every eligible row;
// the owner-search stage must still produce a merged output file with zero
// enriched rows rather than erroring the whole job (§7 propagation policy).
func TestRunOwnerSearchFallsBackWithoutBrowser(t *testing.T) {
	ws := newTestWorkspace(t)
	dir := t.TempDir()
	csv := "name,address,city,state,phone\n" +
		"Jane Doe,123 Main St,Miami Beach,FL,\n" +
		"John Roe,456 Oak Ave,Denver,CO,\n"
	input := writeCSV(t, dir, "leads.csv", csv)

	job := Job{
		UserID:       "u1",
		InputPath:    input,
		OriginalName: "leads.csv",
		Type:         JobOwnerSearch,
		MaxRecords:   10,
		Workspace:    ws,
		Concurrency:  2,
	}

	result, err := Run(context.Background(), job)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.RowsIn != 2 {
		t.Errorf("RowsIn = %d, want 2", result.RowsIn)
	}
	if result.EligibleRows != 1 {
		t.Errorf("EligibleRows = %d, want 1 (only the Miami Beach row)", result.EligibleRows)
	}
	if result.RowsEnriched != 0 {
		t.Errorf("RowsEnriched = %d, want 0 without a reachable browser", result.RowsEnriched)
	}
	if _, err := os.Stat(result.OutputPath); err != nil {
		t.Errorf("output file missing: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(result.OutputPath), "Merged_") {
		t.Errorf("output path = %q, want Merged_ prefix", result.OutputPath)
	}
}

func TestRunPhoneSearchSkipsRowsWithExistingPhone(t *testing.T) {
	ws := newTestWorkspace(t)
	dir := t.TempDir()
	csv := "name,address,city,state,phone\n" +
		"Jane Doe,123 Main St,Miami Beach,FL,(305) 555-1111\n" +
		"John Roe,456 Oak Ave,Fort Lauderdale,FL,\n"
	input := writeCSV(t, dir, "leads.csv", csv)

	job := Job{
		UserID:       "u1",
		InputPath:    input,
		OriginalName: "leads.csv",
		Type:         JobPhoneSearch,
		MaxRecords:   10,
		Workspace:    ws,
		Concurrency:  1,
	}

	result, err := Run(context.Background(), job)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.EligibleRows != 2 {
		t.Errorf("EligibleRows = %d, want 2 (both cities qualify)", result.EligibleRows)
	}
	if result.RowsEnriched != 0 {
		t.Errorf("RowsEnriched = %d, want 0 without a reachable browser", result.RowsEnriched)
	}
}

func TestRunUnknownJobTypeFallsBackToUnchangedOutput(t *testing.T) {
	ws := newTestWorkspace(t)
	dir := t.TempDir()
	csv := "name,address,city,state,phone\n" +
		"Jane Doe,123 Main St,Miami Beach,FL,\n"
	input := writeCSV(t, dir, "leads.csv", csv)

	job := Job{
		UserID:       "u1",
		InputPath:    input,
		OriginalName: "leads.csv",
		Type:         JobType("bogus"),
		Workspace:    ws,
	}

	result, err := Run(context.Background(), job)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.RowsIn != 1 {
		t.Errorf("RowsIn = %d, want 1", result.RowsIn)
	}
	data, err := os.ReadFile(result.OutputPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "Jane Doe") {
		t.Errorf("unchanged output missing original data: %q", string(data))
	}
}

func TestSplitName(t *testing.T) {
	cases := []struct {
		in         string
		first, last string
	}{
		{"JANE DOE", "JANE", "DOE"},
		{"MADONNA", "MADONNA", ""},
		{"", "", ""},
		{"JANE Q DOE", "JANE", "Q"},
	}
	for _, c := range cases {
		first, last := splitName(c.in)
		if first != c.first || last != c.last {
			t.Errorf("splitName(%q) = (%q, %q), want (%q, %q)", c.in, first, last, c.first, c.last)
		}
	}
}
