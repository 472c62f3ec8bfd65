package applier

import (
	"testing"

	"leadenrich/internal/inference"
	"leadenrich/internal/reader"
)

func rowOf(cols []string, vals []string) reader.RawRow {
	row := make(reader.RawRow, len(cols))
	for i, c := range cols {
		row[i] = reader.Cell{Column: c, Value: vals[i]}
	}
	return row
}

func TestApplySeparatedComponents(t *testing.T) {
	cols := []string{"Owner", "House", "Street", "Type", "City", "State", "Phone"}
	f := &inference.Formula{
		AddressMethod: inference.MethodSeparatedComponents,
		ColumnMap: map[inference.SemanticField]string{
			inference.FieldPrimaryName: "Owner",
			inference.FieldHouseNumber: "House",
			inference.FieldStreetName:  "Street",
			inference.FieldStreetType:  "Type",
			inference.FieldCity:        "City",
			inference.FieldState:       "State",
		},
	}
	rows := []reader.RawRow{
		rowOf(cols, []string{"SMITH, JOHN", "123", "MAIN", "STREET", "Hollywood", "FL", ""}),
	}
	out := Apply(rows, f)
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1", len(out))
	}
	r := out[0]
	if r.CleanedName != "JOHN SMITH" {
		t.Errorf("CleanedName = %q", r.CleanedName)
	}
	if r.StreetAddress != "123 MAIN ST" {
		t.Errorf("StreetAddress = %q", r.StreetAddress)
	}
	if r.SearchFormat != "123 MAIN ST, HOLLYWOOD" {
		t.Errorf("SearchFormat = %q", r.SearchFormat)
	}
	if !r.Eligible {
		t.Error("expected eligible for Hollywood")
	}
	if r.HasExistingPhone {
		t.Error("expected no existing phone")
	}
}

func TestApplyDropsUselessRows(t *testing.T) {
	cols := []string{"Owner", "City"}
	f := &inference.Formula{
		ColumnMap: map[inference.SemanticField]string{
			inference.FieldPrimaryName: "Owner",
			inference.FieldCity:        "City",
		},
	}
	rows := []reader.RawRow{
		rowOf(cols, []string{"", ""}),
	}
	out := Apply(rows, f)
	if len(out) != 0 {
		t.Fatalf("len = %d, want 0 for empty name+address row", len(out))
	}
}

func TestApplyDetectsExistingPhone(t *testing.T) {
	cols := []string{"Owner", "City", "Phone"}
	f := &inference.Formula{
		ColumnMap: map[inference.SemanticField]string{
			inference.FieldPrimaryName: "Owner",
			inference.FieldCity:        "City",
		},
	}
	rows := []reader.RawRow{
		rowOf(cols, []string{"John Smith", "Hollywood", "(305) 555-1234"}),
	}
	out := Apply(rows, f)
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1", len(out))
	}
	if !out[0].HasExistingPhone {
		t.Error("expected HasExistingPhone true")
	}
	if out[0].ExistingPrimary == "" {
		t.Error("expected ExistingPrimary populated")
	}
}

func TestApplyCombinedAddressStripsStateZip(t *testing.T) {
	cols := []string{"Owner", "Address", "City"}
	f := &inference.Formula{
		AddressMethod: inference.MethodParseCombined,
		ColumnMap: map[inference.SemanticField]string{
			inference.FieldPrimaryName:     "Owner",
			inference.FieldCombinedAddress: "Address",
			inference.FieldCity:            "City",
		},
	}
	rows := []reader.RawRow{
		rowOf(cols, []string{"John Smith", "123 Main St, Hollywood, FL 33020", "Hollywood"}),
	}
	out := Apply(rows, f)
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1", len(out))
	}
	if out[0].StreetAddress != "123 MAIN ST, HOLLYWOOD" {
		t.Errorf("StreetAddress = %q, want state/ZIP stripped", out[0].StreetAddress)
	}
}
