package template

import (
	"strings"
	"testing"

	"github.com/entwurf/entwurf-cli/pkg/models"
)

func expandOrFail(t *testing.T, schema string) []models.Section {
	t.Helper()
	secs, err := ExpandBytes([]byte(schema))
	if err != nil {
		t.Fatalf("ExpandBytes: %v", err)
	}
	return secs
}

func assertSections(t *testing.T, got []models.Section, want []models.Section) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d sections, want %d:\ngot: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i].ID != want[i].ID {
			t.Errorf("[%d]: got id %q, want %q", i, got[i].ID, want[i].ID)
		}
		if got[i].Title != want[i].Title {
			t.Errorf("[%d]: got title %q, want %q", i, got[i].Title, want[i].Title)
		}
		if got[i].Content != "" {
			t.Errorf("[%d]: content should start empty, got %q", i, got[i].Content)
		}
	}
}

func TestExpandTitleBlockAndNesting(t *testing.T) {
	schema := `
Titelblock:
  Projekttitel: ""
  Antragsteller: ""
  Datum: ""
1_A:
  X: ""
  Y:
    Z: ""
`
	got := expandOrFail(t, schema)
	assertSections(t, got, []models.Section{
		{ID: "0", Title: "0. Titelblock"},
		{ID: "1", Title: "1. A"},
		{ID: "1.1", Title: "1.1. X"},
		{ID: "1.2", Title: "1.2. Y"},
		{ID: "1.2.1", Title: "1.2.1. Z"},
	})
}

func TestExpandTopLevelOrdering(t *testing.T) {
	// Source order is scrambled; numeric order must win and the title
	// block must come first even when declared last.
	schema := `
4_Verwertung: ""
2_Ziele: ""
10_Anhang: ""
Titelblock:
  Projekttitel: ""
`
	got := expandOrFail(t, schema)
	assertSections(t, got, []models.Section{
		{ID: "0", Title: "0. Titelblock"},
		{ID: "2", Title: "2. Ziele"},
		{ID: "4", Title: "4. Verwertung"},
		{ID: "10", Title: "10. Anhang"},
	})
}

func TestExpandSkipsSequences(t *testing.T) {
	schema := `
1_Arbeitsplan:
  Arbeitspakete:
    - AP1
    - AP2
  Zeitplan: ""
  Meilensteine: []
`
	got := expandOrFail(t, schema)
	assertSections(t, got, []models.Section{
		{ID: "1", Title: "1. Arbeitsplan"},
		{ID: "1.1", Title: "1.1. Zeitplan"},
	})
}

func TestExpandUnderscorePhrases(t *testing.T) {
	schema := `
2_Ausgangssituation_und_Motivation:
  Stand_der_Technik: ""
`
	got := expandOrFail(t, schema)
	assertSections(t, got, []models.Section{
		{ID: "2", Title: "2. Ausgangssituation und Motivation"},
		{ID: "2.1", Title: "2.1. Stand der Technik"},
	})
}

func TestExpandUnprefixedKeysSortLast(t *testing.T) {
	schema := `
Notizen: ""
3_Ziele: ""
Anhang: ""
`
	got := expandOrFail(t, schema)
	assertSections(t, got, []models.Section{
		{ID: "3", Title: "3. Ziele"},
		{ID: "4", Title: "4. Anhang"},
		{ID: "5", Title: "5. Notizen"},
	})
}

func TestExpandRejectsDuplicateTopLevelNumbers(t *testing.T) {
	schema := `
3_Ziele: ""
3_Verwertung: ""
`
	_, err := ExpandBytes([]byte(schema))
	if err == nil {
		t.Fatal("expected an error for duplicate top-level numbers")
	}
	for _, want := range []string{"3_Ziele", "3_Verwertung"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error does not name %q: %v", want, err)
		}
	}
}

func TestExpandRejectsNonMapping(t *testing.T) {
	if _, err := ExpandBytes([]byte(`[1, 2, 3]`)); err == nil {
		t.Error("expected an error for a non-mapping schema")
	}
}

func TestExpandJSONSchema(t *testing.T) {
	// JSON is a YAML subset; schemas served by the backend are JSON.
	schema := `{"Titelblock": {"Projekttitel": ""}, "1_Ziele": {"Gesamtziel": ""}}`
	got := expandOrFail(t, schema)
	assertSections(t, got, []models.Section{
		{ID: "0", Title: "0. Titelblock"},
		{ID: "1", Title: "1. Ziele"},
		{ID: "1.1", Title: "1.1. Gesamtziel"},
	})
}

func TestBuiltinSectionsIsWellFormed(t *testing.T) {
	secs := BuiltinSections()
	if len(secs) == 0 {
		t.Fatal("builtin schema expanded to nothing")
	}
	if secs[0].ID != "0" {
		t.Errorf("first builtin section = %q, want the title block", secs[0].ID)
	}
	seen := make(map[string]bool, len(secs))
	for _, s := range secs {
		if seen[s.ID] {
			t.Errorf("duplicate id %q", s.ID)
		}
		seen[s.ID] = true
	}
	for _, s := range secs {
		if s.ID == "0" {
			continue
		}
		if dot := lastDot(s.ID); dot >= 0 && !seen[s.ID[:dot]] {
			t.Errorf("section %q has no parent in the expansion", s.ID)
		}
	}
}

func lastDot(id string) int {
	for i := len(id) - 1; i >= 0; i-- {
		if id[i] == '.' {
			return i
		}
	}
	return -1
}
