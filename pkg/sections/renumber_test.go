package sections

import (
	"strings"
	"testing"

	"github.com/entwurf/entwurf-cli/pkg/models"
)

func sec(id, phrase string) models.Section {
	return models.Section{ID: id, Title: id + ". " + phrase}
}

func ids(secs []models.Section) []string {
	out := make([]string, len(secs))
	for i, s := range secs {
		out[i] = s.ID
	}
	return out
}

func assertIDs(t *testing.T, got []models.Section, want []string, context string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("%s: got ids %v, want %v", context, gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Errorf("%s: [%d]: got %q, want %q", context, i, gotIDs[i], want[i])
		}
	}
}

func TestRenumber(t *testing.T) {
	tests := []struct {
		name    string
		input   []models.Section
		wantIDs []string
	}{
		{
			name: "already canonical is unchanged",
			input: []models.Section{
				sec("1", "Einleitung"),
				sec("2", "Projektbeschreibung"),
				sec("2.1", "Ziele"),
			},
			wantIDs: []string{"1", "2", "2.1"},
		},
		{
			name: "gap after deletion closes",
			input: []models.Section{
				sec("1", "Einleitung"),
				sec("3", "Arbeitsplan"),
				sec("3.1", "Pakete"),
				sec("3.3", "Meilensteine"),
			},
			wantIDs: []string{"1", "2", "2.1", "2.2"},
		},
		{
			name: "unsorted input is sorted canonically",
			input: []models.Section{
				sec("2.1", "Ziele"),
				sec("1", "Einleitung"),
				sec("2", "Projektbeschreibung"),
			},
			wantIDs: []string{"1", "2", "2.1"},
		},
		{
			name: "deep nesting keeps ancestry",
			input: []models.Section{
				sec("4", "Arbeitsplan"),
				sec("4.2", "Pakete"),
				sec("4.2.3", "AP drei"),
				sec("4.5", "Meilensteine"),
			},
			wantIDs: []string{"1", "1.1", "1.1.1", "1.2"},
		},
		{
			name: "orphan child is dropped",
			input: []models.Section{
				sec("1", "Einleitung"),
				sec("3.1", "Verwaist"),
			},
			wantIDs: []string{"1"},
		},
		{
			name:    "empty model",
			input:   nil,
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Renumber(tt.input)
			assertIDs(t, got, tt.wantIDs, "Renumber")
		})
	}
}

func TestRenumberIdempotent(t *testing.T) {
	input := []models.Section{
		sec("3", "Arbeitsplan"),
		sec("3.2", "Pakete"),
		sec("3.2.4", "AP"),
		sec("1", "Einleitung"),
		sec("7", "Anhang"),
	}

	once := Renumber(input)
	twice := Renumber(once)
	if !Equal(once, twice) {
		t.Errorf("Renumber not idempotent:\nonce:  %v\ntwice: %v", once, twice)
	}
}

func TestRenumberPreservesHierarchy(t *testing.T) {
	input := []models.Section{
		sec("2", "A"),
		sec("2.3", "B"),
		sec("2.3.1", "C"),
		sec("5", "D"),
		sec("5.1", "E"),
	}

	got := Renumber(input)
	present := make(map[string]bool, len(got))
	for _, s := range got {
		present[s.ID] = true
	}
	for _, s := range got {
		if Depth(s.ID) > 1 && !present[ParentID(s.ID)] {
			t.Errorf("section %q has no parent %q in result", s.ID, ParentID(s.ID))
		}
	}
}

func TestRenumberRepairsTitles(t *testing.T) {
	input := []models.Section{
		{ID: "3", Title: "3. Arbeitsplan"},
		{ID: "3.2", Title: "3.2. Arbeitspakete"},
		{ID: "5", Title: "Kein Prefix"},
	}

	got := Renumber(input)
	for _, s := range got {
		if !strings.HasPrefix(s.Title, s.ID+". ") {
			t.Errorf("title %q does not start with %q", s.Title, s.ID+". ")
		}
		rest := strings.TrimPrefix(s.Title, s.ID+". ")
		if titlePrefix.MatchString(rest) {
			t.Errorf("title %q kept a stale numeric prefix", s.Title)
		}
	}
}

func TestRenumberKeepsContent(t *testing.T) {
	input := []models.Section{
		{ID: "2", Title: "2. A", Content: "text stays put"},
	}
	got := Renumber(input)
	if len(got) != 1 || got[0].Content != "text stays put" {
		t.Errorf("content not preserved: %v", got)
	}
}

func TestStripTitlePrefix(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "4. Arbeitsplan", "Arbeitsplan"},
		{"nested", "4.2.1. Arbeitspaket", "Arbeitspaket"},
		{"no prefix", "Arbeitsplan", "Arbeitsplan"},
		{"digits inside text stay", "4. Plan 2026", "Plan 2026"},
		{"zero id", "0. Titelblock", "Titelblock"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripTitlePrefix(tt.title); got != tt.want {
				t.Errorf("StripTitlePrefix(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}
