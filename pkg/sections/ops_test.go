package sections

import (
	"testing"

	"github.com/entwurf/entwurf-cli/pkg/models"
)

func TestDeleteSubtree(t *testing.T) {
	model := []models.Section{
		sec("4", "Plan"),
		sec("4.1", "Ziele"),
		sec("4.2", "Pakete"),
		sec("4.2.1", "AP eins"),
		sec("4.3", "Meilensteine"),
	}

	got := DeleteSubtree(model, "4.2")
	assertIDs(t, got, []string{"4", "4.1", "4.3"}, "pre-renumber")

	renumbered := Renumber(got)
	assertIDs(t, renumbered, []string{"1", "1.1", "1.2"}, "post-renumber")
}

func TestDeleteSubtreeNoPrefixConfusion(t *testing.T) {
	// "1" must not take "10" or "10.1" with it.
	model := []models.Section{
		sec("1", "A"),
		sec("10", "B"),
		sec("10.1", "C"),
	}

	got := DeleteSubtree(model, "1")
	assertIDs(t, got, []string{"10", "10.1"}, "DeleteSubtree")
}

func TestMoveUp(t *testing.T) {
	tests := []struct {
		name    string
		input   []models.Section
		id      string
		wantIDs []string
		// phrase expected at each output position, to prove the swap moved
		// the sections and not just the numbers
		wantPhrases []string
		wantNewID   string
	}{
		{
			name: "swap top level siblings",
			input: []models.Section{
				sec("1", "Einleitung"),
				sec("2", "Arbeitsplan"),
			},
			id:          "2",
			wantIDs:     []string{"1", "2"},
			wantPhrases: []string{"Arbeitsplan", "Einleitung"},
			wantNewID:   "1",
		},
		{
			name: "subtree travels with its parent",
			input: []models.Section{
				sec("1", "Einleitung"),
				sec("2", "Arbeitsplan"),
				sec("2.1", "Pakete"),
			},
			id:          "2",
			wantIDs:     []string{"1", "1.1", "2"},
			wantPhrases: []string{"Arbeitsplan", "Pakete", "Einleitung"},
			wantNewID:   "1",
		},
		{
			name: "first sibling cannot move up",
			input: []models.Section{
				sec("1", "Einleitung"),
				sec("2", "Arbeitsplan"),
			},
			id:          "1",
			wantIDs:     []string{"1", "2"},
			wantPhrases: []string{"Einleitung", "Arbeitsplan"},
			wantNewID:   "",
		},
		{
			name: "nested sibling swap stays inside parent",
			input: []models.Section{
				sec("1", "Plan"),
				sec("1.1", "Ziele"),
				sec("1.2", "Pakete"),
				sec("2", "Anhang"),
			},
			id:          "1.2",
			wantIDs:     []string{"1", "1.1", "1.2", "2"},
			wantPhrases: []string{"Plan", "Pakete", "Ziele", "Anhang"},
			wantNewID:   "1.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, newID := MoveUp(tt.input, tt.id)
			assertIDs(t, got, tt.wantIDs, "MoveUp")
			if newID != tt.wantNewID {
				t.Errorf("new id = %q, want %q", newID, tt.wantNewID)
			}
			for i, want := range tt.wantPhrases {
				if phrase := StripTitlePrefix(got[i].Title); phrase != want {
					t.Errorf("position %d: got phrase %q, want %q", i, phrase, want)
				}
			}
		})
	}
}

func TestMoveDown(t *testing.T) {
	model := []models.Section{
		sec("1", "Einleitung"),
		sec("2", "Arbeitsplan"),
		sec("3", "Anhang"),
	}

	got, newID := MoveDown(model, "1")
	assertIDs(t, got, []string{"1", "2", "3"}, "MoveDown")
	if newID != "2" {
		t.Errorf("new id = %q, want %q", newID, "2")
	}
	if phrase := StripTitlePrefix(got[0].Title); phrase != "Arbeitsplan" {
		t.Errorf("expected Arbeitsplan first, got %q", phrase)
	}

	// Last sibling cannot move down.
	same, newID := MoveDown(model, "3")
	if !Equal(same, model) {
		t.Errorf("MoveDown on last sibling mutated the model: %v", same)
	}
	if newID != "" {
		t.Errorf("blocked move reported new id %q", newID)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	model := []models.Section{sec("1", "A")}
	cp := Clone(model)
	cp[0].Content = "changed"
	if model[0].Content == "changed" {
		t.Error("Clone shares backing data with the original")
	}
}
