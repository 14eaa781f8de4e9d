package chat

import (
	"strings"
	"testing"

	"github.com/entwurf/entwurf-cli/pkg/models"
	"github.com/entwurf/entwurf-cli/pkg/sections"
)

func TestParseRemoveCommand(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"two ids with and", "remove 5.2 and 5.3", []string{"5.2", "5.3"}},
		{"single id", "remove 2.3", []string{"2.3"}},
		{"comma separated", "remove 1, 2, 3", []string{"1", "2", "3"}},
		{"mixed separators", "remove 1.1, 1.2 and 2", []string{"1.1", "1.2", "2"}},
		{"case insensitive keyword", "REMOVE 4", []string{"4"}},
		{"leading whitespace", "   remove 7", []string{"7"}},
		{"wrong keyword", "please delete 1", nil},
		{"keyword only", "remove", nil},
		{"keyword with garbage", "remove the first section", nil},
		{"non numeric token aborts", "remove 1 and two", nil},
		{"empty input", "", nil},
		{"space separated ids are not the grammar", "remove 1 2", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseRemoveCommand(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseRemoveCommand(%q) = %v, want %v", tt.text, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("ParseRemoveCommand(%q)[%d] = %q, want %q", tt.text, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func model() []models.Section {
	return []models.Section{
		{ID: "1", Title: "1. Einleitung"},
		{ID: "2", Title: "2. Plan"},
		{ID: "2.1", Title: "2.1. Ziele"},
		{ID: "2.2", Title: "2.2. Pakete"},
		{ID: "3", Title: "3. Anhang"},
	}
}

func TestExecuteRemove(t *testing.T) {
	out, missing := ExecuteRemove(model(), []string{"2.1", "3"})
	if missing != nil {
		t.Fatalf("unexpected missing ids: %v", missing)
	}
	want := []string{"1", "2", "2.2"}
	if len(out) != len(want) {
		t.Fatalf("got %v, want ids %v", out, want)
	}
	for i, id := range want {
		if out[i].ID != id {
			t.Errorf("[%d]: got %q, want %q", i, out[i].ID, id)
		}
	}
}

func TestExecuteRemoveTakesSubtrees(t *testing.T) {
	out, missing := ExecuteRemove(model(), []string{"2"})
	if missing != nil {
		t.Fatalf("unexpected missing ids: %v", missing)
	}
	for _, s := range out {
		if s.ID == "2" || strings.HasPrefix(s.ID, "2.") {
			t.Errorf("descendant %q survived subtree removal", s.ID)
		}
	}
}

func TestExecuteRemoveMissingIDAborts(t *testing.T) {
	before := model()
	out, missing := ExecuteRemove(before, []string{"2", "9.9"})

	if len(missing) != 1 || missing[0] != "9.9" {
		t.Fatalf("missing = %v, want [9.9]", missing)
	}
	if !sections.Equal(out, before) {
		t.Error("model mutated despite a missing id")
	}
}

func TestReplies(t *testing.T) {
	if got := ConfirmRemoval([]string{"5.2", "5.3"}); !strings.Contains(got, "5.2, 5.3") {
		t.Errorf("ConfirmRemoval does not name the requested ids: %q", got)
	}
	if got := MissingReply([]string{"9.9"}); !strings.Contains(got, "9.9") {
		t.Errorf("MissingReply does not name the missing ids: %q", got)
	}
	if UsageReply() == "" {
		t.Error("UsageReply is empty")
	}
}
