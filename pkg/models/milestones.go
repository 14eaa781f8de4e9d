package models

import (
	"encoding/json"
	"strings"
)

// Milestone is one row of the milestone table kind of section. The table
// is stored as a serialized JSON payload in the section's Content field
// rather than as free text.
type Milestone struct {
	Name  string `json:"name"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// MilestoneTable is the decoded payload of a milestone section.
type MilestoneTable struct {
	Milestones []Milestone `json:"milestones"`
}

// MilestonesFromContent decodes a milestone table from section content.
// Content that is not a milestone payload returns (nil, false) so the
// caller can fall back to rendering it as plain text.
func MilestonesFromContent(content string) (*MilestoneTable, bool) {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "{") {
		return nil, false
	}
	var table MilestoneTable
	if err := json.Unmarshal([]byte(trimmed), &table); err != nil {
		return nil, false
	}
	if table.Milestones == nil {
		return nil, false
	}
	return &table, true
}

// Content serializes the table back into section content form.
func (t *MilestoneTable) Content() (string, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// IsMilestoneSection reports whether a section holds a milestone table.
func IsMilestoneSection(s Section) bool {
	_, ok := MilestonesFromContent(s.Content)
	return ok
}
