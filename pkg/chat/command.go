// Package chat implements the editor's constrained chat command
// interpreter. Exactly one intent is supported: removing sections by id
// ("remove 5.2 and 5.3"). The canonical user-facing reply strings live
// here too, so the TUI and the tests share a single source.
package chat

import (
	"regexp"
	"strings"

	"github.com/entwurf/entwurf-cli/pkg/models"
	"github.com/entwurf/entwurf-cli/pkg/sections"
)

var (
	removeCommand = regexp.MustCompile(`(?i)^\s*remove\s+(.+?)\s*$`)
	sectionToken  = regexp.MustCompile(`^\d+(\.\d+)*$`)
	tokenSplit    = regexp.MustCompile(`(?i)\s*(?:,|\band\b)\s*`)
)

// ParseRemoveCommand extracts target section ids from a removal
// command. A nil result means the text is not a removal command; ids
// are returned in the order the user wrote them.
func ParseRemoveCommand(text string) []string {
	m := removeCommand.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	parts := tokenSplit.Split(m[1], -1)
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !sectionToken.MatchString(p) {
			return nil
		}
		ids = append(ids, p)
	}
	if len(ids) == 0 {
		return nil
	}
	return ids
}

// ExecuteRemove deletes the requested sections and their subtrees.
// The command is all-or-nothing: if any requested id is absent the
// model comes back untouched together with the missing ids.
// Renumbering is left to the caller so it stays the single numbering
// pass after any structural change.
func ExecuteRemove(secs []models.Section, ids []string) (out []models.Section, missing []string) {
	for _, id := range ids {
		if !sections.Contains(secs, id) {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return secs, missing
	}

	out = secs
	for _, id := range ids {
		out = sections.DeleteSubtree(out, id)
	}
	return out, nil
}

// ConfirmRemoval is the assistant reply after a successful removal,
// naming the ids the user originally asked for (pre-renumber).
func ConfirmRemoval(ids []string) string {
	return "Entfernt: " + strings.Join(ids, ", ") + ". Die Gliederung wurde neu nummeriert."
}

// MissingReply is the assistant reply when requested ids do not exist.
func MissingReply(missing []string) string {
	return "Diese Abschnitte wurden nicht gefunden: " + strings.Join(missing, ", ") + ". Es wurde nichts entfernt."
}

// UsageReply is the assistant reply for unparsable input.
func UsageReply() string {
	return `Ich verstehe nur Befehle der Form "remove 5.2 and 5.3".`
}
