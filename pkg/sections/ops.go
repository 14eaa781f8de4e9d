package sections

import (
	"strings"

	"github.com/entwurf/entwurf-cli/pkg/models"
)

// Clone deep-copies a section model. Sections are value types, so a
// slice copy is a full snapshot.
func Clone(secs []models.Section) []models.Section {
	if secs == nil {
		return nil
	}
	out := make([]models.Section, len(secs))
	copy(out, secs)
	return out
}

// Equal reports whether two models hold the same sections in the same
// order.
func Equal(a, b []models.Section) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// DeleteSubtree removes the section with the given id together with
// every descendant (any section whose id starts with "{id}."). The
// result is a new slice; callers are expected to Renumber afterwards.
func DeleteSubtree(secs []models.Section, id string) []models.Section {
	prefix := id + "."
	out := make([]models.Section, 0, len(secs))
	for _, s := range secs {
		if s.ID == id || strings.HasPrefix(s.ID, prefix) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// MoveUp swaps the section with the given id with its preceding sibling
// (the whole subtrees trade places) and renumbers. Returns the new
// model and the moved section's new id, or the input unchanged and ""
// when there is no preceding sibling.
func MoveUp(secs []models.Section, id string) ([]models.Section, string) {
	return swapWithSibling(secs, id, -1)
}

// MoveDown is the mirror of MoveUp for the following sibling.
func MoveDown(secs []models.Section, id string) ([]models.Section, string) {
	return swapWithSibling(secs, id, +1)
}

// swapWithSibling exchanges the id prefixes of a section's subtree and
// an adjacent sibling's subtree. Renumber's canonical sort then yields
// the swapped display order with repaired numbering. After the
// exchange the moved subtree's root carries the sibling's old id, so
// the renumber mapping for that id is the moved section's new id.
func swapWithSibling(secs []models.Section, id string, dir int) ([]models.Section, string) {
	sibs := siblingIDs(secs, id)
	pos := -1
	for i, sid := range sibs {
		if sid == id {
			pos = i
			break
		}
	}
	other := pos + dir
	if pos < 0 || other < 0 || other >= len(sibs) {
		return secs, ""
	}
	out, remap := renumberWithMap(exchangePrefixes(secs, id, sibs[other]))
	return out, remap[sibs[other]]
}

// siblingIDs lists, in canonical order, the ids sharing a parent with id.
func siblingIDs(secs []models.Section, id string) []string {
	parent := ParentID(id)
	depth := Depth(id)
	var out []string
	for _, s := range SortCanonical(secs) {
		if Depth(s.ID) == depth && ParentID(s.ID) == parent {
			out = append(out, s.ID)
		}
	}
	return out
}

// exchangePrefixes rewrites ids so the subtree under a carries b's id
// and vice versa.
func exchangePrefixes(secs []models.Section, a, b string) []models.Section {
	out := make([]models.Section, len(secs))
	for i, s := range secs {
		switch {
		case s.ID == a || strings.HasPrefix(s.ID, a+"."):
			s.ID = b + s.ID[len(a):]
		case s.ID == b || strings.HasPrefix(s.ID, b+"."):
			s.ID = a + s.ID[len(b):]
		}
		out[i] = s
	}
	return out
}
