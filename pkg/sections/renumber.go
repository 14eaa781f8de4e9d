package sections

import (
	"regexp"
	"strconv"

	"github.com/entwurf/entwurf-cli/pkg/models"
)

// titlePrefix matches a leading "4.2. " style numbering on a title.
var titlePrefix = regexp.MustCompile(`^\d+(\.\d+)*\.\s*`)

// Renumber recomputes canonical ids and title prefixes for the whole
// model. It is the single source of numbering truth: every structural
// mutation (delete, chat removal, reorder) is followed by a Renumber
// call. The function is pure, deterministic and idempotent.
//
// Children whose parent id is absent from the input are dropped. The
// model is only ever mutated through operations that keep ancestry
// intact, so an orphan here means the caller handed in a malformed
// model; dropping is data hygiene, not error handling.
func Renumber(secs []models.Section) []models.Section {
	out, _ := renumberWithMap(secs)
	return out
}

// renumberWithMap additionally returns the old id -> new id mapping,
// which callers use to track a section across the reassignment.
func renumberWithMap(secs []models.Section) ([]models.Section, map[string]string) {
	sorted := SortCanonical(secs)

	// counters is keyed by the NEW parent id ("" for the root level);
	// remap carries old id -> new id for parents already processed,
	// which the canonical sort guarantees happens before any child.
	counters := make(map[string]int)
	remap := make(map[string]string, len(sorted))
	out := make([]models.Section, 0, len(sorted))

	for _, s := range sorted {
		parentKey := ""
		if oldParent := ParentID(s.ID); oldParent != "" {
			newParent, ok := remap[oldParent]
			if !ok {
				continue // orphan
			}
			parentKey = newParent
		}

		counters[parentKey]++
		newID := strconv.Itoa(counters[parentKey])
		if parentKey != "" {
			newID = parentKey + "." + newID
		}

		remap[s.ID] = newID
		out = append(out, models.Section{
			ID:      newID,
			Title:   newID + ". " + StripTitlePrefix(s.Title),
			Content: s.Content,
		})
	}
	return out, remap
}

// StripTitlePrefix removes a leading "{digits(.digits)*}. " numbering
// from a title, returning the bare phrase.
func StripTitlePrefix(title string) string {
	return titlePrefix.ReplaceAllString(title, "")
}
