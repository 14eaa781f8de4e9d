package template

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/entwurf/entwurf-cli/pkg/models"
)

// TitleBlockKey is the reserved top-level key for the document's title
// page. It is always numbered "0" and processed first regardless of its
// position in the schema. Its fields are form placeholders, not
// sections, so the expander does not descend into it.
const TitleBlockKey = "Titelblock"

// Expand converts a nested template schema into the initial flat
// section model. Schemas are parsed as yaml.Node trees because mapping
// nodes preserve source key order, which plain maps would destroy.
//
// Rules:
//   - the reserved title block key becomes section "0";
//   - every other top-level key carries a leading integer segment
//     ("4_Projektbeschreibung") that becomes the top-level id; keys are
//     visited in ascending numeric order, unprefixed keys last in
//     lexical order;
//   - scalar and mapping values become children numbered 1, 2, 3, …
//     within their parent; mappings are recursed depth-first in source
//     order;
//   - sequence values are repeatable placeholders (work packages,
//     milestones) and are skipped entirely.
func Expand(root *yaml.Node) ([]models.Section, error) {
	node := root
	if node != nil && node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node == nil || node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("template schema: expected a mapping at the top level")
	}

	type topEntry struct {
		key     string
		value   *yaml.Node
		num     int
		hasNum  bool
		srcRank int
	}

	entries := make([]topEntry, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		e := topEntry{key: key, value: node.Content[i+1], srcRank: i}
		e.num, e.hasNum = leadingInt(key)
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch {
		case a.key == TitleBlockKey:
			return b.key != TitleBlockKey
		case b.key == TitleBlockKey:
			return false
		case a.hasNum && b.hasNum:
			return a.num < b.num
		case a.hasNum != b.hasNum:
			return a.hasNum
		default:
			return a.key < b.key
		}
	})

	var out []models.Section
	lastNum := 0
	numKeys := make(map[int]string)
	for _, e := range entries {
		if e.key == TitleBlockKey {
			out = append(out, models.Section{ID: "0", Title: "0. " + TitleBlockKey})
			continue
		}

		id := ""
		phrase := ""
		if e.hasNum {
			// Two keys claiming the same number would produce duplicate
			// ids, which everything downstream assumes never happens.
			if prev, dup := numKeys[e.num]; dup {
				return nil, fmt.Errorf("template schema: keys %q and %q share number %d", prev, e.key, e.num)
			}
			numKeys[e.num] = e.key
			id = strconv.Itoa(e.num)
			lastNum = e.num
			phrase = phraseOf(trimLeadingInt(e.key))
		} else {
			// Unprefixed keys continue the numbering after the highest
			// numeric key seen so far.
			lastNum++
			id = strconv.Itoa(lastNum)
			phrase = phraseOf(e.key)
		}

		out = append(out, models.Section{ID: id, Title: id + ". " + phrase})
		out = expandChildren(out, id, e.value)
	}
	return out, nil
}

// ExpandBytes parses a YAML (or JSON) schema and expands it.
func ExpandBytes(data []byte) ([]models.Section, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("template schema: %w", err)
	}
	return Expand(&root)
}

// expandChildren appends child sections of parentID from a value node,
// depth-first, numbering children with a per-parent counter seeded at
// zero.
func expandChildren(out []models.Section, parentID string, value *yaml.Node) []models.Section {
	if value == nil || value.Kind != yaml.MappingNode {
		return out
	}
	counter := 0
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i].Value
		child := value.Content[i+1]
		if child.Kind == yaml.SequenceNode {
			continue
		}
		counter++
		id := fmt.Sprintf("%s.%d", parentID, counter)
		out = append(out, models.Section{ID: id, Title: id + ". " + phraseOf(key)})
		if child.Kind == yaml.MappingNode {
			out = expandChildren(out, id, child)
		}
	}
	return out
}

// leadingInt parses the integer segment before the first underscore.
func leadingInt(key string) (int, bool) {
	head, _, _ := strings.Cut(key, "_")
	n, err := strconv.Atoi(head)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// trimLeadingInt drops the "{int}_" segment from a key.
func trimLeadingInt(key string) string {
	if _, rest, ok := strings.Cut(key, "_"); ok {
		return rest
	}
	return key
}

// phraseOf turns an underscore-separated key into a display phrase.
func phraseOf(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}
