package sections

import (
	"sort"
	"strconv"
	"strings"

	"github.com/entwurf/entwurf-cli/pkg/models"
)

// ParseID splits a dotted section id into its integer components.
// Components that fail to parse come back as 0, which keeps comparison
// total even for malformed ids.
func ParseID(id string) []int {
	parts := strings.Split(id, ".")
	out := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err == nil {
			out[i] = n
		}
	}
	return out
}

// Depth is the number of dot-separated components of an id.
func Depth(id string) int {
	if id == "" {
		return 0
	}
	return strings.Count(id, ".") + 1
}

// ParentID returns the id with the last component removed, or "" for a
// top-level id.
func ParentID(id string) string {
	idx := strings.LastIndex(id, ".")
	if idx < 0 {
		return ""
	}
	return id[:idx]
}

// CompareIDs orders two dotted ids component-wise. A shorter id is
// padded with zeros for comparison, which places a parent immediately
// before its children.
func CompareIDs(a, b string) int {
	as := ParseID(a)
	bs := ParseID(b)
	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		var av, bv int
		if i < len(as) {
			av = as[i]
		}
		if i < len(bs) {
			bv = bs[i]
		}
		if av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
	}
	return 0
}

// SortCanonical sorts sections into canonical display order: parent
// immediately followed by its children, children by trailing component.
// The sort is stable so equal ids keep their relative order.
func SortCanonical(secs []models.Section) []models.Section {
	out := make([]models.Section, len(secs))
	copy(out, secs)
	sort.SliceStable(out, func(i, j int) bool {
		return CompareIDs(out[i].ID, out[j].ID) < 0
	})
	return out
}

// IndexOf returns the position of the section with the given id, or -1.
func IndexOf(secs []models.Section, id string) int {
	for i, s := range secs {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Contains reports whether a section with the given id exists.
func Contains(secs []models.Section, id string) bool {
	return IndexOf(secs, id) >= 0
}
