package compare

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var equalOpts = []cmp.Option{cmpopts.EquateEmpty()}

// Equal reports deep structural equality. Nil and empty maps or slices are
// considered equal.
func Equal(a, b any) bool {
	return cmp.Equal(a, b, equalOpts...)
}

// Diff renders the difference from a to b, or "" when they are equal.
func Diff(a, b any) string {
	return cmp.Diff(a, b, equalOpts...)
}

// Missing returns the members of found that are absent from allowed, sorted.
func Missing(found, allowed []string) []string {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, s := range allowed {
		allowedSet[s] = struct{}{}
	}
	var missing []string
	seen := make(map[string]struct{}, len(found))
	for _, s := range found {
		if _, ok := allowedSet[s]; ok {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		missing = append(missing, s)
	}
	sort.Strings(missing)
	return missing
}

// Sets checks if two string slices contain the same elements, ignoring order
// and duplicates. Returns true if equal, and a short description otherwise.
func Sets(setA, setB []string) (bool, string) {
	added := Missing(setB, setA)
	removed := Missing(setA, setB)
	if len(added) == 0 && len(removed) == 0 {
		return true, ""
	}

	var parts []string
	if len(added) > 0 {
		parts = append(parts, fmt.Sprintf("Added: [%s]", strings.Join(added, ", ")))
	}
	if len(removed) > 0 {
		parts = append(parts, fmt.Sprintf("Removed: [%s]", strings.Join(removed, ", ")))
	}
	return false, strings.Join(parts, "; ")
}
