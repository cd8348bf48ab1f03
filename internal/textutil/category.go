// internal/textutil/category.go
package textutil

import "strings"

// LeafCategory returns the last segment of a slash-delimited category path.
// Providers report categories like "Fiction / Fantasy / Epic"; queries use
// the most specific leaf.
func LeafCategory(category string) string {
	parts := strings.Split(category, "/")
	return strings.TrimSpace(parts[len(parts)-1])
}
