// Package search filters the listing collection with a user-entered query.
// It is a pure projection: it never mutates the store's contents.
package search

import (
	"strings"

	"github.com/mealbridge/donor-cli/internal/listing"
)

// Filter returns the listings whose title, organization or any tag contains
// query, case-insensitively. An empty query returns the input unchanged, in
// its original order.
func Filter(in []listing.View, query string) []listing.View {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return in
	}
	out := make([]listing.View, 0, len(in))
	for _, v := range in {
		if matches(v, query) {
			out = append(out, v)
		}
	}
	return out
}

func matches(v listing.View, query string) bool {
	if strings.Contains(strings.ToLower(v.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(v.Organization), query) {
		return true
	}
	for _, tag := range v.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}
