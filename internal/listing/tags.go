package listing

import "strings"

// ParseTags splits a comma-delimited dietary-restriction string into trimmed
// tags. An empty string yields an empty slice, never a single empty tag.
func ParseTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		tags = append(tags, strings.TrimSpace(p))
	}
	return tags
}

// AppendTag returns the restriction string with tag added after a ", "
// separator. Empty tags and tags already present are dropped silently;
// presence is a substring check, matching the form it came from.
func AppendTag(restrictions, tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return restrictions
	}
	if strings.Contains(restrictions, tag) {
		return restrictions
	}
	if restrictions == "" {
		return tag
	}
	return restrictions + ", " + tag
}

// RemoveTag drops tag and re-serializes the remaining tags joined by ", ".
func RemoveTag(restrictions, tag string) string {
	tags := ParseTags(restrictions)
	kept := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == tag {
			continue
		}
		kept = append(kept, t)
	}
	return strings.Join(kept, ", ")
}
