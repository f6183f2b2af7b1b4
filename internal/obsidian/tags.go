package obsidian

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	tagWhitespace = regexp.MustCompile(`\s+`)
	tagHyphens    = regexp.MustCompile(`-{2,}`)
)

// NormalizeTag turns free text into an Obsidian tag: leading "#" removed,
// "&" spelled out, whitespace runs become single hyphens. Case and "/"
// hierarchy separators are kept.
func NormalizeTag(tag string) string {
	tag = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(tag), "#"))
	if tag == "" {
		return ""
	}

	tag = strings.ReplaceAll(tag, "&", "and")
	tag = strings.ReplaceAll(tag, "#", "")
	tag = tagWhitespace.ReplaceAllString(tag, "-")
	tag = tagHyphens.ReplaceAllString(tag, "-")
	return strings.Trim(tag, "-")
}

// TagSet collects normalized, unique tags.
type TagSet struct {
	tags map[string]struct{}
}

// NewTagSet creates a new TagSet for collecting tags.
func NewTagSet(initial ...string) *TagSet {
	ts := &TagSet{tags: map[string]struct{}{}}
	for _, tag := range initial {
		ts.Add(tag)
	}
	return ts
}

// Add normalizes tag and adds it unless empty.
func (ts *TagSet) Add(tag string) {
	if normalized := NormalizeTag(tag); normalized != "" {
		ts.tags[normalized] = struct{}{}
	}
}

// AddIf adds tag when condition holds.
func (ts *TagSet) AddIf(condition bool, tag string) {
	if condition {
		ts.Add(tag)
	}
}

// AddFormat adds a formatted tag (like fmt.Sprintf).
func (ts *TagSet) AddFormat(format string, args ...interface{}) {
	ts.Add(fmt.Sprintf(format, args...))
}

// GetSorted returns all tags as a sorted slice.
func (ts *TagSet) GetSorted() []string {
	result := make([]string, 0, len(ts.tags))
	for tag := range ts.tags {
		result = append(result, tag)
	}
	sort.Strings(result)
	return result
}

// MergeTags returns the sorted union of both lists after normalization.
func MergeTags(existing, added []string) []string {
	ts := NewTagSet(existing...)
	for _, tag := range added {
		ts.Add(tag)
	}
	return ts.GetSorted()
}

// TagsFromAny extracts non-empty strings from a []string or the []any that
// YAML decoding produces.
func TagsFromAny(val any) []string {
	result := []string{}
	switch v := val.(type) {
	case []string:
		for _, s := range v {
			if s != "" {
				result = append(result, s)
			}
		}
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				result = append(result, s)
			}
		}
	}
	return result
}
