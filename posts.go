package blog

import (
	"slices"
	"strings"
)

// SortByDate returns a copy of posts ordered by PubDate, newest first.
// Posts with equal dates keep their input order.
func SortByDate(posts []Post) []Post {
	sorted := slices.Clone(posts)
	if sorted == nil {
		sorted = []Post{}
	}
	slices.SortStableFunc(sorted, func(a, b Post) int {
		return b.PubDate.Compare(a.PubDate)
	})
	return sorted
}

// UniqueTags returns every tag used across posts, once each, in the order
// the tags are first seen.
func UniqueTags(posts []Post) []string {
	seen := make(map[string]struct{})
	tags := []string{}
	for _, p := range posts {
		for _, t := range p.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	return tags
}

// TagCounts counts tag occurrences across posts. A tag repeated within one
// post counts once per occurrence.
func TagCounts(posts []Post) map[string]int {
	counts := make(map[string]int)
	for _, p := range posts {
		for _, t := range p.Tags {
			counts[t]++
		}
	}
	return counts
}

// TagCount pairs a tag with its number of occurrences.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// TagSummary combines UniqueTags and TagCounts into an ordered list.
func TagSummary(posts []Post) []TagCount {
	counts := TagCounts(posts)
	tags := UniqueTags(posts)
	out := make([]TagCount, len(tags))
	for i, t := range tags {
		out[i] = TagCount{Tag: t, Count: counts[t]}
	}
	return out
}

// FilterByTag returns the posts carrying tag, preserving order.
func FilterByTag(posts []Post, tag string) []Post {
	var filtered []Post
	for _, p := range posts {
		if slices.Contains(p.Tags, tag) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// RelatedPosts finds posts that share at least one tag with current.
func RelatedPosts(current Post, posts []Post) []Post {
	tagSet := make(map[string]struct{})
	for _, t := range current.Tags {
		tag := strings.ToLower(strings.TrimSpace(t))
		if tag != "" {
			tagSet[tag] = struct{}{}
		}
	}
	var related []Post
	for _, p := range posts {
		if p.Slug == current.Slug {
			continue
		}
		for _, t := range p.Tags {
			tag := strings.ToLower(strings.TrimSpace(t))
			if _, ok := tagSet[tag]; ok {
				related = append(related, p)
				break
			}
		}
	}
	return related
}

// FindPost returns the post with slug.
func FindPost(posts []Post, slug string) (Post, bool) {
	slug = strings.Trim(slug, "/")
	for _, p := range posts {
		if p.Slug == slug {
			return p, true
		}
	}
	return Post{}, false
}
