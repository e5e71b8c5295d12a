package blog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writePost writes a content file below root and returns its path.
func writePost(t *testing.T, root, rel, src string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

const helloSrc = `---
title: Hello World
slug: js/hello-world
description: A first post
pubDate: 2024-01-05
tags: [js, intro]
---

Lead paragraph.

<!--more-->

The rest.
`

func TestLoadPosts(t *testing.T) {
	root := t.TempDir()
	writePost(t, root, "js/hello-world.md", helloSrc)
	writePost(t, root, "react/hooks.mdx", `---
title: Hooks
description: useState and friends
pubDate: "2024-02-10T08:00:00Z"
type: short
---
import Chart from "../components/Chart"

Short note.
`)
	writePost(t, root, "notes.txt", "ignored")

	posts, err := LoadPosts(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	bySlug := map[string]Post{}
	for _, p := range posts {
		bySlug[p.Slug] = p
	}

	hello := bySlug["js/hello-world"]
	assert.Equal(t, "Hello World", hello.Title)
	assert.Equal(t, FormatMarkdown, hello.Format)
	assert.Equal(t, "Lead paragraph.", hello.Excerpt())
	assert.Equal(t, filepath.Join(root, "js", "hello-world.md"), hello.SourcePath)

	hooks, ok := bySlug["react/hooks"]
	require.True(t, ok, "slug falls back to the relative path")
	assert.Equal(t, FormatMDX, hooks.Format)
	assert.Equal(t, KindShort, hooks.Kind())
	assert.Empty(t, hooks.Tags)
}

func TestLoadPostsReportsEveryInvalidFile(t *testing.T) {
	root := t.TempDir()
	writePost(t, root, "js/ok.md", helloSrc)
	badTitle := writePost(t, root, "js/no-title.md", "---\ndescription: d\npubDate: 2024-01-01\n---\nbody\n")
	badDate := writePost(t, root, "cs/bad-date.md", "---\ntitle: t\ndescription: d\npubDate: someday\n---\nbody\n")
	writePost(t, root, "cs/no-frontmatter.md", "# Just markdown\n")

	posts, err := LoadPosts(context.Background(), root)
	require.Error(t, err)
	assert.Nil(t, posts)

	msg := err.Error()
	assert.Contains(t, msg, badTitle+": title: required")
	assert.Contains(t, msg, badDate+": pubDate:")
	assert.Contains(t, msg, "front-matter: missing")

	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestLoadPostsDuplicateSlug(t *testing.T) {
	root := t.TempDir()
	writePost(t, root, "js/hello-world.md", helloSrc)
	writePost(t, root, "js/copy.md", helloSrc)

	_, err := LoadPosts(context.Background(), root)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateSlug)
}

func TestLoadPostsMissingDir(t *testing.T) {
	_, err := LoadPosts(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadPostsCancelled(t *testing.T) {
	root := t.TempDir()
	writePost(t, root, "js/hello-world.md", helloSrc)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := LoadPosts(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParsePost(t *testing.T) {
	p, err := ParsePost([]byte(helloSrc), "")
	require.NoError(t, err)
	assert.Equal(t, "js/hello-world", p.Slug)
	assert.Equal(t, []string{"js", "intro"}, p.Tags)
	assert.NotContains(t, p.Body, "---")
	assert.Contains(t, p.Body, "The rest.")
}

func TestParsePostPubDateForms(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-01-05", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"2024-1-5", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"'Jul 08 2022'", time.Date(2022, 7, 8, 0, 0, 0, 0, time.UTC)},
		{"Jul 08 2022", time.Date(2022, 7, 8, 0, 0, 0, 0, time.UTC)},
		{"2024-01-05 10:00:00 +0100", time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)},
		{"2024-01-05T08:00:00+02:00", time.Date(2024, 1, 5, 6, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		src := "---\ntitle: T\ndescription: D\npubDate: " + tt.in + "\n---\nbody\n"
		p, err := ParsePost([]byte(src), "ai/t")
		require.NoError(t, err, tt.in)
		assert.True(t, tt.want.Equal(p.PubDate), "%s: got %v want %v", tt.in, p.PubDate, tt.want)
	}
}

func TestParsePostWrongFieldTypes(t *testing.T) {
	src := "---\ntitle: [a, b]\ndescription: D\npubDate: 2024-01-05\ntags: js\n---\nbody\n"
	_, err := ParsePost([]byte(src), "js/x")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("title"), "got %v", err)
	assert.True(t, verr.Has("tags"), "got %v", err)
	assert.Len(t, verr.Fields, 2, "title is reported once, not also as required")
	assert.Contains(t, err.Error(), "line 4")
}

func TestParsePostWrongTypeAlongsideMissingFields(t *testing.T) {
	src := "---\ntitle: T\npubDate: [2024, 1, 5]\n---\nbody\n"
	_, err := ParsePost([]byte(src), "js/x")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("pubDate"))
	assert.True(t, verr.Has("description"))
	assert.Len(t, verr.Fields, 2)
}

func TestParsePostNotAMapping(t *testing.T) {
	_, err := ParsePost([]byte("---\njust text\n---\nbody\n"), "js/x")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("front-matter"))
}
