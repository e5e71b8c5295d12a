// Package scaffold creates new post files from the embedded template.
package scaffold

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"
	"time"

	blog "github.com/velocidadescape/blog"
)

// Templates contains the scaffold template files.
// Files use Go text/template syntax and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS

var postTemplate = template.Must(template.ParseFS(Templates, "templates/post.md.tmpl"))

// Categories are the directories a post may be filed under.
var Categories = []string{"ai", "cs", "css", "js", "personal", "react"}

// Formats are the accepted body formats.
var Formats = []string{string(blog.FormatMarkdown), string(blog.FormatMDX)}

var (
	ErrCategoryRequired = errors.New("category is required")
	ErrInvalidCategory  = fmt.Errorf("invalid category, must be one of: %s", strings.Join(Categories, ", "))
	ErrInvalidFormat    = fmt.Errorf("invalid format, must be one of: %s", strings.Join(Formats, ", "))
	ErrPostExists       = errors.New("post already exists")
)

// DefaultTitle is used when no title words are given.
const DefaultTitle = "Untitled"

// Options describes the post to create.
type Options struct {
	Root     string // content root, e.g. "content/blog"
	Title    string
	Category string
	Format   string           // "md" (default) or "mdx"
	Now      func() time.Time // defaults to time.Now
}

// Post is the file NewPost wrote.
type Post struct {
	Title string
	Slug  string // <category>/<slug>
	Path  string
}

type templateData struct {
	Title string
	Slug  string
	Date  string
}

// NewPost writes <root>/<category>/<slug>.<format> pre-filled with
// front-matter. It never overwrites an existing file.
func NewPost(opts Options) (Post, error) {
	if opts.Category == "" {
		return Post{}, ErrCategoryRequired
	}
	if !slices.Contains(Categories, opts.Category) {
		return Post{}, fmt.Errorf("%w (got %q)", ErrInvalidCategory, opts.Category)
	}
	if opts.Format == "" {
		opts.Format = string(blog.FormatMarkdown)
	}
	if !slices.Contains(Formats, opts.Format) {
		return Post{}, fmt.Errorf("%w (got %q)", ErrInvalidFormat, opts.Format)
	}
	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = DefaultTitle
	}
	name := blog.Slugify(title)
	if name == "" {
		return Post{}, fmt.Errorf("title %q has no letters or digits to build a slug from", title)
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	post := Post{
		Title: title,
		Slug:  opts.Category + "/" + name,
		Path:  filepath.Join(opts.Root, opts.Category, name+"."+opts.Format),
	}

	var buf bytes.Buffer
	if err := postTemplate.Execute(&buf, templateData{
		Title: title,
		Slug:  post.Slug,
		Date:  now().Format("2006-01-02"),
	}); err != nil {
		return Post{}, fmt.Errorf("execute template: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(post.Path), 0o755); err != nil {
		return Post{}, err
	}
	f, err := os.OpenFile(post.Path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return Post{}, fmt.Errorf("%w: %s", ErrPostExists, post.Path)
		}
		return Post{}, fmt.Errorf("create %s: %w", post.Path, err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		os.Remove(post.Path)
		return Post{}, fmt.Errorf("write %s: %w", post.Path, err)
	}
	if err := f.Close(); err != nil {
		return Post{}, fmt.Errorf("close %s: %w", post.Path, err)
	}
	return post, nil
}
