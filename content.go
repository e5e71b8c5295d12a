package blog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// ErrDuplicateSlug is returned when two content files resolve to one slug.
var ErrDuplicateSlug = errors.New("duplicate slug")

var yamlFrontMatter = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// LoadPosts reads every .md and .mdx file under root and validates it.
// Every invalid file is reported; the returned error joins them all.
// Posts come back in walk order, unsorted.
func LoadPosts(ctx context.Context, root string) ([]Post, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("content directory: %w", err)
	}

	var (
		posts []Post
		errs  []error
		seen  = make(map[string]string)
	)
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		format, ok := formatOf(d.Name())
		if !ok {
			return nil
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		post, err := ParsePost(src, strings.TrimSuffix(filepath.ToSlash(rel), filepath.Ext(rel)))
		if err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				verr.Source = path
				errs = append(errs, verr)
			} else {
				errs = append(errs, fmt.Errorf("%s: %w", path, err))
			}
			return nil
		}
		post.Format = format
		post.SourcePath = path
		if prev, dup := seen[post.Slug]; dup {
			errs = append(errs, fmt.Errorf("%w %q: %s and %s", ErrDuplicateSlug, post.Slug, prev, path))
			return nil
		}
		seen[post.Slug] = path
		posts = append(posts, post)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk %s: %w", root, walkErr)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return posts, nil
}

// ParsePost splits src into front-matter and body and validates it. Fields
// YAML cannot decode into their Go type are reported alongside the
// validation errors of the fields that did decode.
func ParsePost(src []byte, fallbackSlug string) (Post, error) {
	var doc yaml.Node
	body, err := frontmatter.MustParse(bytes.NewReader(src), &doc, yamlFrontMatter)
	if err != nil {
		if errors.Is(err, frontmatter.ErrNotFound) {
			return Post{}, &ValidationError{Fields: []FieldError{{Field: "front-matter", Message: "missing"}}}
		}
		return Post{}, fmt.Errorf("parse front-matter: %w", err)
	}

	var (
		fm       FrontMatter
		typeErrs []FieldError
	)
	if doc.Kind != 0 {
		if err := doc.Decode(&fm); err != nil {
			var terr *yaml.TypeError
			if !errors.As(err, &terr) {
				return Post{}, fmt.Errorf("parse front-matter: %w", err)
			}
			typeErrs = typeFieldErrors(&doc, terr)
		}
	}

	post, err := Validate(fm, strings.TrimLeft(string(body), "\r\n"), fallbackSlug)
	if len(typeErrs) == 0 {
		return post, err
	}
	fields := typeErrs
	var verr *ValidationError
	if errors.As(err, &verr) {
		for _, f := range verr.Fields {
			if !hasField(typeErrs, f.Field) {
				fields = append(fields, f)
			}
		}
	}
	return Post{}, &ValidationError{Fields: fields}
}

// typeFieldErrors attributes each yaml type error to the front-matter key
// on or above the line it reports.
func typeFieldErrors(doc *yaml.Node, terr *yaml.TypeError) []FieldError {
	root := doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	fields := make([]FieldError, 0, len(terr.Errors))
	for _, msg := range terr.Errors {
		field := "front-matter"
		var line int
		if _, err := fmt.Sscanf(msg, "line %d:", &line); err == nil && root.Kind == yaml.MappingNode {
			for i := 0; i+1 < len(root.Content); i += 2 {
				if key := root.Content[i]; key.Line <= line {
					field = key.Value
				}
			}
		}
		fields = append(fields, FieldError{Field: field, Message: msg})
	}
	return fields
}

func hasField(fields []FieldError, name string) bool {
	for _, f := range fields {
		if f.Field == name {
			return true
		}
	}
	return false
}

func formatOf(name string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md":
		return FormatMarkdown, true
	case ".mdx":
		return FormatMDX, true
	}
	return "", false
}
