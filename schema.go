package blog

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FrontMatter is the raw YAML block at the top of a content file.
type FrontMatter struct {
	Title       string    `yaml:"title"`
	Slug        string    `yaml:"slug"`
	Description string    `yaml:"description"`
	PubDate     DateValue `yaml:"pubDate"`
	Tags        []string  `yaml:"tags"`
	Type        string    `yaml:"type"`
}

// DateValue holds a front-matter date before validation. Raw keeps the
// scalar text. Value is set when YAML already resolved the scalar to a
// timestamp, or by callers building front-matter in code.
type DateValue struct {
	Raw   string
	Value time.Time
}

// UnmarshalYAML accepts native YAML timestamps as well as date strings.
// Strings are parsed later by ParseDate so that Validate can report them.
func (d *DateValue) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return &yaml.TypeError{Errors: []string{
			fmt.Sprintf("line %d: cannot unmarshal %s into a date", n.Line, n.ShortTag()),
		}}
	}
	d.Raw = strings.TrimSpace(n.Value)
	if n.ShortTag() == "!!timestamp" {
		return n.Decode(&d.Value)
	}
	return nil
}

// dateLayouts covers ISO dates and the forms JavaScript's Date accepts in
// existing posts, e.g. "Jul 08 2022".
var dateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05 -07:00",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05.999999999 -07:00",
	"Jan 2 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"January 2, 2006",
	"Mon Jan 2 2006",
	time.RFC1123Z,
	time.RFC1123,
}

// ParseDate converts a date-like string into a time.Time. Values without a
// zone are taken as UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q (use YYYY-MM-DD or RFC 3339)", s)
}

// FieldError describes one invalid front-matter field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) String() string {
	return e.Field + ": " + e.Message
}

// ValidationError lists every field problem found in one content file.
type ValidationError struct {
	Source string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	msg := strings.Join(parts, "; ")
	if e.Source == "" {
		return "invalid front-matter: " + msg
	}
	return "invalid front-matter in " + e.Source + ": " + msg
}

// Has reports whether field failed validation.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

const moreMarker = "<!--more-->"

// Validate checks fm and builds the Post for body. fallbackSlug is used
// when the front-matter carries no slug. On failure the error is a
// *ValidationError holding every problem, not just the first.
func Validate(fm FrontMatter, body, fallbackSlug string) (Post, error) {
	var errs []FieldError
	fail := func(field, msg string) {
		errs = append(errs, FieldError{Field: field, Message: msg})
	}

	title := strings.TrimSpace(fm.Title)
	if title == "" {
		fail("title", "required")
	}
	description := strings.TrimSpace(fm.Description)
	if description == "" {
		fail("description", "required")
	}

	slug := strings.Trim(strings.TrimSpace(fm.Slug), "/")
	if slug == "" {
		slug = strings.Trim(fallbackSlug, "/")
	}
	if slug == "" {
		fail("slug", "required")
	} else if strings.ContainsAny(slug, " \t?#") {
		fail("slug", fmt.Sprintf("%q contains characters not allowed in a URL path", slug))
	}

	pubDate := fm.PubDate.Value
	if pubDate.IsZero() {
		if fm.PubDate.Raw == "" {
			fail("pubDate", "required")
		} else if t, err := ParseDate(fm.PubDate.Raw); err != nil {
			fail("pubDate", err.Error())
		} else {
			pubDate = t
		}
	}

	tags := make([]string, 0, len(fm.Tags))
	for i, t := range fm.Tags {
		t = strings.TrimSpace(t)
		if t == "" {
			fail(fmt.Sprintf("tags[%d]", i), "must not be empty")
			continue
		}
		tags = append(tags, t)
	}

	var variant Variant
	switch Kind(strings.ToLower(strings.TrimSpace(fm.Type))) {
	case "", KindFull:
		variant = FullPost{Excerpt: excerpt(body)}
	case KindShort:
		variant = ShortPost{}
	default:
		fail("type", fmt.Sprintf("unknown post type %q (valid: %s, %s)", fm.Type, KindFull, KindShort))
	}

	if len(errs) > 0 {
		return Post{}, &ValidationError{Fields: errs}
	}
	return Post{
		Title:       title,
		Slug:        slug,
		Description: description,
		PubDate:     pubDate,
		Tags:        tags,
		Variant:     variant,
		Body:        body,
		Format:      FormatMarkdown,
	}, nil
}

func excerpt(body string) string {
	before, _, found := strings.Cut(body, moreMarker)
	if !found {
		return ""
	}
	return strings.TrimSpace(before)
}
