package blog

import "time"

// Kind discriminates the post variants.
type Kind string

const (
	KindFull  Kind = "full"
	KindShort Kind = "short"
)

// Variant is the kind-specific part of a Post. It is implemented by
// FullPost and ShortPost only.
type Variant interface {
	Kind() Kind
	variant()
}

// FullPost is a regular article. Excerpt holds the body text above the
// <!--more--> marker, or is empty when the post has no marker.
type FullPost struct {
	Excerpt string
}

// ShortPost is an abbreviated post whose whole body is the content.
type ShortPost struct{}

func (FullPost) Kind() Kind  { return KindFull }
func (ShortPost) Kind() Kind { return KindShort }

func (FullPost) variant()  {}
func (ShortPost) variant() {}

// Format is the source format of a post body.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatMDX      Format = "mdx"
)

// Post is a validated blog post. Posts are built once per content file and
// never modified afterwards.
type Post struct {
	Title       string
	Slug        string
	Description string
	PubDate     time.Time
	Tags        []string
	Variant     Variant

	Body       string
	Format     Format
	SourcePath string
}

// Kind returns the post's variant kind, defaulting to KindFull.
func (p Post) Kind() Kind {
	if p.Variant == nil {
		return KindFull
	}
	return p.Variant.Kind()
}

// Excerpt returns the text above <!--more--> for full posts.
func (p Post) Excerpt() string {
	if fp, ok := p.Variant.(FullPost); ok {
		return fp.Excerpt
	}
	return ""
}
