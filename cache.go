package blog

import (
	"context"
	"sync"
	"time"
)

// PostCache is an in-memory cache of the loaded collection with TTL.
// Posts are held newest first.
type PostCache struct {
	mu      sync.RWMutex
	posts   []Post
	tags    []string
	fetched time.Time
	ttl     time.Duration
	root    string
	load    func(ctx context.Context, root string) ([]Post, error)
}

// NewPostCache creates a PostCache that reads the collection under root.
func NewPostCache(root string, ttl time.Duration) *PostCache {
	return &PostCache{root: root, ttl: ttl, load: LoadPosts}
}

func (c *PostCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.tags = nil
	c.mu.Unlock()
}

func (c *PostCache) reload(ctx context.Context) error {
	if c.valid() {
		return nil
	}
	posts, err := c.load(ctx, c.root)
	if err != nil {
		return err
	}
	c.posts = SortByDate(posts)
	c.tags = UniqueTags(c.posts)
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns cached posts and tags after ensuring the cache is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PostCache) ensureLoaded(ctx context.Context) ([]Post, []string, error) {
	c.mu.RLock()
	if c.valid() {
		posts, tags := c.posts, c.tags
		c.mu.RUnlock()
		return posts, tags, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.reload(ctx); err != nil {
		return nil, nil, err
	}
	return c.posts, c.tags, nil
}

// ListPosts returns the collection newest first, optionally filtered by tag.
func (c *PostCache) ListPosts(ctx context.Context, tag string) ([]Post, error) {
	posts, _, err := c.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}
	if tag == "" {
		return posts, nil
	}
	return FilterByTag(posts, tag), nil
}

// ListTags returns every distinct tag in first-seen order.
func (c *PostCache) ListTags(ctx context.Context) ([]string, error) {
	_, tags, err := c.ensureLoaded(ctx)
	return tags, err
}

// GetPost returns a single post by slug, or ErrNotFound.
func (c *PostCache) GetPost(ctx context.Context, slug string) (Post, error) {
	posts, _, err := c.ensureLoaded(ctx)
	if err != nil {
		return Post{}, err
	}
	p, ok := FindPost(posts, slug)
	if !ok {
		return Post{}, ErrNotFound
	}
	return p, nil
}
