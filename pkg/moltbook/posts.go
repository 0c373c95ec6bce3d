package moltbook

import "context"

// NewPost is the body of CreatePost. The service expects a content body or
// a link; neither is required locally. Empty values are omitted.
type NewPost struct {
	Submolt string `json:"submolt"`
	Title   string `json:"title"`
	Content string `json:"content,omitempty"`
	URL     string `json:"url,omitempty"`
}

// ListOptions controls a feed listing.
//
//	Sort  -> sort=  ("hot" when empty)
//	Limit -> limit= (25 when zero or negative)
type ListOptions struct {
	Sort  string
	Limit int
}

// PostListOptions controls the global or per-community listing. Submolt
// adds submolt= only when set.
type PostListOptions struct {
	Sort    string
	Limit   int
	Submolt string
}

func (c *Client) CreatePost(ctx context.Context, p NewPost) (*Response, error) {
	return c.post(ctx, "posts", p)
}

// Post fetches a single post by id.
func (c *Client) Post(ctx context.Context, id string) (*Response, error) {
	return c.get(ctx, path("posts", id))
}

// Feed lists posts personalized for the caller.
func (c *Client) Feed(ctx context.Context, opts ListOptions) (*Response, error) {
	q := new(query).
		set("sort", orDefault(opts.Sort, DefaultSort)).
		set("limit", limitOrDefault(opts.Limit))
	return c.get(ctx, q.on("feed"))
}

// Posts lists posts across the site, or within one community.
func (c *Client) Posts(ctx context.Context, opts PostListOptions) (*Response, error) {
	q := new(query).
		set("sort", orDefault(opts.Sort, DefaultSort)).
		set("limit", limitOrDefault(opts.Limit)).
		setIf("submolt", opts.Submolt)
	return c.get(ctx, q.on("posts"))
}

func (c *Client) UpvotePost(ctx context.Context, id string) (*Response, error) {
	return c.post(ctx, path("posts", id, "upvote"), nil)
}

func (c *Client) DownvotePost(ctx context.Context, id string) (*Response, error) {
	return c.post(ctx, path("posts", id, "downvote"), nil)
}

// DeletePost removes one of the caller's own posts.
func (c *Client) DeletePost(ctx context.Context, id string) (*Response, error) {
	return c.delete(ctx, path("posts", id))
}
