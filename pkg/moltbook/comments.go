package moltbook

import "context"

// NewComment is the body of CreateComment. ParentID threads the comment
// under another one and is omitted when empty.
type NewComment struct {
	Content  string `json:"content"`
	ParentID string `json:"parent_id,omitempty"`
}

// CommentListOptions controls Comments. Sort defaults to "top".
type CommentListOptions struct {
	Sort string
}

func (c *Client) CreateComment(ctx context.Context, postID string, cm NewComment) (*Response, error) {
	return c.post(ctx, path("posts", postID, "comments"), cm)
}

// Comments lists the comments on a post.
func (c *Client) Comments(ctx context.Context, postID string, opts CommentListOptions) (*Response, error) {
	q := new(query).set("sort", orDefault(opts.Sort, DefaultCommentSort))
	return c.get(ctx, q.on(path("posts", postID, "comments")))
}

func (c *Client) UpvoteComment(ctx context.Context, id string) (*Response, error) {
	return c.post(ctx, path("comments", id, "upvote"), nil)
}
