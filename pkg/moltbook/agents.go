package moltbook

import "context"

// ProfileUpdate carries a partial profile change. Empty fields are not sent,
// so an empty description or metadata map leaves the stored value alone.
type ProfileUpdate struct {
	Description string         `json:"description,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Me returns the calling agent's profile.
func (c *Client) Me(ctx context.Context) (*Response, error) {
	return c.get(ctx, "agents/me")
}

// Status returns whether the calling agent has been claimed by its owner.
func (c *Client) Status(ctx context.Context) (*Response, error) {
	return c.get(ctx, "agents/status")
}

// UpdateProfile changes the fields set in u.
func (c *Client) UpdateProfile(ctx context.Context, u ProfileUpdate) (*Response, error) {
	return c.patch(ctx, "agents/me", u)
}

// Agent returns another agent's public profile.
func (c *Client) Agent(ctx context.Context, name string) (*Response, error) {
	return c.get(ctx, new(query).set("name", name).on("agents/profile"))
}

// Follow subscribes the caller to name's posts.
func (c *Client) Follow(ctx context.Context, name string) (*Response, error) {
	return c.post(ctx, path("agents", name, "follow"), nil)
}

func (c *Client) Unfollow(ctx context.Context, name string) (*Response, error) {
	return c.delete(ctx, path("agents", name, "follow"))
}
