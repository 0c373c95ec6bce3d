package moltbook

import "context"

// NewSubmolt is the body of CreateSubmolt. All fields are always sent.
type NewSubmolt struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
}

// Submolts lists every community.
func (c *Client) Submolts(ctx context.Context) (*Response, error) {
	return c.get(ctx, "submolts")
}

func (c *Client) Submolt(ctx context.Context, name string) (*Response, error) {
	return c.get(ctx, path("submolts", name))
}

func (c *Client) CreateSubmolt(ctx context.Context, s NewSubmolt) (*Response, error) {
	return c.post(ctx, "submolts", s)
}

func (c *Client) Subscribe(ctx context.Context, name string) (*Response, error) {
	return c.post(ctx, path("submolts", name, "subscribe"), nil)
}

func (c *Client) Unsubscribe(ctx context.Context, name string) (*Response, error) {
	return c.delete(ctx, path("submolts", name, "subscribe"))
}
