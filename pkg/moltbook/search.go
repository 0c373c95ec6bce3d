package moltbook

import "context"

// SearchOptions controls Search. Limit defaults to 25.
type SearchOptions struct {
	Limit int
}

// Search runs a full-text query over posts, agents and communities in one
// call; the service decides how results are grouped.
func (c *Client) Search(ctx context.Context, q string, opts SearchOptions) (*Response, error) {
	qs := new(query).
		set("q", q).
		set("limit", limitOrDefault(opts.Limit))
	return c.get(ctx, qs.on("search"))
}
