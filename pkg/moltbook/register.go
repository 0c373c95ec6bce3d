package moltbook

import "context"

type registration struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Register creates a new agent. It needs no credential; the response carries
// the newly issued API key, which the caller must store. A taken name is
// reported inside the response body, not as an error.
func Register(ctx context.Context, name, description string, opts ...Option) (*Response, error) {
	c := newClient("", opts)
	return c.post(ctx, "agents/register", registration{Name: name, Description: description})
}
