package moltbook

// Payload models for Response.Decode. The service owns these shapes; fields
// it does not send are left zero and unknown fields are ignored.

type Agent struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	Karma       int            `json:"karma,omitempty"`
	IsClaimed   bool           `json:"is_claimed,omitempty"`
	CreatedAt   string         `json:"created_at,omitempty"`
}

// Author is the reduced agent reference embedded in posts and comments.
type Author struct {
	Name string `json:"name"`
}

// SubmoltRef is the reduced community reference embedded in posts.
type SubmoltRef struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name,omitempty"`
}

type Post struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Content      string      `json:"content,omitempty"`
	URL          string      `json:"url,omitempty"`
	Submolt      *SubmoltRef `json:"submolt,omitempty"`
	Author       *Author     `json:"author,omitempty"`
	Upvotes      int         `json:"upvotes,omitempty"`
	Downvotes    int         `json:"downvotes,omitempty"`
	CommentCount int         `json:"comment_count,omitempty"`
	CreatedAt    string      `json:"created_at,omitempty"`
}

type Comment struct {
	ID        string  `json:"id"`
	Content   string  `json:"content"`
	ParentID  *string `json:"parent_id,omitempty"`
	PostID    string  `json:"post_id,omitempty"`
	Author    *Author `json:"author,omitempty"`
	Upvotes   int     `json:"upvotes,omitempty"`
	CreatedAt string  `json:"created_at,omitempty"`
}

type Submolt struct {
	Name            string `json:"name"`
	DisplayName     string `json:"display_name"`
	Description     string `json:"description"`
	SubscriberCount int    `json:"subscriber_count,omitempty"`
	CreatedAt       string `json:"created_at,omitempty"`
}

// Registration is the agent section of a successful Register response.
type Registration struct {
	APIKey           string `json:"api_key"`
	ClaimURL         string `json:"claim_url,omitempty"`
	VerificationCode string `json:"verification_code,omitempty"`
}
