package main

import (
	"context"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"moltbook/pkg/moltbook"
)

type noArgs struct{}

type feedArgs struct {
	Sort  string `json:"sort,omitempty" jsonschema:"hot, new, top or rising (default hot)"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of posts (default 25)"`
}

type listPostsArgs struct {
	Sort    string `json:"sort,omitempty" jsonschema:"hot, new, top or rising (default hot)"`
	Limit   int    `json:"limit,omitempty" jsonschema:"maximum number of posts (default 25)"`
	Submolt string `json:"submolt,omitempty" jsonschema:"only posts from this submolt"`
}

type postIDArgs struct {
	PostID string `json:"post_id" jsonschema:"post id"`
}

type createPostArgs struct {
	Submolt string `json:"submolt" jsonschema:"target submolt"`
	Title   string `json:"title" jsonschema:"post title"`
	Content string `json:"content,omitempty" jsonschema:"post body"`
	URL     string `json:"url,omitempty" jsonschema:"link target"`
}

type listCommentsArgs struct {
	PostID string `json:"post_id" jsonschema:"post id"`
	Sort   string `json:"sort,omitempty" jsonschema:"top, new or controversial (default top)"`
}

type createCommentArgs struct {
	PostID   string `json:"post_id" jsonschema:"post id"`
	Content  string `json:"content" jsonschema:"comment text"`
	ParentID string `json:"parent_id,omitempty" jsonschema:"comment id to reply to"`
}

type searchArgs struct {
	Query string `json:"query" jsonschema:"search text"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results (default 25)"`
}

func newServer(cl *moltbook.Client) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "moltbook-mcp",
		Version: moltbook.Version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "moltbook_me",
		Description: "Show the authenticated agent's profile",
	}, func(ctx context.Context, req *mcp.CallToolRequest, _ noArgs) (*mcp.CallToolResult, any, error) {
		return textResult(cl.Me(ctx))
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "moltbook_feed",
		Description: "Read the personalized feed",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args feedArgs) (*mcp.CallToolResult, any, error) {
		return textResult(cl.Feed(ctx, moltbook.ListOptions{Sort: args.Sort, Limit: args.Limit}))
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "moltbook_list_posts",
		Description: "List posts globally or in one submolt",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args listPostsArgs) (*mcp.CallToolResult, any, error) {
		return textResult(cl.Posts(ctx, moltbook.PostListOptions{Sort: args.Sort, Limit: args.Limit, Submolt: args.Submolt}))
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "moltbook_get_post",
		Description: "Read a single post",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args postIDArgs) (*mcp.CallToolResult, any, error) {
		id := strings.TrimSpace(args.PostID)
		if id == "" {
			return nil, nil, errors.New("post_id is required")
		}
		return textResult(cl.Post(ctx, id))
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "moltbook_create_post",
		Description: "Create a text or link post in a submolt",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args createPostArgs) (*mcp.CallToolResult, any, error) {
		if strings.TrimSpace(args.Submolt) == "" || strings.TrimSpace(args.Title) == "" {
			return nil, nil, errors.New("submolt and title are required")
		}
		return textResult(cl.CreatePost(ctx, moltbook.NewPost{
			Submolt: args.Submolt,
			Title:   args.Title,
			Content: args.Content,
			URL:     args.URL,
		}))
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "moltbook_list_comments",
		Description: "List the comments on a post",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args listCommentsArgs) (*mcp.CallToolResult, any, error) {
		id := strings.TrimSpace(args.PostID)
		if id == "" {
			return nil, nil, errors.New("post_id is required")
		}
		return textResult(cl.Comments(ctx, id, moltbook.CommentListOptions{Sort: args.Sort}))
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "moltbook_create_comment",
		Description: "Comment on a post or reply to a comment",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args createCommentArgs) (*mcp.CallToolResult, any, error) {
		id := strings.TrimSpace(args.PostID)
		if id == "" || strings.TrimSpace(args.Content) == "" {
			return nil, nil, errors.New("post_id and content are required")
		}
		return textResult(cl.CreateComment(ctx, id, moltbook.NewComment{Content: args.Content, ParentID: args.ParentID}))
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "moltbook_upvote_post",
		Description: "Upvote a post",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args postIDArgs) (*mcp.CallToolResult, any, error) {
		id := strings.TrimSpace(args.PostID)
		if id == "" {
			return nil, nil, errors.New("post_id is required")
		}
		return textResult(cl.UpvotePost(ctx, id))
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "moltbook_search",
		Description: "Search posts, agents and submolts",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args searchArgs) (*mcp.CallToolResult, any, error) {
		q := strings.TrimSpace(args.Query)
		if q == "" {
			return nil, nil, errors.New("query is required")
		}
		return textResult(cl.Search(ctx, q, moltbook.SearchOptions{Limit: args.Limit}))
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "moltbook_list_submolts",
		Description: "List submolts",
	}, func(ctx context.Context, req *mcp.CallToolRequest, _ noArgs) (*mcp.CallToolResult, any, error) {
		return textResult(cl.Submolts(ctx))
	})

	return server
}

// textResult returns the response body verbatim. A body reporting a service
// error is still a successful tool call; request failures are tool errors.
func textResult(resp *moltbook.Response, err error) (*mcp.CallToolResult, any, error) {
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(resp.Raw)},
		},
	}, nil, nil
}
