package main

import (
	"context"

	"github.com/spf13/cobra"

	"moltbook/pkg/moltbook"
)

func (a *app) feedCmd() *cobra.Command {
	var opts moltbook.ListOptions
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Show the personalized feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, cl *moltbook.Client) (*moltbook.Response, error) {
				return cl.Feed(ctx, opts)
			})
		},
	}
	cmd.Flags().StringVar(&opts.Sort, "sort", moltbook.DefaultSort, "Sort order: hot, new, top, rising")
	cmd.Flags().IntVar(&opts.Limit, "limit", moltbook.DefaultLimit, "Maximum number of posts")
	return cmd
}

func (a *app) postsCmd() *cobra.Command {
	var opts moltbook.PostListOptions
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "List posts globally or in one submolt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, cl *moltbook.Client) (*moltbook.Response, error) {
				return cl.Posts(ctx, opts)
			})
		},
	}
	cmd.Flags().StringVar(&opts.Sort, "sort", moltbook.DefaultSort, "Sort order: hot, new, top, rising")
	cmd.Flags().IntVar(&opts.Limit, "limit", moltbook.DefaultLimit, "Maximum number of posts")
	cmd.Flags().StringVar(&opts.Submolt, "submolt", "", "Only posts from this submolt")
	return cmd
}

func (a *app) postCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Create, read, delete and vote on posts",
	}

	var p moltbook.NewPost
	create := &cobra.Command{
		Use:   "create --submolt <name> --title <title>",
		Short: "Create a text or link post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, cl *moltbook.Client) (*moltbook.Response, error) {
				return cl.CreatePost(ctx, p)
			})
		},
	}
	create.Flags().StringVar(&p.Submolt, "submolt", "", "Target submolt")
	create.Flags().StringVar(&p.Title, "title", "", "Post title")
	create.Flags().StringVar(&p.Content, "content", "", "Post body")
	create.Flags().StringVar(&p.URL, "url", "", "Link target")
	_ = create.MarkFlagRequired("submolt")
	_ = create.MarkFlagRequired("title")

	cmd.AddCommand(
		create,
		a.argCmd("get <id>", "Show a post", (*moltbook.Client).Post),
		a.argCmd("delete <id>", "Delete one of your posts", (*moltbook.Client).DeletePost),
		a.argCmd("upvote <id>", "Upvote a post", (*moltbook.Client).UpvotePost),
		a.argCmd("downvote <id>", "Downvote a post", (*moltbook.Client).DownvotePost),
	)
	return cmd
}

// argCmd builds a subcommand that calls fn with its single argument.
func (a *app) argCmd(use, short string, fn func(*moltbook.Client, context.Context, string) (*moltbook.Response, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, cl *moltbook.Client) (*moltbook.Response, error) {
				return fn(cl, ctx, args[0])
			})
		},
	}
}

func (a *app) commentsCmd() *cobra.Command {
	var opts moltbook.CommentListOptions
	cmd := &cobra.Command{
		Use:   "comments <post-id>",
		Short: "List a post's comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, cl *moltbook.Client) (*moltbook.Response, error) {
				return cl.Comments(ctx, args[0], opts)
			})
		},
	}
	cmd.Flags().StringVar(&opts.Sort, "sort", moltbook.DefaultCommentSort, "Sort order: top, new, controversial")
	return cmd
}

func (a *app) commentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Write and vote on comments",
	}

	var parent string
	create := &cobra.Command{
		Use:   "create <post-id> <content>",
		Short: "Comment on a post or reply to a comment",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := moltbook.NewComment{Content: joinArgs(args[1:]), ParentID: parent}
			return a.run(cmd, func(ctx context.Context, cl *moltbook.Client) (*moltbook.Response, error) {
				return cl.CreateComment(ctx, args[0], c)
			})
		},
	}
	create.Flags().StringVar(&parent, "parent", "", "Reply to this comment id")

	cmd.AddCommand(
		create,
		a.argCmd("upvote <id>", "Upvote a comment", (*moltbook.Client).UpvoteComment),
	)
	return cmd
}

func (a *app) searchCmd() *cobra.Command {
	var opts moltbook.SearchOptions
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search posts, agents and submolts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := joinArgs(args)
			return a.run(cmd, func(ctx context.Context, cl *moltbook.Client) (*moltbook.Response, error) {
				return cl.Search(ctx, q, opts)
			})
		},
	}
	cmd.Flags().IntVar(&opts.Limit, "limit", moltbook.DefaultLimit, "Maximum results")
	return cmd
}
