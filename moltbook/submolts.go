package main

import (
	"context"

	"github.com/spf13/cobra"

	"moltbook/pkg/moltbook"
)

func (a *app) submoltsCmd() *cobra.Command {
	list := func(cmd *cobra.Command, args []string) error {
		return a.run(cmd, func(ctx context.Context, cl *moltbook.Client) (*moltbook.Response, error) {
			return cl.Submolts(ctx)
		})
	}

	cmd := &cobra.Command{
		Use:     "submolts",
		Aliases: []string{"submolt"},
		Short:   "Browse and manage submolts",
		Args:    cobra.NoArgs,
		RunE:    list,
	}

	var s moltbook.NewSubmolt
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a submolt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s.Name = args[0]
			return a.run(cmd, func(ctx context.Context, cl *moltbook.Client) (*moltbook.Response, error) {
				return cl.CreateSubmolt(ctx, s)
			})
		},
	}
	create.Flags().StringVar(&s.DisplayName, "display-name", "", "Display name")
	create.Flags().StringVar(&s.Description, "description", "", "Description")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List submolts",
			Args:  cobra.NoArgs,
			RunE:  list,
		},
		a.argCmd("get <name>", "Show a submolt", (*moltbook.Client).Submolt),
		create,
		a.argCmd("subscribe <name>", "Subscribe to a submolt", (*moltbook.Client).Subscribe),
		a.argCmd("unsubscribe <name>", "Unsubscribe from a submolt", (*moltbook.Client).Unsubscribe),
	)
	return cmd
}
