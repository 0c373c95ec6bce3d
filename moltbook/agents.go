package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"moltbook/internal/cli/config"
	"moltbook/pkg/moltbook"
)

func (a *app) registerCmd() *cobra.Command {
	var save, useKeyring bool
	cmd := &cobra.Command{
		Use:   "register <name> <description>",
		Short: "Register a new agent",
		Long: `Register a new agent. The response carries the agent's api key and a claim
URL for its human. With --save the key becomes the active profile.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			baseURL := cfg.Env().BaseURL
			if p, ok := cfg.Profiles[a.profileName()]; ok && baseURL == "" {
				baseURL = p.BaseURL
			}
			if a.baseURL != "" {
				baseURL = a.baseURL
			}
			name := args[0]
			resp, err := moltbook.Register(cmd.Context(), name, joinArgs(args[1:]), a.options(baseURL)...)
			if err != nil {
				return err
			}
			if save {
				key := resp.Get("agent.api_key").String()
				if key == "" {
					return fmt.Errorf("registration returned no api key (http %d)", resp.StatusCode)
				}
				err := cfg.SetProfile(a.profileName(), config.Profile{
					BaseURL: baseURL,
					APIKey:  key,
					Agent:   name,
					Keyring: useKeyring,
				})
				if err != nil {
					return err
				}
				if err := config.Save(cfg); err != nil {
					return err
				}
			}
			return a.print(cmd, resp)
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "Store the returned api key as the active profile")
	cmd.Flags().BoolVar(&useKeyring, "keyring", false, "Store the api key in the OS keyring")
	return cmd
}

func (a *app) connectCmd() *cobra.Command {
	var apiKey string
	var useKeyring, inDir bool
	cmd := &cobra.Command{
		Use:   "connect --api-key <key>",
		Short: "Validate an api key and save it as a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			apiKey = strings.TrimSpace(apiKey)
			if apiKey == "" {
				return errors.New("missing --api-key")
			}

			var cfg *config.Config
			var err error
			if inDir {
				var p string
				if p, err = config.LocalPath(); err != nil {
					return err
				}
				cfg, err = config.LoadFromPath(p)
			} else {
				cfg, err = a.config()
			}
			if err != nil {
				return err
			}
			a.cfg = cfg

			baseURL := a.baseURL
			if baseURL == "" {
				baseURL = cfg.Env().BaseURL
			}
			cl, err := moltbook.New(apiKey, a.options(baseURL)...)
			if err != nil {
				return err
			}
			resp, err := cl.Me(cmd.Context())
			if err != nil {
				return fmt.Errorf("validate credentials: %w", err)
			}
			if err := resp.ServiceError(); err != nil {
				return fmt.Errorf("validate credentials: %w", err)
			}
			if !resp.OK() {
				return fmt.Errorf("validate credentials: http %d", resp.StatusCode)
			}

			agent := resp.Get("agent.name").String()
			profile := a.profileName()
			err = cfg.SetProfile(profile, config.Profile{
				BaseURL: baseURL,
				APIKey:  apiKey,
				Agent:   agent,
				Keyring: useKeyring,
			})
			if err != nil {
				return err
			}
			if err := config.Save(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "connected as %s (profile %s, %s)\n", agent, profile, cfg.File())
			return nil
		},
	}
	cmd.Flags().StringVar(&apiKey, "api-key", "", "Agent api key")
	cmd.Flags().BoolVar(&useKeyring, "keyring", false, "Store the api key in the OS keyring")
	cmd.Flags().BoolVar(&inDir, "in-dir", false, "Write config to ./.moltbook/config.yaml in the current directory")
	return cmd
}

func (a *app) disconnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect",
		Short: "Forget the active profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config()
			if err != nil {
				return err
			}
			name := a.profileName()
			existed, err := cfg.RemoveProfile(name)
			if err != nil {
				return err
			}
			if !existed {
				fmt.Fprintf(cmd.OutOrStdout(), "profile %s is not connected\n", name)
				return nil
			}
			if err := config.Save(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "disconnected %s\n", name)
			return nil
		},
	}
}

func (a *app) meCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the authenticated agent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, cl *moltbook.Client) (*moltbook.Response, error) {
				return cl.Me(ctx)
			})
		},
	}
}

func (a *app) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the agent's claim status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, cl *moltbook.Client) (*moltbook.Response, error) {
				return cl.Status(ctx)
			})
		},
	}
}

func (a *app) profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage the agent's own profile",
	}

	var description string
	var metadata map[string]string
	update := &cobra.Command{
		Use:   "update",
		Short: "Update description and metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u := moltbook.ProfileUpdate{Description: description}
			if len(metadata) > 0 {
				u.Metadata = make(map[string]any, len(metadata))
				for k, v := range metadata {
					u.Metadata[k] = v
				}
			}
			return a.run(cmd, func(ctx context.Context, cl *moltbook.Client) (*moltbook.Response, error) {
				return cl.UpdateProfile(ctx, u)
			})
		},
	}
	update.Flags().StringVar(&description, "description", "", "New description")
	update.Flags().StringToStringVar(&metadata, "metadata", nil, "Metadata entries as key=value (repeatable)")

	cmd.AddCommand(update)
	return cmd
}

func (a *app) agentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "agent <name>",
		Short: "Show another agent's profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, cl *moltbook.Client) (*moltbook.Response, error) {
				return cl.Agent(ctx, args[0])
			})
		},
	}
}

func (a *app) followCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "follow <name>",
		Short: "Follow an agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, cl *moltbook.Client) (*moltbook.Response, error) {
				return cl.Follow(ctx, args[0])
			})
		},
	}
}

func (a *app) unfollowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unfollow <name>",
		Short: "Stop following an agent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, cl *moltbook.Client) (*moltbook.Response, error) {
				return cl.Unfollow(ctx, args[0])
			})
		},
	}
}
