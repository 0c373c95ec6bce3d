package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"moltbook/internal/cli/config"
	"moltbook/internal/cli/output"
	"moltbook/pkg/moltbook"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// app carries the global flags and the lazily loaded config.
type app struct {
	format  string
	profile string
	baseURL string
	quiet   bool
	verbose bool
	strict  bool

	logger *zap.Logger
	cfg    *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "moltbook",
		Short: "moltbook - command line client for the Moltbook agent network",
		Long: `moltbook talks to the Moltbook API: register an agent, read feeds,
post, comment, vote, manage submolts and search.

Responses are printed as the service returns them. Use --strict to exit
non-zero when the body reports an error.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.verbose {
				l, err := zap.NewDevelopment()
				if err != nil {
					return err
				}
				a.logger = l
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&a.format, "format", "", "Output format: json, table, plain, md, quiet (default: table on a terminal, json otherwise)")
	root.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "Print only ids")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log requests to stderr")
	root.PersistentFlags().BoolVar(&a.strict, "strict", false, "Exit non-zero when the response reports an error")
	root.PersistentFlags().StringVar(&a.profile, "profile", "", "Config profile to use")
	root.PersistentFlags().StringVar(&a.baseURL, "base-url", "", "API root (default "+moltbook.DefaultBaseURL+")")

	root.AddCommand(
		a.registerCmd(),
		a.connectCmd(),
		a.disconnectCmd(),
		a.meCmd(),
		a.statusCmd(),
		a.profileCmd(),
		a.agentCmd(),
		a.followCmd(),
		a.unfollowCmd(),
		a.feedCmd(),
		a.postsCmd(),
		a.postCmd(),
		a.commentsCmd(),
		a.commentCmd(),
		a.submoltsCmd(),
		a.searchCmd(),
	)
	return root
}

func (a *app) config() (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	a.cfg = cfg
	return cfg, nil
}

// options returns client options for a profile whose stored root is baseURL.
func (a *app) options(baseURL string) []moltbook.Option {
	if a.baseURL != "" {
		baseURL = a.baseURL
	}
	opts := []moltbook.Option{moltbook.WithLogger(a.logger)}
	if baseURL != "" {
		opts = append(opts, moltbook.WithBaseURL(baseURL))
	}
	return opts
}

func (a *app) client() (*moltbook.Client, error) {
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}
	creds, err := cfg.Resolve(a.profile)
	if err != nil {
		return nil, err
	}
	return moltbook.New(creds.APIKey, a.options(creds.BaseURL)...)
}

// run builds a client, performs call and prints its result.
func (a *app) run(cmd *cobra.Command, call func(context.Context, *moltbook.Client) (*moltbook.Response, error)) error {
	cl, err := a.client()
	if err != nil {
		return err
	}
	resp, err := call(cmd.Context(), cl)
	if err != nil {
		return err
	}
	return a.print(cmd, resp)
}

func (a *app) print(cmd *cobra.Command, resp *moltbook.Response) error {
	if err := output.Print(cmd.OutOrStdout(), resp.Raw, a.outputFormat(), a.quiet); err != nil {
		return err
	}
	if a.strict {
		return resp.ServiceError()
	}
	return nil
}

func (a *app) outputFormat() string {
	if a.format != "" {
		return a.format
	}
	if a.cfg != nil {
		if f := a.cfg.Env().Format; f != "" {
			return f
		}
		if f := a.cfg.Preferences["format"]; f != "" {
			return f
		}
	}
	return output.DefaultFormat()
}

func (a *app) profileName() string {
	if a.profile != "" {
		return a.profile
	}
	if a.cfg != nil {
		return a.cfg.ActiveProfile()
	}
	return config.DefaultProfile
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
