// Package cli holds the taskpane command tree. The bare command opens the
// terminal UI; subcommands cover sign-in and read-only listings.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/rpggio/taskpane/internal/api"
	"github.com/rpggio/taskpane/internal/auth"
	"github.com/rpggio/taskpane/internal/auth/tokenstore"
	"github.com/rpggio/taskpane/internal/config"
	"github.com/rpggio/taskpane/internal/logging"
	"github.com/rpggio/taskpane/internal/tui"
	"github.com/rpggio/taskpane/internal/workspace"
	"github.com/spf13/cobra"
)

// ErrNotSignedIn is returned by commands that need a stored token.
var ErrNotSignedIn = errors.New("not signed in, run `taskpane login` first")

type rootOptions struct {
	apiURL string
}

// env is everything one command invocation needs.
type env struct {
	cfg     config.Config
	logger  *slog.Logger
	store   tokenstore.Store
	session *auth.Session
	client  *api.Client
	closers []func() error
}

func (e *env) close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		_ = e.closers[i]()
	}
}

// open loads configuration, the logger and the persisted session. Logs go
// to logOut unless a log file is configured.
func (o *rootOptions) open(ctx context.Context, logOut io.Writer) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	if o.apiURL != "" {
		cfg.API.URL = o.apiURL
	}

	logger, closeLog, err := logging.New(cfg.Log.Level, cfg.Log.Path, logOut)
	if err != nil {
		return nil, fmt.Errorf("log file error: %w", err)
	}
	e := &env{cfg: cfg, logger: logger, closers: []func() error{closeLog}}

	store, err := tokenstore.Open(cfg.Session.Backend, cfg.Session.Path)
	if err != nil {
		e.close()
		return nil, fmt.Errorf("open session store: %w", err)
	}
	e.store = store
	e.closers = append(e.closers, store.Close)

	e.session = auth.NewSession(store, logger.With("component", "session"))
	if err := e.session.Init(ctx); err != nil {
		e.close()
		return nil, err
	}
	e.client = api.New(cfg.API.URL, e.session,
		api.WithTimeout(cfg.API.Timeout),
		api.WithLogger(logger.With("component", "api")),
	)
	return e, nil
}

// New builds the root command.
func New() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "taskpane",
		Short:         "Manage projects and tasks from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.open(cmd.Context(), io.Discard)
			if err != nil {
				return err
			}
			defer e.close()
			return tui.Run(tui.Deps{
				Session:   e.session,
				Authn:     e.client,
				Workspace: workspace.New(e.client, e.logger),
				Timeout:   e.cfg.API.Timeout,
				Logger:    e.logger.With("component", "tui"),
			})
		},
	}
	cmd.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "API base URL (overrides TASKPANE_API_URL)")

	addLogin(cmd, opts)
	addLogout(cmd, opts)
	addProjects(cmd, opts)
	addTasks(cmd, opts)
	addProgress(cmd, opts)
	return cmd
}

// Execute runs the command tree and reports a failure on stderr.
func Execute(ctx context.Context) int {
	cmd := New()
	if err := cmd.ExecuteContext(ctx); err != nil {
		printError(cmd.ErrOrStderr(), err)
		return 1
	}
	return 0
}
