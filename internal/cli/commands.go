package cli

import (
	"fmt"

	"github.com/rpggio/taskpane/internal/api"
	"github.com/rpggio/taskpane/internal/tui"
	"github.com/spf13/cobra"
)

type loginOptions struct {
	email    string
	password string
}

func addLogin(topLevel *cobra.Command, root *rootOptions) {
	lo := &loginOptions{}
	cmd := &cobra.Command{
		Use:   "login",
		Short: "sign in and store the session token",
		Example: `
taskpane login
taskpane login --email me@example.com --password secret
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := root.open(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.close()

			if err := e.session.Login(cmd.Context(), e.client, lo.email, lo.password); err != nil {
				return loginError{err}
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", lo.email)
			return nil
		},
	}
	cmd.Flags().StringVar(&lo.email, "email", tui.DefaultEmail, "account email")
	cmd.Flags().StringVar(&lo.password, "password", tui.DefaultPassword, "account password")
	topLevel.AddCommand(cmd)
}

func addLogout(topLevel *cobra.Command, root *rootOptions) {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "forget the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := root.open(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.close()

			if err := e.session.Logout(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

// signedIn opens the environment and fails when no token is stored.
func signedIn(cmd *cobra.Command, root *rootOptions) (*env, error) {
	e, err := root.open(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	if !e.session.Authenticated() {
		e.close()
		return nil, ErrNotSignedIn
	}
	return e, nil
}

func addProjects(topLevel *cobra.Command, root *rootOptions) {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"ls"},
		Short:   "list projects",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := signedIn(cmd, root)
			if err != nil {
				return err
			}
			defer e.close()

			projects, err := e.client.ListProjects(cmd.Context())
			if err != nil {
				return err
			}
			printProjects(cmd.OutOrStdout(), projects)
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

func addTasks(topLevel *cobra.Command, root *rootOptions) {
	cmd := &cobra.Command{
		Use:   "tasks <project-id>",
		Short: "list the tasks of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := signedIn(cmd, root)
			if err != nil {
				return err
			}
			defer e.close()

			tasks, err := e.client.ListTasks(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printTasks(cmd.OutOrStdout(), tasks)
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

func addProgress(topLevel *cobra.Command, root *rootOptions) {
	cmd := &cobra.Command{
		Use:   "progress <project-id>",
		Short: "show completion progress of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := signedIn(cmd, root)
			if err != nil {
				return err
			}
			defer e.close()

			progress, err := e.client.GetProgress(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printProgress(cmd.OutOrStdout(), *progress)
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

// loginError keeps the login form wording on the command line.
type loginError struct{ err error }

func (e loginError) Error() string { return api.LoginMessage(e.err) }
func (e loginError) Unwrap() error { return e.err }
