package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidar/teamhub/internal/authz"
	"github.com/aidar/teamhub/internal/client"
	"github.com/aidar/teamhub/internal/config"
)

// rootCmd is the base teamctl command
var rootCmd = &cobra.Command{
	Use:   "teamctl",
	Short: "Manage teamhub teams and memberships",
	Long: `teamctl is the command line client for the teamhub service.

Sign in with 'teamctl login', then manage teams and their members.
The session token is kept in a single file (default ~/.teamctl/token)
and is discarded whenever the server rejects it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

// runtime bundles the client-side components behind every command
type runtime struct {
	store   client.CredentialStore
	session *client.SessionManager
	teams   *client.TeamController
}

// newRuntime assembles the credential store, API client and session manager
// from the environment configuration
func newRuntime() (*runtime, error) {
	cfg, err := config.LoadClient()
	if err != nil {
		return nil, err
	}

	tokenPath := cfg.TokenFile
	if tokenPath == "" {
		tokenPath, err = client.DefaultTokenPath()
		if err != nil {
			return nil, fmt.Errorf("failed to locate token file: %w", err)
		}
	}

	store := client.NewFileCredentialStore(tokenPath)
	api := client.New(cfg.APIURL, store)
	api.SetTimeout(cfg.RequestTimeout)

	session, err := client.NewSessionManager(api, store)
	if err != nil {
		return nil, err
	}

	return &runtime{
		store:   store,
		session: session,
		teams:   client.NewTeamController(api, session),
	}, nil
}

// requireSession resolves the stored credential and refuses to proceed
// unless the session ends up resolved
func (rt *runtime) requireSession(cmd *cobra.Command) error {
	if err := rt.session.Start(cmd.Context()); err != nil {
		return fmt.Errorf("session check failed: %w", err)
	}
	if !authz.CanViewProtectedRoute(rt.session.Snapshot()) {
		return fmt.Errorf("not signed in (run 'teamctl login')")
	}
	return nil
}
