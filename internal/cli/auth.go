package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/aidar/teamhub/internal/client"
)

// loginCmd signs the user in and stores the session token
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		if email == "" {
			return fmt.Errorf("--email is required")
		}
		if password == "" {
			var err error
			password, err = promptPassword()
			if err != nil {
				return err
			}
		}

		rt, err := newRuntime()
		if err != nil {
			return err
		}

		if err := rt.session.Login(cmd.Context(), email, password); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		user, _ := rt.session.CurrentUser()
		fmt.Printf("Signed in as %s\n", user.Email)
		return nil
	},
}

// registerCmd creates an account and signs in with the same pair
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		if email == "" {
			return fmt.Errorf("--email is required")
		}
		if password == "" {
			var err error
			password, err = promptPassword()
			if err != nil {
				return err
			}
		}

		rt, err := newRuntime()
		if err != nil {
			return err
		}

		if err := rt.session.Register(cmd.Context(), email, password); err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}

		user, _ := rt.session.CurrentUser()
		fmt.Printf("Registered and signed in as %s\n", user.Email)
		return nil
	},
}

// logoutCmd discards the stored session token
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}

		rt.session.Logout()
		fmt.Println("Signed out.")
		return nil
	},
}

// whoamiCmd shows the resolved identity behind the stored token
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current user",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}

		if err := rt.requireSession(cmd); err != nil {
			return err
		}

		user, _ := rt.session.CurrentUser()
		fmt.Printf("User ID: %d\n", user.ID)
		fmt.Printf("Email:   %s\n", user.Email)

		if token, err := rt.store.Load(); err == nil && token != "" {
			if expiry, ok := client.TokenExpiry(token); ok {
				fmt.Printf("Token expires: %s\n", expiry.Local().Format(time.RFC1123))
			}
		}
		return nil
	},
}

// promptPassword asks for the password interactively without echo
func promptPassword() (string, error) {
	var password string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&password),
	))
	if err := form.Run(); err != nil {
		return "", err
	}
	if password == "" {
		return "", fmt.Errorf("password must not be empty")
	}
	return password, nil
}

func init() {
	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password (prompted when omitted)")
	registerCmd.Flags().String("email", "", "account email")
	registerCmd.Flags().String("password", "", "account password (prompted when omitted)")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}
