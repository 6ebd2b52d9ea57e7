package cmd

import (
	"fmt"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	authEmail    string
	authPassword string
)

// NewRegisterCmd creates an account and stores its token.
func NewRegisterCmd() *cobra.Command {
	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Long:  `Creates an account on the backend and stores the returned token locally.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuth(cmd, "register")
		},
	}
	addAuthFlags(registerCmd)
	return registerCmd
}

// NewLoginCmd logs in and stores the token.
func NewLoginCmd() *cobra.Command {
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to an existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuth(cmd, "login")
		},
	}
	addAuthFlags(loginCmd)
	return loginCmd
}

func addAuthFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&authEmail, "email", "e", "", "Account email (prompted when omitted)")
	cmd.Flags().StringVarP(&authPassword, "password", "p", "", "Account password (prompted when omitted)")
	cmd.Flags().StringVar(&apiURLFlag, "api-url", "", "Backend base URL")
}

func runAuth(cmd *cobra.Command, mode string) error {
	ids, err := newResolver()
	if err != nil {
		return err
	}
	client, err := newClient(ids)
	if err != nil {
		return err
	}

	email := strings.TrimSpace(authEmail)
	if email == "" {
		fmt.Print("Email: ")
		if _, err := fmt.Scanln(&email); err != nil {
			return fmt.Errorf("read email: %w", err)
		}
	}

	password := authPassword
	if password == "" {
		fmt.Print("Password: ")
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		password = string(raw)
	}

	var token string
	if mode == "register" {
		token, err = client.Register(cmd.Context(), email, password)
	} else {
		token, err = client.Login(cmd.Context(), email, password)
	}
	if err != nil {
		return err
	}

	if err := ids.SetAuthToken(token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}

	if mode == "register" {
		fmt.Println("Account created. You are logged in.")
	} else {
		fmt.Println("Logged in.")
	}
	return nil
}

// NewLogoutCmd removes the stored token.
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out",
		Long:  `Removes the locally stored token. No backend call is made.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := newResolver()
			if err != nil {
				return err
			}
			if err := ids.Logout(); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}

// NewWhoamiCmd prints the current auth state.
func NewWhoamiCmd() *cobra.Command {
	whoamiCmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current account and credit balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := newResolver()
			if err != nil {
				return err
			}
			client, err := newClient(ids)
			if err != nil {
				return err
			}

			user := ids.CurrentUser(cmd.Context(), client)
			if user == nil {
				fmt.Println("Not logged in (anonymous).")
				return nil
			}

			fmt.Printf("Email:   %s\n", user.Email)
			fmt.Printf("Credits: %d\n", user.Credits)
			if user.IsAdmin {
				fmt.Println("Role:    admin")
			}
			return nil
		},
	}
	whoamiCmd.Flags().StringVar(&apiURLFlag, "api-url", "", "Backend base URL")
	return whoamiCmd
}
