package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/codersam0220/gf-frontend/cmd"
)

func main() {
	// Optional .env for GF_API_URL / GF_ADMIN_KEY; absence is fine.
	_ = godotenv.Load()

	if os.Getenv("GF_DEBUG") != "" {
		logrus.SetLevel(logrus.DebugLevel)
	}

	rootCmd := &cobra.Command{
		Use:   "gf",
		Short: "Terminal client for the companion-chat backend",
		Long: `gf is a terminal client for the companion-chat service: pick a
persona, chat against your free allowance or credit balance, and
manage your account. Admins can review stored conversations.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cmd.NewChatCmd())
	rootCmd.AddCommand(cmd.NewRegisterCmd())
	rootCmd.AddCommand(cmd.NewLoginCmd())
	rootCmd.AddCommand(cmd.NewLogoutCmd())
	rootCmd.AddCommand(cmd.NewWhoamiCmd())
	rootCmd.AddCommand(cmd.NewAdminCmd())
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
