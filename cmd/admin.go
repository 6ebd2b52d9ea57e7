package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/codersam0220/gf-frontend/pkg/api"
)

var (
	adminKeyFlag      string
	adminSessionFlag  int64
	adminNoTranscript bool
)

// NewAdminCmd groups the admin tools.
func NewAdminCmd() *cobra.Command {
	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin tools (requires the admin API key)",
	}

	conversationsCmd := &cobra.Command{
		Use:   "conversations",
		Short: "List stored sessions and their transcripts",
		Long: `Fetches every stored session with its transcript and prints them.

The admin key is taken from --key or the GF_ADMIN_KEY environment
variable.`,
		RunE: runAdminConversations,
	}
	conversationsCmd.Flags().Int64Var(&adminSessionFlag, "session", 0, "Show only this session id")
	conversationsCmd.Flags().BoolVar(&adminNoTranscript, "no-transcript", false, "List sessions without message bodies")

	addCreditsCmd := &cobra.Command{
		Use:   "add-credits <user-id> <amount>",
		Short: "Add credits to a user's balance",
		Args:  cobra.ExactArgs(2),
		RunE:  runAdminAddCredits,
	}

	for _, c := range []*cobra.Command{conversationsCmd, addCreditsCmd} {
		c.Flags().StringVar(&adminKeyFlag, "key", "", "Admin API key (defaults to GF_ADMIN_KEY)")
		c.Flags().StringVar(&apiURLFlag, "api-url", "", "Backend base URL")
		adminCmd.AddCommand(c)
	}
	return adminCmd
}

func resolveAdminKey() (string, error) {
	if adminKeyFlag != "" {
		return adminKeyFlag, nil
	}
	if key := os.Getenv("GF_ADMIN_KEY"); key != "" {
		return key, nil
	}
	return "", fmt.Errorf("no admin key: pass --key or set GF_ADMIN_KEY")
}

func newAdminClient() (*api.Client, error) {
	key, err := resolveAdminKey()
	if err != nil {
		return nil, err
	}
	return api.NewClient(resolveBaseURL(), api.WithAdminKey(key)), nil
}

func runAdminConversations(cmd *cobra.Command, args []string) error {
	client, err := newAdminClient()
	if err != nil {
		return err
	}

	list, err := client.ListConversations(cmd.Context())
	if err != nil {
		if errors.Is(err, api.ErrForbidden) {
			return fmt.Errorf("wrong API key")
		}
		return err
	}

	bold := color.New(color.Bold)
	muted := color.New(color.FgHiBlack)
	userCol := color.New(color.FgMagenta)
	assistantCol := color.New(color.FgCyan)

	bold.Printf("%d total sessions\n", list.TotalSessions)

	shown := 0
	for _, conv := range list.Conversations {
		if adminSessionFlag != 0 && conv.SessionID != adminSessionFlag {
			continue
		}
		shown++

		fmt.Println()
		bold.Printf("#%d", conv.SessionID)
		anon := conv.AnonID
		if len(anon) > 8 {
			anon = anon[:8] + "..."
		}
		if anon == "" {
			anon = "anonymous"
		}
		muted.Printf("  %s  %s  %d messages\n",
			anon, conv.CreatedAt.Local().Format(time.DateTime), conv.MessageCount)

		if adminNoTranscript {
			continue
		}
		for _, msg := range conv.Messages {
			col := assistantCol
			if msg.Role == "user" {
				col = userCol
			}
			col.Printf("  %-9s ", msg.Role)
			fmt.Println(msg.Content)
		}
	}

	if adminSessionFlag != 0 && shown == 0 {
		return fmt.Errorf("session %d not found", adminSessionFlag)
	}
	return nil
}

func runAdminAddCredits(cmd *cobra.Command, args []string) error {
	client, err := newAdminClient()
	if err != nil {
		return err
	}

	amount, err := strconv.Atoi(args[1])
	if err != nil || amount <= 0 {
		return fmt.Errorf("amount must be a positive integer, got %q", args[1])
	}

	if err := client.AddCredits(cmd.Context(), args[0], amount); err != nil {
		if errors.Is(err, api.ErrForbidden) {
			return fmt.Errorf("wrong API key")
		}
		return err
	}

	fmt.Printf("Added %d credits to %s.\n", amount, args[0])
	return nil
}
