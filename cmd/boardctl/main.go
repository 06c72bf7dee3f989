package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/sashafierce98/TGPTaskflow/internal/logging"
)

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "boardctl",
		Short:         "boardctl - drive TGP Taskflow boards from the terminal",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level, _ := cmd.Flags().GetString("log-level")
			logging.Init(cmd.ErrOrStderr(), level, "text")
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("server", "", "API base URL (default from profile, then "+defaultServer+")")
	flags.String("profile", defaultProfilePath(), "Profile file holding the server URL and session")
	flags.Bool("json", false, "Output in JSON format")
	flags.String("log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(loginCmd())
	cmd.AddCommand(logoutCmd())
	cmd.AddCommand(whoamiCmd())
	cmd.AddCommand(boardsCmd())
	cmd.AddCommand(boardCmd())
	cmd.AddCommand(cardCmd())
	cmd.AddCommand(askCmd())
	cmd.AddCommand(threadCmd())
	cmd.AddCommand(answerCmd())
	cmd.AddCommand(notificationsCmd())
	cmd.AddCommand(adminCmd())
	return cmd
}

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
