package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sashafierce98/TGPTaskflow/internal/model"
	"github.com/sashafierce98/TGPTaskflow/internal/session"
)

func notificationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notifications",
		Short: "List due-date notifications for your assigned cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if err := a.gate(cmd.Context(), session.ViewDashboard); err != nil {
				return err
			}

			notifications, err := a.client.Notifications(cmd.Context())
			if err != nil {
				a.session.Observe(err)
				return err
			}
			if a.json {
				return a.printJSON(notifications)
			}
			if len(notifications) == 0 {
				fmt.Fprintln(a.out, "Nothing due.")
				return nil
			}
			for _, n := range notifications {
				fmt.Fprintf(a.out, "[%s] %s\n", n.Type, n.Message)
			}
			return nil
		},
	}
}

func adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "User management and analytics (admins only)",
	}
	cmd.AddCommand(adminUsersCmd())
	cmd.AddCommand(adminApproveCmd())
	cmd.AddCommand(adminRoleCmd())
	cmd.AddCommand(adminDeleteCmd())
	cmd.AddCommand(adminAnalyticsCmd())
	return cmd
}

// adminApp builds the app and requires an admin session.
func adminApp(cmd *cobra.Command) (*app, error) {
	a, err := newApp(cmd)
	if err != nil {
		return nil, err
	}
	if err := a.gate(cmd.Context(), session.ViewAdmin); err != nil {
		return nil, err
	}
	return a, nil
}

func adminUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List all users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := adminApp(cmd)
			if err != nil {
				return err
			}
			users, err := a.client.ListUsers(cmd.Context())
			if err != nil {
				a.session.Observe(err)
				return err
			}
			if a.json {
				return a.printJSON(users)
			}

			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tEMAIL\tNAME\tROLE\tAPPROVED")
			for _, u := range users {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\n", u.ID, u.Email, u.Name, u.Role, u.Approved)
			}
			return tw.Flush()
		},
	}
}

func adminApproveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "approve <user-id>",
		Short: "Approve a pending user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := adminApp(cmd)
			if err != nil {
				return err
			}
			userID, err := parseID(args[0], "user")
			if err != nil {
				return err
			}
			if err := a.client.ApproveUser(cmd.Context(), userID); err != nil {
				a.session.Observe(err)
				return err
			}
			a.Success("User approved")
			return nil
		},
	}
}

func adminRoleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "role <user-id>",
		Short: "Change a user's role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := adminApp(cmd)
			if err != nil {
				return err
			}
			userID, err := parseID(args[0], "user")
			if err != nil {
				return err
			}
			role, _ := cmd.Flags().GetString("role")
			if err := a.client.SetRole(cmd.Context(), userID, model.Role(role)); err != nil {
				a.session.Observe(err)
				return err
			}
			a.Success(fmt.Sprintf("Role set to %s", role))
			return nil
		},
	}
	cmd.Flags().String("role", "", "user or admin (required)")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}

func adminDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <user-id>",
		Short: "Delete a user and revoke their sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := adminApp(cmd)
			if err != nil {
				return err
			}
			userID, err := parseID(args[0], "user")
			if err != nil {
				return err
			}
			yes, _ := cmd.Flags().GetBool("yes")
			if !yes && !a.confirm(fmt.Sprintf("Delete user %s?", userID)) {
				return nil
			}
			if err := a.client.DeleteUser(cmd.Context(), userID); err != nil {
				a.session.Observe(err)
				return err
			}
			a.Success("User deleted")
			return nil
		},
	}
	cmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
	return cmd
}

func adminAnalyticsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analytics",
		Short: "Show user, board and card totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := adminApp(cmd)
			if err != nil {
				return err
			}
			stats, err := a.client.Analytics(cmd.Context())
			if err != nil {
				a.session.Observe(err)
				return err
			}
			if a.json {
				return a.printJSON(stats)
			}
			fmt.Fprintf(a.out, "Users:  %d\nBoards: %d\nCards:  %d\n", stats.TotalUsers, stats.TotalBoards, stats.TotalCards)
			return nil
		},
	}
}
