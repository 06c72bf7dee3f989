package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sashafierce98/TGPTaskflow/internal/api"
	"github.com/sashafierce98/TGPTaskflow/internal/boardstate"
	"github.com/sashafierce98/TGPTaskflow/internal/session"
)

func boardsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "boards",
		Short: "List boards",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if err := a.gate(cmd.Context(), session.ViewDashboard); err != nil {
				return err
			}

			boards, err := a.client.ListBoards(cmd.Context())
			if err != nil {
				a.session.Observe(err)
				return err
			}
			if a.json {
				return a.printJSON(boards)
			}

			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION")
			for _, b := range boards {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", b.ID, b.Name, b.Description)
			}
			return tw.Flush()
		},
	}
}

func boardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Manage a board",
	}
	cmd.AddCommand(boardCreateCmd())
	cmd.AddCommand(boardShowCmd())
	cmd.AddCommand(boardDeleteCmd())
	return cmd
}

func boardCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a board with the default columns",
		Long: `Create a board. Every board starts with Backlog, To Do, In Progress,
Done and Questions.

Examples:
  boardctl board create --name="Line A"
  boardctl board create --name="Line B" --todo-limit=10 --wip-limit=3
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if err := a.gate(cmd.Context(), session.ViewDashboard); err != nil {
				return err
			}

			name, _ := cmd.Flags().GetString("name")
			description, _ := cmd.Flags().GetString("description")
			req := api.CreateBoardRequest{Name: name, Description: description}
			if cmd.Flags().Changed("todo-limit") || cmd.Flags().Changed("wip-limit") {
				req.CustomLimits = &api.CustomLimits{}
				if cmd.Flags().Changed("todo-limit") {
					v, _ := cmd.Flags().GetInt("todo-limit")
					req.CustomLimits.TodoLimit = &v
				}
				if cmd.Flags().Changed("wip-limit") {
					v, _ := cmd.Flags().GetInt("wip-limit")
					req.CustomLimits.WIPLimit = &v
				}
			}

			board, err := a.client.CreateBoard(cmd.Context(), req)
			if err != nil {
				a.session.Observe(err)
				a.Error("Failed to create board")
				return err
			}
			if a.json {
				return a.printJSON(board)
			}
			a.Success("Board created")
			fmt.Fprintf(a.out, "%s\n", board.ID)
			return nil
		},
	}
	cmd.Flags().String("name", "", "Board name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().String("description", "", "Board description")
	cmd.Flags().Int("todo-limit", 15, "WIP limit of To Do")
	cmd.Flags().Int("wip-limit", 5, "WIP limit of In Progress")
	return cmd
}

func boardShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <board-id>",
		Short: "Show a board column by column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			boardID, err := parseID(args[0], "board")
			if err != nil {
				return err
			}
			if err := a.gate(cmd.Context(), session.ViewDashboard); err != nil {
				return err
			}

			store, err := a.board(cmd.Context(), boardID)
			if err != nil {
				return err
			}
			if a.json {
				agg, _ := store.Snapshot()
				return a.printJSON(agg)
			}
			agg, _ := store.Snapshot()
			fmt.Fprintf(a.out, "%s\n%s\n\n", agg.Board.Name, agg.Board.Description)
			for _, view := range store.View() {
				printColumn(a, view)
			}
			return nil
		},
	}
}

func printColumn(a *app, view boardstate.ColumnView) {
	header := fmt.Sprintf("%s (%d", view.Column.Name, len(view.Cards))
	if view.Column.WIPLimit != nil {
		header += fmt.Sprintf("/%d", *view.Column.WIPLimit)
	}
	header += ")"
	if view.WIPReached() {
		header += " [WIP limit reached]"
	}
	fmt.Fprintf(a.out, "%s  %s\n", header, view.Column.ID)

	for _, card := range view.Cards {
		line := fmt.Sprintf("  - %s  [%s]", card.Title, card.Priority)
		if card.DueDate != nil {
			line += " due " + *card.DueDate
		}
		if card.AnswerCount != nil {
			line += fmt.Sprintf(" %d answer(s)", *card.AnswerCount)
		}
		fmt.Fprintf(a.out, "%s  %s\n", line, card.ID)
	}
	fmt.Fprintln(a.out, strings.Repeat("-", 40))
}

func boardDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <board-id>",
		Short: "Delete a board and everything on it (owner only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			boardID, err := parseID(args[0], "board")
			if err != nil {
				return err
			}
			if err := a.gate(cmd.Context(), session.ViewDashboard); err != nil {
				return err
			}

			yes, _ := cmd.Flags().GetBool("yes")
			if !yes && !a.confirm("Delete this board with all its columns and cards?") {
				return boardstate.ErrNotConfirmed
			}
			if err := a.client.DeleteBoard(cmd.Context(), boardID); err != nil {
				a.session.Observe(err)
				a.Error("Failed to delete board")
				return err
			}
			a.Success("Board deleted")
			return nil
		},
	}
	cmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
	return cmd
}
