package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sashafierce98/TGPTaskflow/internal/api"
	"github.com/sashafierce98/TGPTaskflow/internal/boardstate"
	"github.com/sashafierce98/TGPTaskflow/internal/model"
	"github.com/sashafierce98/TGPTaskflow/internal/session"
)

func cardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Manage cards on a board",
	}
	cmd.PersistentFlags().String("board", "", "Board ID (required)")
	_ = cmd.MarkPersistentFlagRequired("board")

	cmd.AddCommand(cardAddCmd())
	cmd.AddCommand(cardEditCmd())
	cmd.AddCommand(cardMoveCmd())
	cmd.AddCommand(cardDeleteCmd())
	return cmd
}

// openBoard gates the session and loads the board named by --board.
func openBoard(cmd *cobra.Command) (*app, *boardstate.Store, error) {
	a, err := newApp(cmd)
	if err != nil {
		return nil, nil, err
	}
	raw, _ := cmd.Flags().GetString("board")
	boardID, err := parseID(raw, "board")
	if err != nil {
		return nil, nil, err
	}
	if err := a.gate(cmd.Context(), session.ViewDashboard); err != nil {
		return nil, nil, err
	}
	store, err := a.board(cmd.Context(), boardID)
	if err != nil {
		return nil, nil, err
	}
	return a, store, nil
}

func cardAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a card to a column",
		Long: `Add a card to a standard column. Full columns and the Questions column
refuse new cards; use "boardctl ask" for questions.

Examples:
  boardctl card add --board=<id> --column=<id> --title="Calibrate die"
  boardctl card add --board=<id> --column=<id> --title="Ship pallet" --priority=high --due=2026-03-14
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, store, err := openBoard(cmd)
			if err != nil {
				return err
			}
			rawColumn, _ := cmd.Flags().GetString("column")
			columnID, err := parseID(rawColumn, "column")
			if err != nil {
				return err
			}

			title, _ := cmd.Flags().GetString("title")
			description, _ := cmd.Flags().GetString("description")
			priority, _ := cmd.Flags().GetString("priority")
			due, _ := cmd.Flags().GetString("due")
			assignee, _ := cmd.Flags().GetString("assignee")

			card, err := store.AddCard(cmd.Context(), columnID, boardstate.CardDraft{
				Title:       title,
				Description: description,
				Priority:    model.Priority(priority),
				DueDate:     due,
				AssignedTo:  assignee,
			})
			if err != nil {
				return err
			}
			return printCard(a, card)
		},
	}
	cmd.Flags().String("column", "", "Column ID (required)")
	_ = cmd.MarkFlagRequired("column")
	cmd.Flags().String("title", "", "Card title")
	cmd.Flags().String("description", "", "Card description")
	cmd.Flags().String("priority", "", "low, medium or high (default medium)")
	cmd.Flags().String("due", "", "Due date, YYYY-MM-DD")
	cmd.Flags().String("assignee", "", "Assignee user ID")
	return cmd
}

func cardEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <card-id>",
		Short: "Edit a card; only the given flags change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, store, err := openBoard(cmd)
			if err != nil {
				return err
			}
			cardID, err := parseID(args[0], "card")
			if err != nil {
				return err
			}

			var edit boardstate.CardEdit
			flags := cmd.Flags()
			if flags.Changed("title") {
				v, _ := flags.GetString("title")
				edit.Title = &v
			}
			if flags.Changed("description") {
				v, _ := flags.GetString("description")
				edit.Description = &v
			}
			if flags.Changed("priority") {
				v, _ := flags.GetString("priority")
				p := model.Priority(v)
				edit.Priority = &p
			}
			if flags.Changed("due") {
				v, _ := flags.GetString("due")
				edit.DueDate = &v
			}
			if flags.Changed("assignee") {
				v, _ := flags.GetString("assignee")
				edit.AssignedTo = &v
			}
			if flags.Changed("column") {
				v, _ := flags.GetString("column")
				columnID, err := parseID(v, "column")
				if err != nil {
					return err
				}
				edit.ColumnID = &columnID
			}

			card, err := store.UpdateCard(cmd.Context(), cardID, edit)
			if err != nil {
				return err
			}
			return printCard(a, card)
		},
	}
	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().String("priority", "", "low, medium or high")
	cmd.Flags().String("due", "", "Due date, YYYY-MM-DD; empty clears it")
	cmd.Flags().String("assignee", "", "Assignee user ID; empty unassigns")
	cmd.Flags().String("column", "", "Move to this column")
	return cmd
}

func cardMoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <card-id>",
		Short: "Move a card to another column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, store, err := openBoard(cmd)
			if err != nil {
				return err
			}
			cardID, err := parseID(args[0], "card")
			if err != nil {
				return err
			}
			rawTo, _ := cmd.Flags().GetString("to")
			to, err := parseID(rawTo, "column")
			if err != nil {
				return err
			}
			index, _ := cmd.Flags().GetInt("index")

			from, err := locate(store, cardID)
			if err != nil {
				return err
			}
			outcome, err := store.Move(cmd.Context(), boardstate.Drag{
				CardID: cardID,
				From:   from,
				To:     &boardstate.Location{ColumnID: to, Index: index},
			})
			if a.json {
				if jsonErr := a.printJSON(map[string]any{"state": outcome.State.String(), "path": outcome.Path}); jsonErr != nil {
					return jsonErr
				}
			} else if err == nil {
				fmt.Fprintf(a.out, "Move %s\n", outcome.State)
			}
			return err
		},
	}
	cmd.Flags().String("to", "", "Destination column ID (required)")
	_ = cmd.MarkFlagRequired("to")
	cmd.Flags().Int("index", 0, "Position in the destination column (not kept by the server)")
	return cmd
}

// locate finds where a card currently sits.
func locate(store *boardstate.Store, cardID uuid.UUID) (boardstate.Location, error) {
	for _, view := range store.View() {
		for i, card := range view.Cards {
			if card.ID == cardID {
				return boardstate.Location{ColumnID: view.Column.ID, Index: i}, nil
			}
		}
	}
	return boardstate.Location{}, boardstate.ErrUnknownCard
}

func cardDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <card-id>",
		Short: "Delete a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, store, err := openBoard(cmd)
			if err != nil {
				return err
			}
			cardID, err := parseID(args[0], "card")
			if err != nil {
				return err
			}
			yes, _ := cmd.Flags().GetBool("yes")

			return store.DeleteCard(cmd.Context(), cardID, func(card api.Card) bool {
				return yes || a.confirm(fmt.Sprintf("Delete card '%s'?", card.Title))
			})
		},
	}
	cmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
	return cmd
}

func printCard(a *app, card *api.Card) error {
	if a.json {
		return a.printJSON(card)
	}
	fmt.Fprintf(a.out, "%s\n", card.ID)
	return nil
}
