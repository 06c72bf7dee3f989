package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sashafierce98/TGPTaskflow/internal/api"
)

func askCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Post a question to the board's Questions column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, store, err := openBoard(cmd)
			if err != nil {
				return err
			}
			card, err := store.AskQuestion(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printCard(a, card)
		},
	}
	cmd.Flags().String("board", "", "Board ID (required)")
	_ = cmd.MarkFlagRequired("board")
	return cmd
}

func threadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "thread <question-id>",
		Short: "Show a question and its answers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, store, err := openBoard(cmd)
			if err != nil {
				return err
			}
			cardID, err := parseID(args[0], "question")
			if err != nil {
				return err
			}
			thread, err := store.OpenThread(cmd.Context(), cardID)
			if err != nil {
				return err
			}
			return printThread(a, thread.Question().Title, thread.Comments())
		},
	}
	cmd.Flags().String("board", "", "Board ID (required)")
	_ = cmd.MarkFlagRequired("board")
	return cmd
}

func answerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "answer <question-id> <answer>",
		Short: "Answer a question",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, store, err := openBoard(cmd)
			if err != nil {
				return err
			}
			cardID, err := parseID(args[0], "question")
			if err != nil {
				return err
			}
			thread, err := store.OpenThread(cmd.Context(), cardID)
			if err != nil {
				return err
			}
			if _, err := thread.Answer(cmd.Context(), args[1]); err != nil {
				return err
			}
			return printThread(a, thread.Question().Title, thread.Comments())
		},
	}
	cmd.Flags().String("board", "", "Board ID (required)")
	_ = cmd.MarkFlagRequired("board")
	return cmd
}

func printThread(a *app, question string, answers []api.Comment) error {
	if a.json {
		return a.printJSON(map[string]any{"question": question, "answers": answers})
	}
	fmt.Fprintf(a.out, "Q: %s\n", question)
	if len(answers) == 0 {
		fmt.Fprintln(a.out, "  (no answers yet)")
	}
	for _, answer := range answers {
		fmt.Fprintf(a.out, "  %s  %s\n", answer.CreatedAt.Format("2006-01-02 15:04"), answer.Text)
	}
	return nil
}
