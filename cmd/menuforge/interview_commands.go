package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"menuforge/internal/session"
)

func newInterviewCommand(ctx *commandContext) *cobra.Command {
	interviewCmd := &cobra.Command{
		Use:   "interview",
		Short: "Capture the owner interview behind the narrative",
	}

	interviewCmd.AddCommand(newInterviewListCommand(ctx))
	interviewCmd.AddCommand(newInterviewAnswerCommand(ctx))

	return interviewCmd
}

func newInterviewListCommand(ctx *commandContext) *cobra.Command {
	var full bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the interview questions and current answers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withWorkspace(cmd.Context(), func(ws *workspace) error {
				rec := ws.store.Record()
				rows := make([][]string, 0, session.InterviewQuestionCount)
				for _, q := range session.Questions() {
					answer := rec.InterviewAnswers[q.ID]
					if !full {
						answer = truncate(answer, 40)
					}
					rows = append(rows, []string{q.ID, q.Topic, answer})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Topic", "Answer"}, rows, nil))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "Show full answers without truncation")
	return cmd
}

func newInterviewAnswerCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "answer <question-id> <text>",
		Short: "Record the answer to one interview question",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			questionID := args[0]
			q, ok := session.QuestionByID(questionID)
			if !ok {
				return fmt.Errorf("unknown question %q (use `menuforge interview list`)", questionID)
			}
			answer := strings.Join(args[1:], " ")
			return ctx.withWorkspace(cmd.Context(), func(ws *workspace) error {
				if err := ws.store.SetInterviewAnswer(questionID, answer); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Recorded answer for %s (%s)\n", questionID, q.Topic)
				return nil
			})
		},
	}
}
