package main

import (
	"context"
	"fmt"
	"time"

	"quill/internal/summarize"

	"github.com/spf13/cobra"
)

func newSummarizeCommand(ctx *commandContext) *cobra.Command {
	var folderID string

	cmd := &cobra.Command{
		Use:   "summarize <project-id>",
		Short: "Summarize a project or folder and wait for the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.session.SelectProject(cmd.Context(), args[0]); err != nil {
				return err
			}
			if folderID != "" {
				if err := ctx.session.SelectFolder(folderID); err != nil {
					return err
				}
			}
			if err := ctx.session.StartSummarize(cmd.Context()); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			lastLine := ""
			ticker := time.NewTicker(500 * time.Millisecond)
			defer ticker.Stop()

			for {
				select {
				case <-cmd.Context().Done():
					// Ctrl-C: the command context is already cancelled, so the
					// best-effort remote cancel gets a short-lived context of its own.
					cancelCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					ctx.session.CancelSummarize(cancelCtx)
					cancel()
					fmt.Fprintln(out, "cancelled")
					return nil

				case <-ticker.C:
					state, line := ctx.session.SummarizeStatus()
					if line != lastLine && state == summarize.StatePolling {
						fmt.Fprintln(out, line)
						lastLine = line
					}
					switch state {
					case summarize.StateCompleted:
						fmt.Fprintf(out, "summary ready: %s\n", ctx.session.SummarizeResult())
						return nil
					case summarize.StateErrored:
						return fmt.Errorf("summarization failed: %s", ctx.session.SummarizeError())
					case summarize.StateCancelled:
						fmt.Fprintln(out, "cancelled")
						return nil
					}
				}
			}
		},
	}

	cmd.Flags().StringVar(&folderID, "folder", "", "Summarize a single folder instead of the whole project")
	return cmd
}
