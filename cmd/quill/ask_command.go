package main

import (
	"fmt"
	"strings"

	"quill/internal/domain/models/workspace"

	"github.com/spf13/cobra"
)

func newAskCommand(ctx *commandContext) *cobra.Command {
	var folderID string
	var contextDocs []string
	var allDocs bool

	cmd := &cobra.Command{
		Use:   "ask <project-id> <question...>",
		Short: "Ask a question scoped to a project or folder",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.session.SelectProject(cmd.Context(), args[0]); err != nil {
				return err
			}
			if folderID != "" {
				if err := ctx.session.SelectFolder(folderID); err != nil {
					return err
				}
			}
			if allDocs {
				ctx.session.SelectAllDocuments()
			}
			for _, id := range contextDocs {
				ctx.session.ToggleContextItem(workspace.ItemRef{ID: id, Kind: workspace.ItemDocument})
			}

			answer, err := ctx.session.Ask(cmd.Context(), strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), answer)
			return nil
		},
	}

	cmd.Flags().StringVar(&folderID, "folder", "", "Scope the question to a folder")
	cmd.Flags().StringSliceVar(&contextDocs, "doc", nil, "Document ids to use as context (repeatable)")
	cmd.Flags().BoolVar(&allDocs, "all-docs", false, "Use every document in the project as context")

	return cmd
}
