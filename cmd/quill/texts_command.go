package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"quill/internal/domain/models/workspace"

	"github.com/spf13/cobra"
)

func newTextsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "texts",
		Short: "Manage rich-text notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newTextsListCommand(ctx))
	cmd.AddCommand(newTextsCreateCommand(ctx))
	cmd.AddCommand(newTextsEditCommand(ctx))
	cmd.AddCommand(newTextsDeleteCommand(ctx))
	cmd.AddCommand(newTextsShareCommand(ctx))
	cmd.AddCommand(newTextsSharesCommand(ctx))
	cmd.AddCommand(newTextsUnshareCommand(ctx))
	cmd.AddCommand(newTextsTranscribeCommand(ctx))

	return cmd
}

func newTextsListCommand(ctx *commandContext) *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List texts, optionally scoped to a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			texts, err := ctx.client.ListTexts(cmd.Context(), projectID)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(texts))
			for _, t := range texts {
				rows = append(rows, []string{t.ID, t.Title, t.UpdatedAt.Format("2006-01-02 15:04")})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Title", "Updated"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Only texts attached to this project")
	return cmd
}

func newTextsCreateCommand(ctx *commandContext) *cobra.Command {
	var fromStdin bool

	cmd := &cobra.Command{
		Use:   "create <project-id> <title>",
		Short: "Create a text in a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.session.SelectProject(cmd.Context(), args[0]); err != nil {
				return err
			}

			content := ""
			if fromStdin {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return err
				}
				content = string(data)
			}

			text, err := ctx.session.CreateText(cmd.Context(), args[1], content)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created text %s (%s)\n", text.Title, text.ID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "Read the initial content from stdin")
	return cmd
}

func newTextsEditCommand(ctx *commandContext) *cobra.Command {
	var title string
	var fromStdin bool

	cmd := &cobra.Command{
		Use:   "edit <project-id> <text-id>",
		Short: "Replace a text's title and/or content",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.session.SelectProject(cmd.Context(), args[0]); err != nil {
				return err
			}

			var current *workspace.UserText
			for _, t := range ctx.session.Texts() {
				if t.ID == args[1] {
					current = &t
					break
				}
			}
			if current == nil {
				return fmt.Errorf("text %s not found in project %s", args[1], args[0])
			}

			newTitle := current.Title
			if title != "" {
				newTitle = title
			}
			content := current.Content
			if fromStdin {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return err
				}
				content = string(data)
			}

			// The edit goes through the auto-save pipeline; the session close
			// in PersistentPostRun flushes it.
			if err := ctx.session.EditText(args[1], newTitle, content); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated text %s\n", args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title (unchanged when omitted)")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "Read the new content from stdin")
	return cmd
}

func newTextsShareCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "share <text-id> <email>",
		Short: "Share a text with a user by email",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.client.ShareText(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "shared text %s with %s\n", args[0], args[1])
			return nil
		},
	}
}

func newTextsSharesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "shares <text-id>",
		Short: "List users a text is shared with",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := ctx.client.ListTextShares(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(users))
			for _, u := range users {
				rows = append(rows, []string{u.ID, u.Email, u.SharedAt.Format("2006-01-02 15:04")})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Email", "Shared At"}, rows))
			return nil
		},
	}
}

func newTextsUnshareCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unshare <text-id> <user-id>",
		Short: "Revoke a user's access to a text",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.client.UnshareText(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "revoked access for %s\n", args[1])
			return nil
		},
	}
}

func newTextsTranscribeCommand(ctx *commandContext) *cobra.Command {
	var cursor int

	cmd := &cobra.Command{
		Use:   "transcribe <project-id> <text-id> <audio-file>",
		Short: "Transcribe an audio clip into a text",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.session.SelectProject(cmd.Context(), args[0]); err != nil {
				return err
			}
			if err := ctx.session.ToggleItem(workspace.ItemRef{ID: args[1], Kind: workspace.ItemText}); err != nil {
				return err
			}

			f, err := os.Open(args[2])
			if err != nil {
				return err
			}
			defer f.Close()

			transcript, err := ctx.session.InsertTranscript(cmd.Context(), filepath.Base(args[2]), f, cursor)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), transcript)
			return nil
		},
	}

	cmd.Flags().IntVar(&cursor, "at", 0, "Rune offset to insert the transcript at (clamped to the text length)")
	return cmd
}

func newTextsDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <project-id> <text-id>",
		Short: "Delete a text",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.session.SelectProject(cmd.Context(), args[0]); err != nil {
				return err
			}
			if err := ctx.session.DeleteText(cmd.Context(), args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted text %s\n", args[1])
			return nil
		},
	}
}
