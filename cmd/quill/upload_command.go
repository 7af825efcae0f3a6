package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newUploadCommand(ctx *commandContext) *cobra.Command {
	var folderID string

	cmd := &cobra.Command{
		Use:   "upload <project-id> <file>",
		Short: "Upload a document into a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.session.SelectProject(cmd.Context(), args[0]); err != nil {
				return err
			}
			if folderID != "" {
				if err := ctx.session.SelectFolder(folderID); err != nil {
					return err
				}
			}

			f, err := os.Open(args[1])
			if err != nil {
				return err
			}
			defer f.Close()

			info, err := f.Stat()
			if err != nil {
				return err
			}

			doc, err := ctx.session.UploadDocument(cmd.Context(), filepath.Base(args[1]), info.Size(), f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "uploaded %s (%s)\n", doc.Name, doc.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&folderID, "folder", "", "Upload into a folder instead of the project root")
	return cmd
}
