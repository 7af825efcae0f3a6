package main

import (
	"fmt"
	"io"
	"strings"

	"quill/internal/domain/models/workspace"

	"github.com/spf13/cobra"
)

func newTreeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tree <project-id>",
		Short: "Print a project's folder/document/text tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.session.SelectProject(cmd.Context(), args[0]); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ctx.session.Project().Name)

			for _, item := range ctx.session.AllItems() {
				printItem(out, item, 1)
			}
			for _, node := range ctx.session.Tree() {
				printNode(out, node, 1)
			}
			return nil
		},
	}
}

func printNode(out io.Writer, node *workspace.ContentTreeNode, depth int) {
	fmt.Fprintf(out, "%s%s/\n", indent(depth), node.Folder.Name)
	for _, doc := range node.Documents {
		fmt.Fprintf(out, "%s%s\n", indent(depth+1), doc.Name)
	}
	for _, text := range node.Texts {
		fmt.Fprintf(out, "%s%s (text)\n", indent(depth+1), text.Title)
	}
	for _, child := range node.Folders {
		printNode(out, child, depth+1)
	}
}

func printItem(out io.Writer, item workspace.Item, depth int) {
	switch item.Kind {
	case workspace.ItemDocument:
		fmt.Fprintf(out, "%s%s\n", indent(depth), item.Document.Name)
	case workspace.ItemText:
		fmt.Fprintf(out, "%s%s (text)\n", indent(depth), item.Text.Title)
	}
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}
