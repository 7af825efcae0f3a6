package main

import (
	"errors"
	"fmt"
	"strings"

	"quill/internal/api"
	"quill/internal/config"
	"quill/internal/domain"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/cobra"
)

func newProjectsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newProjectsListCommand(ctx))
	cmd.AddCommand(newProjectsCreateCommand(ctx))
	cmd.AddCommand(newProjectsDeleteCommand(ctx))
	cmd.AddCommand(newProjectsShareCommand(ctx))

	return cmd
}

func newProjectsListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects owned by or shared with you",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := ctx.client.ListProjects(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(projects))
			for _, p := range projects {
				shared := ""
				if p.IsShared {
					shared = "yes"
				}
				rows = append(rows, []string{p.ID, p.Name, p.Description, shared})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Name", "Description", "Shared"}, rows))
			return nil
		},
	}
}

func newProjectsCreateCommand(ctx *commandContext) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if err := validation.Validate(name,
				validation.Required,
				validation.Length(1, config.MaxProjectNameLength),
			); err != nil {
				return fmt.Errorf("%w: name: %v", domain.ErrValidation, err)
			}

			project, err := ctx.client.CreateProject(cmd.Context(), &api.CreateProjectRequest{
				Name:        name,
				Description: description,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created project %s (%s)\n", project.Name, project.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Project description")
	return cmd
}

func newProjectsDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <project-id>",
		Short: "Delete a project and everything in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := ctx.session.DeleteProject(cmd.Context(), args[0])
			if errors.Is(err, domain.ErrNotFound) {
				// Already gone; the session has dropped it locally too.
				fmt.Fprintf(cmd.OutOrStdout(), "project %s already deleted\n", args[0])
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted project %s\n", args[0])
			return nil
		},
	}
}

func newProjectsShareCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share <project-id> <email>",
		Short: "Share a project with a user by email",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.client.ShareProject(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "shared project %s with %s\n", args[0], args[1])
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list <project-id>",
		Short: "List users a project is shared with",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := ctx.client.ListProjectShares(cmd.Context(), args[0])
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
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "revoke <project-id> <user-id>",
		Short: "Revoke a user's access to a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.client.UnshareProject(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "revoked access for %s\n", args[1])
			return nil
		},
	})

	return cmd
}
