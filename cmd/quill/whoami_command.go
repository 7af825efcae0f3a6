package main

import (
	"errors"
	"fmt"

	"quill/internal/domain"

	"github.com/spf13/cobra"
)

func newWhoamiCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the account behind the configured token",
		RunE: func(cmd *cobra.Command, args []string) error {
			// A locally-expired token gets a friendly hint instead of a 401.
			if err := ctx.client.CheckToken(); err != nil {
				if errors.Is(err, domain.ErrSessionExpired) {
					return fmt.Errorf("token is missing or expired, run `quill login`")
				}
				return err
			}
			user, err := ctx.client.Me(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", user.Username, user.Email)
			return nil
		},
	}
}
