package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCommand(ctx *commandContext) *cobra.Command {
	var username string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Exchange credentials for a bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			auth, err := ctx.client.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			// The token is printed so the user can export it; quill itself
			// keeps it in memory only.
			fmt.Fprintf(cmd.OutOrStdout(), "export QUILL_TOKEN=%s\n", auth.AccessToken)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
