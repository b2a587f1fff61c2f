package cmd

import (
	"github.com/spf13/cobra"

	"go-url-admin/types"
)

func newUpdateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "update <id> <short-url> <new-url>",
		Short:   "Point an existing short URL at a new destination",
		Example: "  urladmin update 42 aB3dE6gH https://example.org/new",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			svc, board, err := a.newService(cmd.Context())
			if err != nil {
				return err
			}

			var session types.EditSession
			session.Open(id, "", args[1])
			out, err := svc.UpdateURL(cmd.Context(), &session, args[2])
			return a.finish(cmd, board, out.Table, err)
		},
	}
}
