package cmd

import (
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the most recent shortened URLs",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, board, err := a.newService(cmd.Context())
			if err != nil {
				return err
			}
			table, err := svc.LoadURLs(cmd.Context())
			return a.finish(cmd, board, &table, err)
		},
	}
}
