package cmd

import (
	"github.com/spf13/cobra"
)

func newShortenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "shorten <url>",
		Short:   "Shorten a URL and print the refreshed list",
		Example: "  urladmin shorten https://example.com/a/long/path",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, board, err := a.newService(cmd.Context())
			if err != nil {
				return err
			}
			out, err := svc.ShortenURL(cmd.Context(), args[0])
			return a.finish(cmd, board, out.Table, err)
		},
	}
}
