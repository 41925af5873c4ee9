package commands

import (
	"github.com/Dan9191/finance-service/cmd/cli/output"
	"github.com/spf13/cobra"
)

func pruneCmd(provide Provider) *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove expired cache entries and mutes",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := provide()
			if err != nil {
				return err
			}
			res, err := b.Prune(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput(cmd) {
				return output.RenderJSON(cmd.OutOrStdout(), res)
			}
			output.RenderTable(cmd.OutOrStdout(), "Pruned", []string{"Kind", "Rows"}, [][]interface{}{
				{"cache entries", res.CacheEntries},
				{"dismissals", res.Dismissals},
			})
			return nil
		},
	}
}
