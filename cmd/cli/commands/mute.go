package commands

import (
	"fmt"
	"time"

	"github.com/Dan9191/finance-service/internal/service"
	"github.com/spf13/cobra"
)

func muteCmd(provide Provider) *cobra.Command {
	var userID int64
	var insightID string
	var days int

	cmd := &cobra.Command{
		Use:   "mute",
		Short: "Hide an insight for a number of days",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := provide()
			if err != nil {
				return err
			}
			until, err := b.Mute(cmd.Context(), userID, insightID, days)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Insight %s muted for user %d until %s\n", insightID, userID, until.Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "user id")
	cmd.Flags().StringVar(&insightID, "insight", "", "insight id, e.g. run-rate-risk")
	cmd.Flags().IntVar(&days, "days", service.DefaultMuteDays, "mute duration in days")
	cmd.MarkFlagRequired("user")
	cmd.MarkFlagRequired("insight")
	return cmd
}

func unmuteCmd(provide Provider) *cobra.Command {
	var userID int64
	var insightID string

	cmd := &cobra.Command{
		Use:   "unmute",
		Short: "Show a muted insight again",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := provide()
			if err != nil {
				return err
			}
			if err := b.Unmute(cmd.Context(), userID, insightID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Insight %s unmuted for user %d\n", insightID, userID)
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "user id")
	cmd.Flags().StringVar(&insightID, "insight", "", "insight id")
	cmd.MarkFlagRequired("user")
	cmd.MarkFlagRequired("insight")
	return cmd
}
