package commands

import (
	"context"
	"time"

	"github.com/Dan9191/finance-service/internal/models"
	"github.com/Dan9191/finance-service/internal/service"
	"github.com/spf13/cobra"
)

// Backend is the part of the insights service the CLI drives
type Backend interface {
	Insights(ctx context.Context, userID int64, opts service.Options) (*models.InsightsPayload, error)
	Forecast(ctx context.Context, userID int64, includeFuture bool) ([]models.ForecastHorizon, error)
	Mute(ctx context.Context, userID int64, insightID string, days int) (time.Time, error)
	Unmute(ctx context.Context, userID int64, insightID string) error
	Prune(ctx context.Context) (service.PruneResult, error)
}

// Provider builds the backend on first use, so that --help needs no database
type Provider func() (Backend, error)

// NewRoot returns the financectl command tree
func NewRoot(provide Provider) *cobra.Command {
	root := &cobra.Command{
		Use:           "financectl",
		Short:         "Finance insights CLI",
		Long:          "Command line interface for inspecting insights and forecasts and managing mutes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Bool("json", false, "print JSON instead of tables")

	root.AddCommand(
		insightsCmd(provide),
		forecastCmd(provide),
		muteCmd(provide),
		unmuteCmd(provide),
		pruneCmd(provide),
	)
	return root
}

func jsonOutput(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}
