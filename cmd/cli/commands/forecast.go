package commands

import (
	"io"

	"github.com/Dan9191/finance-service/cmd/cli/output"
	"github.com/Dan9191/finance-service/internal/models"
	"github.com/spf13/cobra"
)

func forecastCmd(provide Provider) *cobra.Command {
	var userID int64
	var includeFuture bool

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Show projected balances for the configured horizons",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := provide()
			if err != nil {
				return err
			}
			horizons, err := b.Forecast(cmd.Context(), userID, includeFuture)
			if err != nil {
				return err
			}
			if jsonOutput(cmd) {
				return output.RenderJSON(cmd.OutOrStdout(), horizons)
			}
			renderForecast(cmd.OutOrStdout(), horizons)
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "user id")
	cmd.Flags().BoolVar(&includeFuture, "future", false, "include pending transactions")
	cmd.MarkFlagRequired("user")
	return cmd
}

func renderForecast(w io.Writer, horizons []models.ForecastHorizon) {
	output.RenderTable(w, "Forecast", []string{"Days", "Inflow", "Outflow", "Net", "Balance"}, horizonRows(horizons))
}
