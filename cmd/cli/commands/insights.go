package commands

import (
	"fmt"

	"github.com/Dan9191/finance-service/cmd/cli/output"
	"github.com/Dan9191/finance-service/internal/models"
	"github.com/Dan9191/finance-service/internal/service"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func insightsCmd(provide Provider) *cobra.Command {
	var userID int64
	var opts service.Options

	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Show KPIs, insights and forecast for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := provide()
			if err != nil {
				return err
			}
			p, err := b.Insights(cmd.Context(), userID, opts)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if jsonOutput(cmd) {
				return output.RenderJSON(w, p)
			}

			savings := "n/a"
			if p.KPIs.SavingsRate != nil {
				savings = fmt.Sprintf("%.1f%%", *p.KPIs.SavingsRate*100)
			}
			output.RenderTable(w, "KPIs "+p.Meta.Month, []string{"Metric", "Value"}, [][]interface{}{
				{"Income", money(p.KPIs.Income)},
				{"Expense", money(p.KPIs.Expense)},
				{"Net savings", money(p.KPIs.NetSavings)},
				{"Savings rate", savings},
				{"Daily avg expense", money(p.KPIs.RunRate.DailyAvgExpense)},
				{"Projected expense", money(p.KPIs.RunRate.ProjectedExpense)},
				{"Day", fmt.Sprintf("%d/%d", p.KPIs.RunRate.DaysElapsed, p.KPIs.RunRate.DaysInMonth)},
			})

			rows := make([][]interface{}, 0, len(p.Insights))
			for _, in := range p.Insights {
				rows = append(rows, []interface{}{in.ID, in.Severity, in.Title, in.Body})
			}
			output.RenderTable(w, "Insights", []string{"ID", "Severity", "Title", "Detail"}, rows)
			renderForecast(w, p.Meta.Forecast)
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "user id")
	cmd.Flags().BoolVar(&opts.IncludeFuture, "future", false, "include pending transactions in the forecast")
	cmd.Flags().BoolVar(&opts.Fast, "fast", false, "skip per-category and per-schedule rules")
	cmd.MarkFlagRequired("user")
	return cmd
}

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func horizonRows(horizons []models.ForecastHorizon) [][]interface{} {
	rows := make([][]interface{}, 0, len(horizons))
	for _, h := range horizons {
		rows = append(rows, []interface{}{
			h.Days, money(h.ProjectedInflow), money(h.ProjectedOutflow), money(h.Net), money(h.ProjectedBalance),
		})
	}
	return rows
}
