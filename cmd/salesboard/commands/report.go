package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"salesboard/internal/report"
	"salesboard/internal/sheets"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	reportMonth       string
	reportSalesperson string
	reportPolicy      string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render one report to stdout as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		classifier, err := report.LoadClassifier(cfg.RulesPath)
		if err != nil {
			return err
		}

		var registry, targets *sheets.Table
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			registry, err = sheetsCl.FetchTable(gctx, cfg.RegistryWorksheet)
			return err
		})
		g.Go(func() error {
			var err error
			targets, err = sheetsCl.FetchTable(gctx, cfg.TargetsWorksheet)
			return err
		})
		if err := g.Wait(); err != nil {
			return fmt.Errorf("fetch source tables: %w", err)
		}

		month := reportMonth
		if month == "" {
			month = report.PeriodKey(time.Now())
			log.Info().Str("month", month).Msg("No month selected, defaulting to current")
		}

		policy := cfg.DefaultPolicy
		if reportPolicy != "" {
			policy = report.ParsePolicy(reportPolicy)
		}

		metrics, err := report.Generate(registry, targets, report.Options{
			PeriodKey:   month,
			Salesperson: reportSalesperson,
			Policy:      policy,
			DayFirst:    cfg.DayFirst,
			Classifier:  classifier,
		})
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(metrics)
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportMonth, "month", "", "period to report on (YYYY-MM, default: current month)")
	reportCmd.Flags().StringVar(&reportSalesperson, "salesperson", report.SalespersonAll, "salesperson filter")
	reportCmd.Flags().StringVar(&reportPolicy, "policy", "", "reduction policy (latest_per_entity | latest_report_date)")
	rootCmd.AddCommand(reportCmd)
}
