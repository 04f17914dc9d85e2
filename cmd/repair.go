package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/transitlab/busplan/app"
	"github.com/transitlab/busplan/infra/logger"
	"github.com/transitlab/busplan/pkg/export"
)

var (
	repairOutPath    string
	repairReportPath string
)

var repairCmd = &cobra.Command{
	Use:   "repair <plan.csv>",
	Short: "Insert charging sessions to make an infeasible plan feasible",
	Args:  cobra.ExactArgs(1),
	RunE:  runRepair,
}

func init() {
	repairCmd.Flags().StringVarP(&repairOutPath, "out", "o", "busplan_repaired.csv", "write the repaired plan as CSV to this file")
	repairCmd.Flags().StringVar(&repairReportPath, "report", "", "write the full report as JSON to this file")
	rootCmd.AddCommand(repairCmd)
}

func runRepair(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logger.New("repair")

	sink, err := app.BuildSink(cfg.Metrics)
	if err != nil {
		return fmt.Errorf("metrics sink: %w", err)
	}

	events, diags, err := readPlanFile(args[0])
	if err != nil {
		return err
	}

	pipeline := app.New(cfg, log, sink)
	res := pipeline.Repair(events, diags)

	for _, d := range res.Diagnostics {
		log.Warnf("row %d: %s (%s)", d.Row, d.Reason, d.Field)
	}
	for _, o := range res.Outcome.Outcomes {
		switch {
		case o.Inserted == 0:
			fmt.Fprintf(cmd.OutOrStdout(), "Bus %s: already feasible, nothing inserted\n", o.Vehicle)
		case o.Repaired:
			fmt.Fprintf(cmd.OutOrStdout(), "Bus %s: %d charging session(s) inserted\n", o.Vehicle, o.Inserted)
		default:
			fmt.Fprintf(cmd.OutOrStdout(), "Bus %s: still infeasible after %d insertion(s), not enough slack to charge\n", o.Vehicle, o.Inserted)
		}
	}

	if err := writeFile(repairOutPath, func(f *os.File) error {
		return export.WritePlanCSV(f, export.DisplayOrder(res.Repaired), cfg.Timeline)
	}); err != nil {
		return fmt.Errorf("write repaired plan: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Repaired plan written to %s\n", repairOutPath)

	if repairReportPath != "" {
		if err := writeFile(repairReportPath, func(f *os.File) error {
			return export.WriteReportJSON(f, res.Report)
		}); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	return nil
}
