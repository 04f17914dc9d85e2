package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/transitlab/busplan/app"
	"github.com/transitlab/busplan/core/model"
	"github.com/transitlab/busplan/core/timetable"
	"github.com/transitlab/busplan/infra/logger"
	"github.com/transitlab/busplan/pkg/export"
	"github.com/transitlab/busplan/planio"
)

var (
	checkTimetablePath string
	checkReportPath    string
	checkPlanOutPath   string
)

var checkCmd = &cobra.Command{
	Use:   "check <plan.csv>",
	Short: "Check a bus plan for overlaps and battery feasibility",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkTimetablePath, "timetable", "", "timetable csv to compare service-trip departures against")
	checkCmd.Flags().StringVar(&checkReportPath, "report", "", "write the full report as JSON to this file")
	checkCmd.Flags().StringVar(&checkPlanOutPath, "plan-out", "", "write the normalized, gap-filled plan as CSV to this file")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logger.New("check")

	sink, err := app.BuildSink(cfg.Metrics)
	if err != nil {
		return fmt.Errorf("metrics sink: %w", err)
	}

	events, diags, err := readPlanFile(args[0])
	if err != nil {
		return err
	}

	pipeline := app.New(cfg, log, sink)
	res := pipeline.Check(events, diags)

	for _, d := range res.Diagnostics {
		log.Warnf("row %d: %s (%s)", d.Row, d.Reason, d.Field)
	}
	for _, o := range res.Overlaps {
		fmt.Fprintf(cmd.OutOrStdout(), "Bus %s: events %d and %d overlap (%s-%s and %s-%s)\n",
			o.Vehicle, o.IndexA+1, o.IndexB+1,
			o.EventA.StartClock, o.EventA.EndClock,
			o.EventB.StartClock, o.EventB.EndClock)
	}
	for _, msg := range res.Report.Messages() {
		fmt.Fprintln(cmd.OutOrStdout(), msg)
	}

	if checkTimetablePath != "" {
		mismatches, err := compareTimetable(checkTimetablePath, res)
		if err != nil {
			return err
		}
		if len(mismatches) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "The bus plan corresponds to the timetable.")
		}
		for _, m := range mismatches {
			fmt.Fprintf(cmd.OutOrStdout(), "Bus %s: departure %s has no timetable entry\n", m.Vehicle, m.StartClock)
		}
	}

	if checkReportPath != "" {
		if err := writeFile(checkReportPath, func(f *os.File) error {
			return export.WriteReportJSON(f, res.Report)
		}); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	if checkPlanOutPath != "" {
		if err := writeFile(checkPlanOutPath, func(f *os.File) error {
			return export.WritePlanCSV(f, export.DisplayOrder(res.Groups), cfg.Timeline)
		}); err != nil {
			return fmt.Errorf("write plan: %w", err)
		}
	}
	return nil
}

func readPlanFile(path string) ([]model.Event, []model.Diagnostic, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open plan: %w", err)
	}
	defer f.Close()
	events, diags, err := planio.ReadPlan(f)
	if err != nil {
		return nil, nil, fmt.Errorf("read plan: %w", err)
	}
	return events, diags, nil
}

func compareTimetable(path string, res app.CheckResult) ([]timetable.Mismatch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open timetable: %w", err)
	}
	defer f.Close()
	departures, _, err := planio.ReadTimetable(f)
	if err != nil {
		return nil, fmt.Errorf("read timetable: %w", err)
	}
	return timetable.Compare(res.Groups.Flatten(), departures), nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return write(f)
}
