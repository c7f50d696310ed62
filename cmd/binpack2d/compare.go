package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/piwi3910/binpack2d/internal/engine"
)

// runCompare implements the compare subcommand.
func runCompare(args []string, stdout io.Writer) error {
	var jf jobFlags
	fs := newFlagSet("compare", &jf, stdout)
	if err := fs.Parse(args); err != nil {
		return err
	}

	loaded, err := jf.loadJob(fs)
	if err != nil {
		return err
	}
	job := loaded.job

	scenarios := engine.BuildDefaultScenarios(job.Settings)
	results, err := engine.CompareScenarios(context.Background(), scenarios, job.Items, job.Bins)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SCENARIO\tALGORITHM\tROTATION\tBINS\tPLACED\tUNPLACED\tWASTE %")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%.1f\n",
			r.Scenario.Name, r.Scenario.Settings.Algorithm, onOff(r.Scenario.Settings.AllowRotate),
			r.BinsUsed, r.PlacedCount, r.UnplacedCount, r.WastePercent)
	}
	return tw.Flush()
}
