package main

import (
	"fmt"
	"io"

	"github.com/piwi3910/binpack2d/internal/model"
)

// runEstimate implements the estimate subcommand. Each distinct bin size is
// estimated separately.
func runEstimate(args []string, stdout io.Writer) error {
	var jf jobFlags
	fs := newFlagSet("estimate", &jf, stdout)
	if err := fs.Parse(args); err != nil {
		return err
	}

	loaded, err := jf.loadJob(fs)
	if err != nil {
		return err
	}

	seen := make(map[model.Rectangle]bool)
	for _, bin := range loaded.job.Bins {
		r := bin.Rect()
		if seen[r] {
			continue
		}
		seen[r] = true

		est := model.EstimateBins(loaded.job.Items, bin.Width, bin.Height)
		fmt.Fprintf(stdout, "Bin %s: item area %d, bin area %d, at least %d bins (%.2f exact)",
			r, est.TotalItemArea, est.BinArea, est.BinsNeededMin, est.BinsNeededExact)
		if est.Oversized > 0 {
			fmt.Fprintf(stdout, ", %d oversized items", est.Oversized)
		}
		fmt.Fprintln(stdout)
	}
	return nil
}

// runAlgorithms implements the algorithms subcommand.
func runAlgorithms(stdout io.Writer) {
	for _, a := range model.Algorithms() {
		fmt.Fprintln(stdout, a)
	}
}
