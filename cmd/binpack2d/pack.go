package main

import (
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"k8s.io/klog/v2"

	"github.com/piwi3910/binpack2d/internal/engine"
	"github.com/piwi3910/binpack2d/internal/export"
	"github.com/piwi3910/binpack2d/internal/model"
	"github.com/piwi3910/binpack2d/internal/project"
)

// runPack implements the pack subcommand.
func runPack(args []string, stdout io.Writer) error {
	var jf jobFlags
	var pdfPath, labelsPath, xlsxPath, dxfPath, out string
	fs := newFlagSet("pack", &jf, stdout)
	fs.StringVar(&pdfPath, "pdf", "", "write a PDF layout report")
	fs.StringVar(&labelsPath, "labels", "", "write a PDF label sheet")
	fs.StringVar(&xlsxPath, "xlsx", "", "write an Excel workbook")
	fs.StringVar(&dxfPath, "dxf", "", "write a DXF drawing")
	fs.StringVar(&out, "out", "", "write a JSON result snapshot")
	if err := fs.Parse(args); err != nil {
		return err
	}

	loaded, err := jf.loadJob(fs)
	if err != nil {
		return err
	}
	job := loaded.job
	for _, w := range loaded.warnings {
		fmt.Fprintf(stdout, "warning: %s\n", w)
	}

	result := engine.New(job.Settings).Optimize(job.Items, job.Bins)
	printResult(stdout, job, result)

	exports := []struct {
		path  string
		write func(string) error
	}{
		{pdfPath, func(p string) error { return export.ExportPDF(p, result, job.Settings) }},
		{labelsPath, func(p string) error { return export.ExportLabels(p, result) }},
		{xlsxPath, func(p string) error { return export.ExportExcel(p, result, job.Settings) }},
		{dxfPath, func(p string) error { return export.ExportDXF(p, result) }},
		{out, func(p string) error { return project.SaveResult(p, job.Name, job.Settings, result) }},
	}
	for _, e := range exports {
		if e.path == "" {
			continue
		}
		path := outputPath(loaded.config, e.path)
		if err := e.write(path); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "wrote %s\n", path)
	}

	if jf.jobPath != "" {
		if abs, err := filepath.Abs(jf.jobPath); err == nil {
			loaded.config.AddRecentJob(abs, project.MaxRecentJobs)
			if err := project.SaveAppConfig(jf.configPath, loaded.config); err != nil {
				klog.ErrorS(err, "Failed to update recent jobs", "config", jf.configPath)
			}
		}
	}
	return nil
}

// outputPath places bare file names in the configured output directory.
func outputPath(cfg model.AppConfig, path string) string {
	if cfg.OutputDir == "" || filepath.Dir(path) != "." || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(cfg.OutputDir, path)
}

func printResult(w io.Writer, job model.Job, result model.Result) {
	fmt.Fprintf(w, "Job: %s  (algorithm %s, rotation %s, sort %s, search %s)\n\n",
		job.Name, job.Settings.Algorithm, onOff(job.Settings.AllowRotate), job.Settings.Sort, job.Settings.Search)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "BIN\tITEM\tX\tY\tW\tH\tROTATED")
	for _, br := range result.Bins {
		for _, p := range br.Placements {
			fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d\t%s\n",
				br.BinID+1, p.Item.Label, p.X, p.Y, p.PlacedWidth(), p.PlacedHeight(), yesNo(p.Rotated))
		}
	}
	tw.Flush()

	fmt.Fprintln(w)
	for _, br := range result.Bins {
		fmt.Fprintf(w, "Bin %d (%s %dx%d): %d items, %.1f%% used\n",
			br.BinID+1, br.Bin.Label, br.Bin.Width, br.Bin.Height, len(br.Placements), br.Efficiency())
	}
	fmt.Fprintf(w, "Placed %d items in %d bins, %.1f%% overall efficiency\n",
		result.PlacedCount(), len(result.Bins), result.TotalEfficiency())

	if len(result.Unplaced) > 0 {
		fmt.Fprintf(w, "\nUnplaced (%d):\n", len(result.Unplaced))
		for _, it := range result.Unplaced {
			fmt.Fprintf(w, "  %s %dx%d\n", it.Label, it.Width, it.Height)
		}
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
