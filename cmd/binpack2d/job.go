package main

import (
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"k8s.io/klog/v2"

	"github.com/piwi3910/binpack2d/internal/importer"
	"github.com/piwi3910/binpack2d/internal/model"
	"github.com/piwi3910/binpack2d/internal/project"
)

// jobFlags holds the flags shared by every command that packs a job.
type jobFlags struct {
	jobPath    string
	itemsPath  string
	bins       []model.Bin
	algorithm  string
	rotate     bool
	sort       string
	search     string
	seed       int64
	configPath string
}

func (f *jobFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.jobPath, "job", "", "job file (.yaml, .yml or .json)")
	fs.StringVar(&f.itemsPath, "items", "", "item list (.csv, .xlsx or .dxf)")
	fs.Func("bin", "bin size and count as WxH[xN], repeatable", func(s string) error {
		bin, err := parseBinSpec(s)
		if err != nil {
			return err
		}
		f.bins = append(f.bins, bin)
		return nil
	})
	fs.StringVar(&f.algorithm, "algo", "", "placement algorithm")
	fs.BoolVar(&f.rotate, "rotate", false, "allow 90 degree rotation")
	fs.StringVar(&f.sort, "sort", "", "pre-sort order")
	fs.StringVar(&f.search, "search", "", "greedy or genetic")
	fs.Int64Var(&f.seed, "seed", 0, "seed for the genetic search")
	fs.StringVar(&f.configPath, "config", project.DefaultConfigPath(), "config file")
}

// newFlagSet returns a flag set with the job flags and klog's flags registered.
func newFlagSet(name string, jf *jobFlags, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	jf.register(fs)
	klog.InitFlags(fs)
	return fs
}

// parseBinSpec parses "WxH" or "WxHxN". N defaults to 1.
func parseBinSpec(s string) (model.Bin, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "x")
	if len(parts) != 2 && len(parts) != 3 {
		return model.Bin{}, fmt.Errorf("invalid bin %q: expected WxH or WxHxN", s)
	}

	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n <= 0 {
			return model.Bin{}, fmt.Errorf("invalid bin %q: %q is not a positive integer", s, p)
		}
		nums[i] = n
	}

	qty := 1
	if len(nums) == 3 {
		qty = nums[2]
	}
	label := fmt.Sprintf("%dx%d", nums[0], nums[1])
	return model.NewBin(label, nums[0], nums[1], qty), nil
}

// loadedJob is a job assembled from files and flags.
type loadedJob struct {
	job      model.Job
	config   model.AppConfig
	warnings []string
}

// loadJob builds the job to pack. Settings start from the config defaults,
// are replaced by the job file's settings when one is given, and are then
// overridden by any explicitly set flag. Items from -items and bins from -bin
// are appended to those of the job file.
func (f *jobFlags) loadJob(fs *flag.FlagSet) (loadedJob, error) {
	cfg, err := project.LoadAppConfig(f.configPath)
	if err != nil {
		return loadedJob{}, fmt.Errorf("failed to load config: %w", err)
	}

	job := model.NewJob()
	cfg.ApplyToSettings(&job.Settings)

	if f.jobPath != "" {
		job, err = project.LoadJob(f.jobPath)
		if err != nil {
			return loadedJob{}, err
		}
	}

	out := loadedJob{config: cfg}

	if f.itemsPath != "" {
		res := importer.ImportFile(f.itemsPath)
		if len(res.Errors) > 0 {
			return loadedJob{}, fmt.Errorf("failed to import %s: %s", f.itemsPath, strings.Join(res.Errors, "; "))
		}
		job.Items = append(job.Items, res.Items...)
		out.warnings = res.Warnings
		if f.jobPath == "" {
			job.Name = strings.TrimSuffix(filepath.Base(f.itemsPath), filepath.Ext(f.itemsPath))
		}
	}
	job.Bins = append(job.Bins, f.bins...)

	if err := f.applySettings(fs, &job.Settings); err != nil {
		return loadedJob{}, err
	}

	if len(job.Items) == 0 {
		return loadedJob{}, fmt.Errorf("no items: use -job or -items")
	}
	if len(job.Bins) == 0 {
		return loadedJob{}, fmt.Errorf("no bins: use -job or -bin")
	}

	out.job = job
	return out, nil
}

// applySettings copies every flag the user set into s.
func (f *jobFlags) applySettings(fs *flag.FlagSet, s *model.Settings) error {
	var err error
	fs.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}
		switch fl.Name {
		case "algo":
			s.Algorithm, err = model.ParseAlgorithm(f.algorithm)
		case "rotate":
			s.AllowRotate = f.rotate
		case "sort":
			s.Sort, err = model.ParseSortOrder(f.sort)
		case "search":
			s.Search, err = model.ParseSearch(f.search)
		case "seed":
			s.Seed = f.seed
		}
	})
	if err != nil {
		return err
	}
	return s.Validate()
}
