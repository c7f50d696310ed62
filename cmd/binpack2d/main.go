// Package main provides the binpack2d command line tool.
//
// Usage:
//
//	binpack2d pack [flags]        Pack items into bins and export the layout
//	binpack2d compare [flags]     Pack the same job with every algorithm
//	binpack2d estimate [flags]    Print the area lower bound on bins needed
//	binpack2d algorithms          List the available algorithms
//	binpack2d help                Show help
//
// Examples:
//
//	binpack2d pack -items parts.csv -bin 2440x1220x4 -algo maxrects-bssf -rotate -pdf layout.pdf
//	binpack2d pack -job kitchen.yaml -xlsx kitchen.xlsx -out kitchen.json
//	binpack2d compare -job kitchen.yaml
package main

import (
	"fmt"
	"os"

	"k8s.io/klog/v2"
)

const version = "0.1.0"

const usage = `binpack2d - 2D rectangle bin packing

Usage:
  binpack2d <command> [flags]

Commands:
  pack        Pack items into bins, print the layout and optionally export it
  compare     Pack the same job once per algorithm and rotation setting
  estimate    Print the area lower bound on the number of bins
  algorithms  List the available algorithms
  version     Print version information
  help        Show this help message

Job flags (pack, compare, estimate):
  -job file       Job file (.yaml, .yml or .json)
  -items file     Item list (.csv, .xlsx or .dxf)
  -bin WxH[xN]    Bin size and count, repeatable
  -algo name      Placement algorithm (default from config, else maxrects)
  -rotate         Allow 90 degree rotation
  -sort order     Pre-sort items: none, area, perimeter, max-side, width, height
  -search name    greedy or genetic
  -seed n         Seed for the genetic search
  -config file    Config file (default ~/.binpack2d/config.json)
  -v level        Log verbosity

Export flags (pack):
  -pdf file       Layout report
  -labels file    QR label sheet
  -xlsx file      Excel workbook
  -dxf file       DXF drawing
  -out file       Result snapshot (JSON)

Examples:
  binpack2d pack -items parts.csv -bin 2440x1220x4 -rotate -pdf layout.pdf
  binpack2d pack -job kitchen.yaml -xlsx kitchen.xlsx
  binpack2d compare -job kitchen.yaml
  binpack2d estimate -items parts.csv -bin 2440x1220
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	defer klog.Flush()

	if len(args) < 1 {
		fmt.Print(usage)
		return 1
	}

	command := args[0]
	args = args[1:]

	var err error
	switch command {
	case "pack":
		err = runPack(args, os.Stdout)
	case "compare":
		err = runCompare(args, os.Stdout)
	case "estimate":
		err = runEstimate(args, os.Stdout)
	case "algorithms":
		runAlgorithms(os.Stdout)
	case "version":
		fmt.Printf("binpack2d version %s\n", version)
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", command)
		fmt.Print(usage)
		return 1
	}

	if err != nil {
		klog.ErrorS(err, "Command failed", "command", command)
		return 1
	}
	return 0
}
