package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"sliceareaplot/internal/models"
	"sliceareaplot/internal/monitoring"
	"sliceareaplot/pkg/aggregate"
	"sliceareaplot/pkg/config"
	"sliceareaplot/pkg/export"
	"sliceareaplot/pkg/segmentation"
	"sliceareaplot/pkg/slicearea"
	"sliceareaplot/pkg/source"
	"sliceareaplot/pkg/visualization"
)

func main() {
	// Parse command line arguments
	inputDir := flag.String("input", "", "Directory with one sub-directory of mask slices per segment")
	configPath := flag.String("config", "sliceareaplot.yaml", "YAML configuration file")
	axisName := flag.String("axis", "", "Sweep axis: axial, coronal or sagittal (overrides config)")
	padding := flag.String("padding", "", "Series padding: legacy or aligned (overrides config)")
	workers := flag.Int("workers", -1, "Segments computed concurrently (overrides config)")
	csvPath := flag.String("csv", "", "Output CSV file (overrides config)")
	plotPath := flag.String("plot", "", "Output chart image, e.g. area.png (overrides config)")
	htmlPath := flag.String("html", "", "Output interactive HTML chart (overrides config)")
	extractSlices := flag.Bool("extract-slices", false, "Save each segment's planes along the sweep axis as PNG")
	slicesDir := flag.String("slices-dir", "segment_slices", "Directory to save extracted planes")
	flag.Parse()

	// Validate inputs
	if *inputDir == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := applyFlags(cfg, *axisName, *padding, *workers, *csvPath, *plotPath, *htmlPath); err != nil {
		log.Fatalf("Invalid arguments: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if !cfg.Output.Verbose {
		monitoring.SetLogger(nil)
	}

	mode, _ := cfg.PaddingMode()
	axis := cfg.Sweep.Axis

	fmt.Println("================================")
	fmt.Println("SEGMENT CROSS-SECTIONAL AREA PER SLICE")
	fmt.Println("================================")

	fmt.Printf("Loading segment masks from %s...\n", *inputDir)
	src, err := source.LoadDir(*inputDir, source.Options{
		Spacing:   cfg.Volume.Spacing,
		Threshold: cfg.Volume.Threshold,
		Segments:  cfg.Volume.Segments,
	})
	if err != nil {
		log.Fatalf("Failed to load segmentation: %v", err)
	}
	dims := src.Dimensions()
	fmt.Printf("Parent volume %dx%dx%d, %d visible segments\n", dims[0], dims[1], dims[2], len(src.VisibleSegments()))

	fmt.Printf("Computing %s areas (%s padding, %d workers)...\n", axis, mode, cfg.Processing.Workers)
	startTime := time.Now()
	agg := aggregate.NewAggregator(slicearea.NewComputer(mode), cfg.Processing.Workers)
	set, err := agg.Run(src, src, axis)
	if err != nil {
		log.Fatalf("Area computation failed: %v", err)
	}
	fmt.Printf("Computed %d series over %d slices in %.3f seconds\n\n", set.Len(), set.NumSlices, time.Since(startTime).Seconds())

	printSummaries(set)

	if err := writeOutputs(cfg, set); err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	if *extractSlices {
		fmt.Println("\nExtracting segment planes...")
		for _, id := range set.IDs {
			lm, err := src.Labelmap(id)
			if err != nil {
				log.Printf("Warning: %v", err)
				continue
			}
			dir := filepath.Join(*slicesDir, id, axis.String())
			if err := visualization.NewViewer(lm).SaveSliceSequence(axis, dir); err != nil {
				log.Printf("Warning: Failed to save planes of %s: %v", id, err)
				continue
			}
			fmt.Printf("Saved %s planes to: %s\n", id, dir)
		}
	}
}

// applyFlags overrides config values with any flags the user set
func applyFlags(cfg *config.Config, axisName, padding string, workers int, csvPath, plotPath, htmlPath string) error {
	if axisName != "" {
		axis, err := models.ParseSweepAxis(axisName)
		if err != nil {
			return err
		}
		cfg.Sweep.Axis = axis
	}
	if padding != "" {
		cfg.Sweep.Padding = padding
	}
	if workers >= 0 {
		cfg.Processing.Workers = workers
	}
	if csvPath != "" {
		cfg.Output.CSV = csvPath
	}
	if plotPath != "" {
		cfg.Output.Plot = plotPath
	}
	if htmlPath != "" {
		cfg.Output.HTML = htmlPath
	}
	return nil
}

func printSummaries(set *aggregate.SegmentSeriesSet) {
	fmt.Printf("%-24s %12s %8s %12s %10s %14s\n", "Segment", "Peak (mm²)", "@Slice", "Mean (mm²)", "Slices", "Volume (mm³)")
	for _, id := range set.IDs {
		s := set.Summaries[id]
		fmt.Printf("%-24s %12.2f %8d %12.2f %10d %14.2f\n", set.Name(id), s.PeakArea, s.PeakIndex, s.MeanArea, s.OccupiedSlices, s.Volume)
	}
	for _, f := range set.Failures {
		fmt.Printf("%-24s skipped: %v\n", f.Segment.DisplayName(), f.Err)
	}
	if set.Len() == 0 && len(set.Failures) == 0 {
		fmt.Printf("(%v)\n", segmentation.ErrNoVisibleSegments)
	}
}

func writeOutputs(cfg *config.Config, set *aggregate.SegmentSeriesSet) error {
	if cfg.Output.CSV != "" {
		f, err := os.Create(cfg.Output.CSV)
		if err != nil {
			return err
		}
		if err := export.WriteCSV(f, set); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Printf("\nArea table saved to: %s\n", cfg.Output.CSV)
	}

	if cfg.Output.Plot != "" {
		if err := export.SavePlot(set, cfg.Output.Plot, cfg.Output.PlotTitle); err != nil {
			return err
		}
		fmt.Printf("Area chart saved to: %s\n", cfg.Output.Plot)
	}

	if cfg.Output.HTML != "" {
		f, err := os.Create(cfg.Output.HTML)
		if err != nil {
			return err
		}
		if err := export.RenderHTML(f, set, cfg.Output.PlotTitle); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Printf("Interactive chart saved to: %s\n", cfg.Output.HTML)
	}

	return nil
}
