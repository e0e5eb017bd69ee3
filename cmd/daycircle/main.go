package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/robfig/cron/v3"

	"daycircle/internal/aggregate"
	"daycircle/internal/capture"
	"daycircle/internal/chart"
	"daycircle/internal/config"
	"daycircle/internal/export"
	appLog "daycircle/internal/log"
	"daycircle/internal/model"
	"daycircle/internal/parse"
)

// flagConfig holds CLI flag values.
type flagConfig struct {
	configPath string
	colourFile string
	output     string
	format     string
	font       string
	exportICS  string
	watch      bool
	debug      bool
}

func main() {
	flags, targets := parseFlags()

	if flags.debug {
		appLog.SetLevel(appLog.LevelDebug)
	}

	conf, err := loadConfig(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}

	// CLI flags override config file values if provided.
	if flags.format != "" {
		conf.Format = flags.format
	}
	if flags.font != "" {
		conf.Font = flags.font
	}
	conf.Normalize()

	if conf.Format != config.FormatSVG && conf.Format != config.FormatPNG {
		appLog.Error("unsupported output format", errors.New(conf.Format))
		os.Exit(1)
	}
	if len(targets) == 0 {
		appLog.Error("no target files given", errors.New("usage: daycircle [flags] target.day ..."))
		os.Exit(1)
	}

	appLog.Info("daycircle starting",
		"targets", len(targets),
		"colour_file", flags.colourFile,
		"format", conf.Format,
		"font", conf.Font,
		"watch", flags.watch,
	)

	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		appLog.Info("signal received, shutting down", "signal", sig.String())
		cancel()
	}()

	run := func() error {
		return runOnce(ctx, conf, flags, targets)
	}

	if !flags.watch {
		if err := run(); err != nil {
			appLog.Error("run failed", err)
			os.Exit(1)
		}
		return
	}

	// Watch mode: render immediately, then on the configured schedule
	// until interrupted. A failed cycle is logged and retried on the
	// next tick.
	if err := run(); err != nil {
		appLog.Error("initial render failed", err)
	}

	c := cron.New()
	if _, err := c.AddFunc(conf.Refresh, func() {
		if err := run(); err != nil {
			appLog.Error("scheduled render failed", err)
		}
	}); err != nil {
		appLog.Error("invalid refresh schedule", err, "refresh", conf.Refresh)
		os.Exit(1)
	}
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	appLog.Info("daycircle exiting")
}

// runOnce executes one full parse -> aggregate -> render pass.
func runOnce(ctx context.Context, conf *config.Config, flags flagConfig, targets []string) error {
	docs := make([]*model.Document, 0, len(targets))
	for _, target := range targets {
		doc, ok, err := parseTarget(target)
		if err != nil {
			return err
		}
		if ok {
			docs = append(docs, doc)
		}
	}
	if len(docs) == 0 {
		return errors.New("no readable target files")
	}

	var colourSource *model.Document
	if flags.colourFile != "" {
		content, err := os.ReadFile(flags.colourFile)
		if err != nil {
			return fmt.Errorf("read colour file: %w", err)
		}
		colourSource, err = parse.Parse(string(content), filepath.Base(flags.colourFile), true)
		if err != nil {
			return err
		}
	}

	bundle, err := aggregate.Aggregate(docs, colourSource)
	if err != nil {
		return err
	}

	fallbacks, err := conf.FallbackPalette()
	if err != nil {
		return err
	}
	opts := chart.Options{Font: conf.Font, Fallbacks: fallbacks}

	for _, day := range bundle.Days {
		if err := renderDay(ctx, conf, flags, day, bundle.Palette, opts, len(bundle.Days)); err != nil {
			return err
		}
	}

	if flags.exportICS != "" {
		if err := export.WriteFile(flags.exportICS, bundle.Days); err != nil {
			return err
		}
		appLog.Info("wrote ICS export", "path", flags.exportICS)
	}

	return nil
}

// parseTarget reads and parses one target file. A missing or
// non-regular file is skipped with a warning (ok=false); a parse error
// aborts the run.
func parseTarget(target string) (*model.Document, bool, error) {
	info, err := os.Stat(target)
	if errors.Is(err, fs.ErrNotExist) {
		appLog.Warn("target does not exist, skipping", "target", target)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if !info.Mode().IsRegular() {
		appLog.Warn("target is not a file, skipping", "target", target)
		return nil, false, nil
	}

	content, err := os.ReadFile(target)
	if err != nil {
		return nil, false, err
	}

	doc, err := parse.Parse(string(content), filepath.Base(target), false)
	if err != nil {
		return nil, false, err
	}

	appLog.Debug("parsed target",
		"target", target,
		"day", doc.Day,
		"events", len(doc.Events),
		"colours", len(doc.Colours),
	)
	return doc, true, nil
}

func renderDay(ctx context.Context, conf *config.Config, flags flagConfig, day model.DayChart, palette model.Palette, opts chart.Options, dayCount int) error {
	svg := chart.Render(day, palette, opts)

	outPath, err := resolveOutputPath(conf, flags, day.Date, dayCount)
	if err != nil {
		return err
	}

	if conf.Format == config.FormatSVG {
		if err := os.WriteFile(outPath, svg, 0o644); err != nil {
			return fmt.Errorf("write chart: %w", err)
		}
		appLog.Info("wrote chart", "path", outPath, "date", day.Date)
		return nil
	}

	// PNG: write the SVG to a temp file, then rasterize it.
	tmp, err := os.CreateTemp("", "daycircle-*.svg")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(svg); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := capture.RasterizeSVG(ctx, capture.RasterOptions{
		SVGPath:    tmpName,
		OutputPath: outPath,
		Size:       chart.DefaultSize,
	}); err != nil {
		return err
	}
	appLog.Info("wrote chart", "path", outPath, "date", day.Date)
	return nil
}

// resolveOutputPath decides where one chart lands. -output naming an
// existing directory (or unset) gets the date-derived filename inside
// it; otherwise -output is the exact file path and only valid for a
// single-day run.
func resolveOutputPath(conf *config.Config, flags flagConfig, date model.Date, dayCount int) (string, error) {
	derived := chart.Filename(date, conf.Format)

	if flags.output == "" {
		return filepath.Join(conf.OutputDir, derived), nil
	}
	if info, err := os.Stat(flags.output); err == nil && info.IsDir() {
		return filepath.Join(flags.output, derived), nil
	}
	if dayCount > 1 {
		return "", fmt.Errorf("output %q is a single file but %d charts would be written", flags.output, dayCount)
	}
	return flags.output, nil
}

// loadConfig loads the YAML config when a path is given, and falls back
// to built-in defaults otherwise. Unlike a daemon, a chart CLI should
// not drop config files into the filesystem unasked.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	return config.Load(path)
}

func parseFlags() (flagConfig, []string) {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "", "Path to YAML config file (created on first use)")
	flag.StringVar(&cfg.colourFile, "colours", "", "Colour-source file; its colours override inline ones")
	flag.StringVar(&cfg.output, "output", "", "Output file or directory (default: config output_dir)")
	flag.StringVar(&cfg.format, "format", "", "Output format: svg or png (overrides config if set)")
	flag.StringVar(&cfg.font, "font", "", "Font family for chart text (overrides config if set)")
	flag.StringVar(&cfg.exportICS, "export-ics", "", "Also write parsed days to an iCalendar file at this path")
	flag.BoolVar(&cfg.watch, "watch", false, "Keep running and re-render on the config refresh schedule")
	flag.BoolVar(&cfg.debug, "debug", false, "Enable debug logging")

	flag.Parse()

	return cfg, flag.Args()
}
