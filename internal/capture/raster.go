// Package capture rasterizes rendered SVG charts to PNG using a
// headless Chromium instance.
package capture

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"
)

const (
	DefaultSize       = 640
	DefaultTimeoutSec = 30
)

// RasterOptions defines parameters for one SVG-to-PNG conversion.
type RasterOptions struct {
	// SVGPath is the SVG file to rasterize.
	SVGPath string

	// OutputPath is where the PNG will be written.
	OutputPath string

	// Size is the square viewport edge in pixels. If zero, DefaultSize
	// is used.
	Size int

	// Timeout bounds the entire capture operation. If zero,
	// DefaultTimeoutSec is used.
	Timeout time.Duration
}

// RasterizeSVG opens the SVG in headless Chromium via chromedp, waits
// for the root <svg> element, and screenshots the viewport to PNG.
func RasterizeSVG(parentCtx context.Context, opts RasterOptions) error {
	if opts.SVGPath == "" {
		return fmt.Errorf("capture: SVGPath is required")
	}
	if opts.OutputPath == "" {
		return fmt.Errorf("capture: OutputPath is required")
	}
	if opts.Size <= 0 {
		opts.Size = DefaultSize
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeoutSec * time.Second
	}

	abs, err := filepath.Abs(opts.SVGPath)
	if err != nil {
		return fmt.Errorf("capture: resolve svg path: %w", err)
	}
	url := "file://" + abs

	ctx, cancel := chromedp.NewContext(parentCtx)
	defer cancel()

	ctx, timeoutCancel := context.WithTimeout(ctx, opts.Timeout)
	defer timeoutCancel()

	var png []byte
	tasks := chromedp.Tasks{
		chromedp.EmulateViewport(int64(opts.Size), int64(opts.Size)),
		chromedp.Navigate(url),
		chromedp.WaitVisible(`svg`, chromedp.ByQuery),
		chromedp.FullScreenshot(&png, 100),
	}

	if err := chromedp.Run(ctx, tasks); err != nil {
		return fmt.Errorf("capture: chromedp run failed: %w", err)
	}

	if err := os.WriteFile(opts.OutputPath, png, 0o644); err != nil {
		return fmt.Errorf("capture: failed to write PNG: %w", err)
	}

	return nil
}
