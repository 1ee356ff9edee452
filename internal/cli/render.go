package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pixelgrid/pkg/config"
	"github.com/matzehuels/pixelgrid/pkg/pipeline"
)

// defaultOutputBase names output files when --output is unset.
const defaultOutputBase = "grid"

// renderOpts holds the command-line flags for the render command.
// Zero values leave the loaded config untouched.
type renderOpts struct {
	output   string  // output file (single format), base path (multiple), or "-" for stdout
	formats  string  // comma-separated formats
	pattern  string  // highlight pattern
	width    float64 // viewport width in pixels
	height   float64 // viewport height in pixels
	rotation float64 // pattern rotation in degrees
	cellSize float64 // target cell size in pixels
	scale    float64 // PNG pixel density
	noCache  bool    // bypass the frame cache
	refresh  bool    // re-render and overwrite cached frames
	redis    string  // redis address for the frame cache
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one grid frame to SVG, PNG, text, or JSON",
		Example: `  pixelgrid render -f svg,png --width 1280 --height 720
  pixelgrid render --pattern cross --rotation 30 -o cross.svg
  pixelgrid render -f txt -o -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			applyRenderFlags(cmd, cfg, &opts)
			if err := cfg.Validate(); err != nil {
				return err
			}
			formats := parseFormats(opts.formats)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cfg, formats, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, txt, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.pattern, "pattern", "p", "", "highlight pattern (see 'pixelgrid patterns')")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "viewport width in pixels")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "viewport height in pixels")
	cmd.Flags().Float64Var(&opts.rotation, "rotation", 0, "pattern rotation in degrees")
	cmd.Flags().Float64Var(&opts.cellSize, "cell-size", 0, "target cell size in pixels")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG pixel density")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the frame cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if the frame is cached")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "redis address or URL for the frame cache")

	return cmd
}

// applyRenderFlags overrides cfg with the flags the user actually set.
func applyRenderFlags(cmd *cobra.Command, cfg *config.Config, opts *renderOpts) {
	flags := cmd.Flags()
	if flags.Changed("pattern") {
		cfg.Pattern = opts.pattern
	}
	if flags.Changed("width") {
		cfg.Viewport.Width = opts.width
	}
	if flags.Changed("height") {
		cfg.Viewport.Height = opts.height
	}
	if flags.Changed("rotation") {
		cfg.Rotation = opts.rotation
	}
	if flags.Changed("cell-size") {
		cfg.Grid.CellSize = opts.cellSize
	}
	if flags.Changed("redis") {
		cfg.Cache.Redis = opts.redis
	}
}

func (c *CLI) runRender(ctx context.Context, cfg *config.Config, formats []string, opts *renderOpts) error {
	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spin := newSpinnerWithContext(ctx, "Rendering "+strings.Join(formats, ", "))
	toStdout := opts.output == "-"
	if !toStdout {
		spin.Start()
	}
	res, err := runner.Render(ctx, pipeline.Options{
		Config:  cfg,
		Formats: formats,
		Scale:   opts.scale,
		Refresh: opts.refresh,
	})
	if err != nil {
		if toStdout {
			spin.Stop()
		} else {
			spin.StopWithError("Render failed")
		}
		return err
	}
	spin.Stop()
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(formats)))

	if toStdout {
		for _, f := range formats {
			if _, err := os.Stdout.Write(res.Artifacts[f]); err != nil {
				return err
			}
		}
		return nil
	}

	paths := outputPaths(opts.output, formats)
	for _, f := range formats {
		if err := writeFile(paths[f], res.Artifacts[f]); err != nil {
			return err
		}
	}

	printSuccess("%s", res.Status)
	printStats(res.Metrics.Columns, res.Metrics.Rows, res.CacheHit)
	for _, f := range formats {
		printFile(paths[f])
	}
	return nil
}

// outputPaths maps each format to its output file. A single format uses
// output as-is; multiple formats share output (minus any format extension)
// as a base path.
func outputPaths(output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// basePath strips a known format extension from output, defaulting to
// defaultOutputBase when output is empty.
func basePath(output string) string {
	if output == "" {
		return defaultOutputBase
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
