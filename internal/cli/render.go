package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/branislavfamily/familysite/pkg/pipeline"
	"github.com/branislavfamily/familysite/pkg/viewport"
)

// defaultOutputBase is the file name stem used when several formats are
// written without -o.
const defaultOutputBase = "family-tree"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string   // output file (single format) or base path (multiple)
	formats     []string // svg, html, json, dot, text, nodelink
	scale       float64  // initial zoom
	x, y        float64  // initial pan offset
	detailed    bool     // id and generation in node-link labels
	interactive bool     // embed the pan/zoom script in SVG output
	noCache     bool     // bypass the render cache
	refresh     bool     // re-render even when cached
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: viewport.Identity.Scale}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the family tree to SVG, HTML, JSON, DOT or text",
		Long: `Render the family tree.

With a single format and no -o the artifact is written to stdout. With
several formats, -o is a base path and each format gets its own extension.`,
		Example: `  familysite render --format text
  familysite render --format svg --scale 1.4 -o tree.svg
  familysite render --tree family.yaml --format svg,json,nodelink -o out/tree`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): "+strings.Join(pipeline.FormatNames(), ", ")+" (comma-separated, default svg)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "zoom level, clamped to [0.5, 2]")
	cmd.Flags().Float64Var(&opts.x, "x", 0, "horizontal pan offset in pixels")
	cmd.Flags().Float64Var(&opts.y, "y", 0, "vertical pan offset in pixels")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include ids and generations in node-link output")
	cmd.Flags().BoolVar(&opts.interactive, "interactive", false, "embed the pan and zoom script in SVG output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")

	return cmd
}

// runRender executes the pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, stdout io.Writer, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	src, popts, closeSrc, err := c.treeSource(ctx)
	if err != nil {
		return err
	}
	defer closeSrc()

	popts.Formats = opts.formats
	popts.Transform = viewport.Transform{Scale: opts.scale, X: opts.x, Y: opts.y}
	popts.Detailed = opts.detailed
	popts.Interactive = opts.interactive
	popts.Refresh = opts.refresh
	popts.Logger = logger

	spinner := newSpinnerWithContext(ctx, "Rendering family tree...")
	spinner.Start()
	result, err := runner.Execute(ctx, src, popts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	logger.Debugf("Rendered %d people over %d generations", result.Stats.People, result.Stats.Generations)

	if len(popts.Formats) == 1 && opts.output == "" {
		_, err := stdout.Write(result.Artifacts[popts.Formats[0]])
		return err
	}

	paths := outputPaths(opts.output, popts.Formats)
	for _, f := range popts.Formats {
		if err := writeArtifact(paths[f], result.Artifacts[f]); err != nil {
			return err
		}
	}

	prog.done(fmt.Sprintf("Rendered %d artifact(s)", len(popts.Formats)))
	for _, f := range popts.Formats {
		printFile(paths[f])
	}
	printStats(result.Stats.People, result.Stats.Generations, result.CacheInfo.RenderHit)
	return nil
}

// formatExt maps a pipeline format to its file suffix.
var formatExt = map[string]string{
	pipeline.FormatSVG:      ".svg",
	pipeline.FormatHTML:     ".html",
	pipeline.FormatJSON:     ".json",
	pipeline.FormatDOT:      ".dot",
	pipeline.FormatText:     ".txt",
	pipeline.FormatNodelink: "_nodelink.svg",
}

// outputPaths assigns a file to each format. A single format writes to
// output as given; several formats share output as a base path with any
// known extension stripped.
func outputPaths(output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := output
	if base == "" {
		base = defaultOutputBase
	}
	ext := filepath.Ext(base)
	for _, e := range formatExt {
		if e == ext {
			base = strings.TrimSuffix(base, ext)
			break
		}
	}
	for _, f := range formats {
		paths[f] = base + formatExt[f]
	}
	return paths
}

// writeArtifact writes data to path, creating parent directories.
func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
