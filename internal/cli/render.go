package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ltschart/pkg/chart/layout"
	"github.com/matzehuels/ltschart/pkg/chart/styles"
	"github.com/matzehuels/ltschart/pkg/errors"
	"github.com/matzehuels/ltschart/pkg/httputil"
	"github.com/matzehuels/ltschart/pkg/pipeline"
	"github.com/matzehuels/ltschart/pkg/release"
	"github.com/matzehuels/ltschart/pkg/segment"
)

// stdoutPath as an output path writes the artifact to stdout.
const stdoutPath = "-"

// outputFormats lists the output flags in the order artifacts are written.
var outputFormats = []string{
	pipeline.FormatSVG,
	pipeline.FormatHTML,
	pipeline.FormatPNG,
	pipeline.FormatPDF,
	pipeline.FormatJSON,
}

// renderOpts holds the resolved flags of the render command.
type renderOpts struct {
	data    string
	outputs map[string]string // format -> path
	noCache bool
	pick    bool
	opts    pipeline.Options
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the release schedule chart",
		Long: `Render the release schedule of a dataset as a Gantt chart.

Each output flag names a file for that format; "-" writes to stdout. Without
any output flag the SVG is written to stdout.`,
		Example: `  ltschart render -d lts.json -s 2024-01-01 -e 2025-01-01 -g schedule.svg
  ltschart render --track v20 --track v22 --png schedule.png --scale 2
  LTSCHART_THEME=dark ltschart render --html schedule.html --animate`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ro, err := c.renderOptions()
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), ro)
		},
	}

	addDatasetFlags(cmd)
	addWindowFlags(cmd)

	f := cmd.Flags()
	f.StringP("svg", "g", "", "SVG output file")
	f.String("html", "", "HTML output file")
	f.StringP("png", "p", "", "PNG output file")
	f.String("pdf", "", "PDF output file (requires rsvg-convert)")
	f.String("json", "", "scene JSON output file")
	f.BoolP("animate", "a", false, "animate bars on load")
	f.Float64("width", pipeline.DefaultWidth, "chart width in pixels")
	f.Float64("height", pipeline.DefaultHeight, "chart height in pixels")
	f.Float64("margin-left", pipeline.DefaultMarginLeft, "left margin reserved for track names")
	f.Float64("label-char-width", layout.DefaultLabelCharWidth, "approximate label character width used to decide whether a label fits its bar")
	f.String("theme", styles.DefaultThemeName, "built-in theme name or TOML theme file")
	f.String("title", "", "document title for SVG and HTML output")
	f.Bool("embed-font", false, "embed the label font into SVG and HTML output")
	f.Float64("scale", pipeline.DefaultPNGScale, "PNG resolution multiplier")
	f.Bool("no-cache", false, "disable the result cache")
	f.Bool("refresh", false, "recompute even when results are cached")

	_ = cmd.RegisterFlagCompletionFunc("theme", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return styles.Names(), cobra.ShellCompDirectiveDefault
	})
	return cmd
}

// addDatasetFlags registers the flags selecting the dataset and its tracks.
func addDatasetFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("data", "d", defaultDataFile, "dataset file or http(s) URL (JSON, YAML or TOML)")
	f.StringSlice("track", nil, "only chart these tracks (repeatable, name or display name)")
	f.Bool("pick", false, "choose tracks interactively")
}

// addWindowFlags registers the query window and branch flags.
func addWindowFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("start", "s", "", "query start date (default now)")
	f.StringP("end", "e", "", "query end date (default one year after start)")
	f.BoolP("exclude-master", "m", false, "exclude the unstable branch bar")
	f.String("branch-name", segment.DefaultBranchName, "name of the unstable branch bar")
}

// windowOptions reads the window and branch settings shared by render and
// tracks.
func (c *CLI) windowOptions() (pipeline.Options, error) {
	v := c.config
	opts := pipeline.Options{
		IncludeUnstableBranch: !v.GetBool("exclude-master"),
		BranchName:            v.GetString("branch-name"),
		Tracks:                v.GetStringSlice("track"),
	}
	var err error
	if opts.Start, err = optionalDate(v.GetString("start")); err != nil {
		return opts, fmt.Errorf("--start: %w", err)
	}
	if opts.End, err = optionalDate(v.GetString("end")); err != nil {
		return opts, fmt.Errorf("--end: %w", err)
	}
	return opts, nil
}

// renderOptions resolves flags, environment and config file into render
// options.
func (c *CLI) renderOptions() (*renderOpts, error) {
	v := c.config
	opts, err := c.windowOptions()
	if err != nil {
		return nil, err
	}
	opts.Width = v.GetFloat64("width")
	opts.Height = v.GetFloat64("height")
	opts.MarginLeft = v.GetFloat64("margin-left")
	opts.LabelCharWidth = v.GetFloat64("label-char-width")
	opts.Animate = v.GetBool("animate")
	opts.Title = v.GetString("title")
	opts.EmbedFont = v.GetBool("embed-font")
	opts.PNGScale = v.GetFloat64("scale")
	opts.Refresh = v.GetBool("refresh")

	if opts.Theme, err = styles.Resolve(v.GetString("theme")); err != nil {
		return nil, err
	}

	ro := &renderOpts{
		data:    v.GetString("data"),
		outputs: map[string]string{},
		noCache: v.GetBool("no-cache"),
		pick:    v.GetBool("pick"),
	}
	toStdout := 0
	for _, format := range outputFormats {
		path := v.GetString(format)
		if path == "" {
			continue
		}
		if path == stdoutPath {
			toStdout++
		} else if err := errors.ValidateOutputPath(path); err != nil {
			return nil, err
		}
		ro.outputs[format] = path
		opts.Formats = append(opts.Formats, format)
	}
	if len(ro.outputs) == 0 {
		ro.outputs[pipeline.FormatSVG] = stdoutPath
		opts.Formats = []string{pipeline.FormatSVG}
	}
	if toStdout > 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "only one output can be written to stdout")
	}

	ro.opts = opts
	return ro, nil
}

func optionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return release.ParseDate(s)
}

// loadDataset reads the dataset and applies the interactive track picker.
func (c *CLI) loadDataset(ctx context.Context, path string, pick bool, opts *pipeline.Options) (release.Dataset, error) {
	logger := loggerFromContext(ctx)

	ds, err := c.readDataset(ctx, path)
	if err != nil {
		return release.Dataset{}, err
	}
	logger.Debug("loaded dataset", "path", path, "tracks", ds.Len())

	if pick {
		picked, err := pickTracks(ctx, ds, opts.Tracks)
		if err != nil {
			return release.Dataset{}, err
		}
		opts.Tracks = picked
	}
	return ds, nil
}

// readDataset reads a dataset file, or downloads it when path is an http(s)
// URL.
func (c *CLI) readDataset(ctx context.Context, path string) (release.Dataset, error) {
	if !httputil.IsURL(path) {
		return release.Load(path)
	}
	store, err := newCache(c.config.GetBool("no-cache"))
	if err != nil {
		return release.Dataset{}, err
	}
	defer store.Close()

	data, err := httputil.NewFetcher(store).Fetch(ctx, path)
	if err != nil {
		return release.Dataset{}, err
	}
	ds, err := release.Decode(data, release.Format(httputil.Path(path)))
	if err != nil {
		return release.Dataset{}, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// runRender executes the pipeline and writes every requested artifact.
func (c *CLI) runRender(ctx context.Context, ro *renderOpts) error {
	logger := loggerFromContext(ctx)

	ds, err := c.loadDataset(ctx, ro.data, ro.pick, &ro.opts)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ro.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	var spin *Spinner
	if ro.outputs[pipeline.FormatPNG] != "" || ro.outputs[pipeline.FormatPDF] != "" {
		spin = newSpinnerWithContext(ctx, "Rendering chart...")
		spin.Start()
	}
	ro.opts.Logger = logger
	result, err := runner.Execute(ctx, ds, ro.opts)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}
	prog.done("Rendered chart", "formats", ro.opts.Formats)

	for _, format := range outputFormats {
		path, ok := ro.outputs[format]
		if !ok {
			continue
		}
		if err := c.writeArtifact(path, result.Artifacts[format]); err != nil {
			return fmt.Errorf("write %s: %w", format, err)
		}
	}

	printSuccess("Rendered release schedule %s to %s",
		release.FormatDate(result.Scene.Window.Start), release.FormatDate(result.Scene.Window.End))
	printStats(result.Stats.TrackCount, result.Stats.SegmentCount, result.CacheInfo.RenderHit)
	for _, format := range outputFormats {
		if path, ok := ro.outputs[format]; ok && path != stdoutPath {
			printFile(path)
		}
	}
	return nil
}

func (c *CLI) writeArtifact(path string, data []byte) error {
	if path == stdoutPath {
		_, err := c.out.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
