package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ltschart/pkg/errors"
	"github.com/matzehuels/ltschart/pkg/pipeline"
	"github.com/matzehuels/ltschart/pkg/release"
	"github.com/matzehuels/ltschart/pkg/segment"
)

// tracksCommand creates the tracks command, which prints the segments a
// chart would draw without rendering it.
func (c *CLI) tracksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tracks",
		Short: "List the phase segments of each track over the window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.windowOptions()
			if err != nil {
				return err
			}
			format := c.config.GetString("format")
			if format != "table" && format != "json" {
				return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (want table or json)", format)
			}
			return c.runTracks(cmd.Context(), c.config.GetString("data"), c.config.GetBool("pick"), format, opts)
		},
	}
	addDatasetFlags(cmd)
	addWindowFlags(cmd)
	cmd.Flags().String("format", "table", "output format: table or json")
	return cmd
}

func (c *CLI) runTracks(ctx context.Context, data string, pick bool, format string, opts pipeline.Options) error {
	ds, err := c.loadDataset(ctx, data, pick, &opts)
	if err != nil {
		return err
	}
	opts.Logger = loggerFromContext(ctx)
	if err := opts.ValidateForSegment(); err != nil {
		return err
	}
	segs, err := pipeline.NewRunner(nil, nil, opts.Logger).Segment(ctx, ds, opts)
	if err != nil {
		return err
	}

	if format == "json" {
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"window": opts.Window(), "segments": segs})
	}

	fmt.Fprintln(c.out, StyleTitle.Render(fmt.Sprintf("Release schedule %s → %s",
		release.FormatDate(opts.Start), release.FormatDate(opts.End))))
	fmt.Fprintln(c.out, segmentTable(segs))
	return nil
}

// segmentTable renders segments as a bordered table with phases tinted by
// kind.
func segmentTable(segs []segment.Segment) string {
	rows := make([][]string, len(segs))
	for i, s := range segs {
		join := "yes"
		if s.SuppressJoinMarker {
			join = "no"
		}
		rows[i] = []string{s.Name, string(s.Kind), release.FormatDate(s.Start), release.FormatDate(s.End), join}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Track", "Phase", "Start", "End", "Join").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return base.Inherit(styleHeader)
			}
			if col == 1 && row >= 0 && row < len(segs) {
				return base.Foreground(kindColors[string(segs[row].Kind)])
			}
			return base
		}).
		Render()
}
