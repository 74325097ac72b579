package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/0x0FACED/go-fortune-parallel/pkg/logger"
	"github.com/0x0FACED/go-fortune-parallel/pkg/voronoi"
)

type buildFlags struct {
	random    int
	seed      int64
	jobs      int
	showEdges bool
}

func newBuildCommand(load loadFunc) *cobra.Command {
	var flags buildFlags

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a diagram from stdin points or random sites",
		Long: `Reads "x y" lines from stdin (or generates --random N sites inside
the configured bounds), builds the diagram and prints a summary table.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}

			bbox := cfg.BoundingBox()
			var points []voronoi.Vertex
			if flags.random > 0 {
				points = generateRandStations(flags.random, bbox, flags.seed)
			} else {
				points, err = readPoints(cmd.InOrStdin())
				if err != nil {
					return errors.Wrap(err, "read stdin")
				}
			}

			jobs := cfg.Build.MaxSitesPerJob
			if flags.jobs > 0 {
				jobs = flags.jobs
			}

			log := logger.NewWithLevel(cfg.LogLevel(), os.Stderr)
			defer func() { _ = log.Sync() }()

			options := append([]voronoi.Option{voronoi.WithLogger(log)}, cfg.BuildOptions()...)
			diagram, err := voronoi.BuildDiagram(points, bbox, jobs, options...)
			if err != nil {
				return errors.Wrap(err, "build diagram")
			}

			out := cmd.OutOrStdout()
			renderReport(out, diagram)
			if flags.showEdges {
				renderEdges(out, diagram)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&flags.random, "random", 0, "generate N random sites instead of reading stdin")
	cmd.Flags().Int64Var(&flags.seed, "seed", 1, "seed for --random")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "max sites per job, overrides build.max_sites_per_job")
	cmd.Flags().BoolVar(&flags.showEdges, "edges", false, "print every edge")

	return cmd
}

func renderReport(w io.Writer, d *voronoi.Diagram) {
	rep := d.Report

	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.SetTitle("Voronoi build")
	tbl.AppendHeader(table.Row{"Metric", "Value"})
	tbl.AppendRows([]table.Row{
		{"Sites", humanize.Comma(int64(rep.Sites))},
		{"Unique sites", humanize.Comma(int64(rep.UniqueSites))},
		{"Chunks", rep.Chunks},
		{"Merge rounds", rep.Rounds},
		{"Edges", humanize.Comma(int64(rep.Edges))},
		{"Site events", humanize.Comma(int64(rep.SiteEvents))},
		{"Circle events", humanize.Comma(int64(rep.CircleEvents))},
		{"Stale events", humanize.Comma(int64(rep.StaleEvents))},
		{"Chunk time", rep.ChunkTime},
		{"Merge time", rep.MergeTime},
	})
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})
	tbl.Render()
}

func renderEdges(w io.Writer, d *voronoi.Diagram) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"#", "Left", "Right", "Start", "End"})
	for i, e := range d.Edges {
		tbl.AppendRow(table.Row{
			i,
			e.Left,
			e.Right,
			fmt.Sprintf("(%.3f, %.3f)", e.Start.X, e.Start.Y),
			fmt.Sprintf("(%.3f, %.3f)", e.End.X, e.End.Y),
		})
	}
	tbl.AppendFooter(table.Row{"", "", "", "Total", len(d.Edges)})
	tbl.Render()
}
