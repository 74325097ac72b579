package main

import (
	"io"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/0x0FACED/go-fortune-parallel/pkg/voronoi"
)

var errCheckFailed = errors.New("check failed")

type checkFlags struct {
	sites   int
	seed    int64
	runs    int
	jobs    int
	noColor bool
}

func newCheckCommand(load loadFunc) *cobra.Command {
	var flags checkFlags

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Compare parallel and single chunk builds on random sites",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if flags.noColor {
				color.NoColor = true //nolint:reassign // library switch
			}

			jobs := cfg.Build.MaxSitesPerJob
			if flags.jobs > 0 {
				jobs = flags.jobs
			}

			out := cmd.OutOrStdout()
			failed := 0
			for run := 0; run < flags.runs; run++ {
				seed := flags.seed + int64(run)
				points := generateRandStations(flags.sites, cfg.BoundingBox(), seed)
				if err := checkRun(out, points, cfg.BoundingBox(), jobs, cfg.BuildOptions()); err != nil {
					failed++
					color.New(color.FgRed).Fprintf(out, "FAIL seed=%d: %v\n", seed, err)
					continue
				}
				color.New(color.FgGreen).Fprintf(out, "PASS seed=%d\n", seed)
			}

			if failed > 0 {
				return errors.Wrapf(errCheckFailed, "%d of %d runs", failed, flags.runs)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&flags.sites, "sites", "n", 1000, "sites per run")
	cmd.Flags().Int64Var(&flags.seed, "seed", 1, "seed of the first run")
	cmd.Flags().IntVar(&flags.runs, "runs", 5, "number of runs")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "max sites per job, overrides build.max_sites_per_job")
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false, "disable colored output")

	return cmd
}

// checkRun builds the same sites in chunks and in one sweep and compares the
// site adjacency of both diagrams.
func checkRun(w io.Writer, points []voronoi.Vertex, bbox voronoi.BoundingBox, jobs int, options []voronoi.Option) error {
	parallel, err := voronoi.BuildDiagram(points, bbox, jobs, options...)
	if err != nil {
		return errors.Wrap(err, "parallel build")
	}
	if err := parallel.Validate(); err != nil {
		return errors.Wrap(err, "parallel diagram")
	}

	single, err := voronoi.BuildDiagram(points, bbox, len(points), options...)
	if err != nil {
		return errors.Wrap(err, "single build")
	}

	missing, extra := diffPairs(single.Adjacency(), parallel.Adjacency())
	color.New(color.FgCyan).Fprintf(w, "  chunks=%d rounds=%d edges=%d/%d\n",
		parallel.Report.Chunks, parallel.Report.Rounds, len(parallel.Edges), len(single.Edges))
	if len(missing) > 0 || len(extra) > 0 {
		return errors.Errorf("%d pairs missing, %d extra, first missing %v, first extra %v",
			len(missing), len(extra), firstPair(missing), firstPair(extra))
	}
	return nil
}

// diffPairs compares two sorted pair lists.
func diffPairs(want, got [][2]int) (missing, extra [][2]int) {
	i, j := 0, 0
	for i < len(want) || j < len(got) {
		switch {
		case j == len(got) || (i < len(want) && pairLess(want[i], got[j])):
			missing = append(missing, want[i])
			i++
		case i == len(want) || pairLess(got[j], want[i]):
			extra = append(extra, got[j])
			j++
		default:
			i++
			j++
		}
	}
	return missing, extra
}

func pairLess(a, b [2]int) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	return a[1] < b[1]
}

func firstPair(pairs [][2]int) interface{} {
	if len(pairs) == 0 {
		return "-"
	}
	return pairs[0]
}
