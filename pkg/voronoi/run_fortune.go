package voronoi

import (
	"math/bits"
	"sort"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BuildDiagram computes the Voronoi diagram of points. Sites are split into
// chunks of at most maxSitesPerJob sites (rounded to a power of two chunks),
// swept in parallel and merged pairwise in rounds. Open edges are cut to bbox.
//
// Input errors are returned as is; a broken invariant inside a chunk or a
// merge comes back as a *FatalError matching ErrFatal.
func BuildDiagram(points []Vertex, bbox BoundingBox, maxSitesPerJob int, opts ...Option) (*Diagram, error) {
	s := defaultSettings()
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	d, err := build(points, bbox, maxSitesPerJob, s)
	s.metrics.ObserveBuild(err)
	if err != nil {
		s.log.Error("[build] failed", zap.Error(err))
		return nil, err
	}
	return d, nil
}

func validate(points []Vertex, bbox BoundingBox, maxSitesPerJob int) error {
	if len(points) == 0 {
		return ErrNoSites
	}
	if !bbox.Valid() {
		return errors.Wrapf(ErrInvalidBounds, "%+v", bbox)
	}
	if maxSitesPerJob <= 0 {
		return errors.Wrapf(ErrInvalidJobSize, "%d", maxSitesPerJob)
	}
	for i, p := range points {
		if !p.finite() {
			return errors.Wrapf(ErrNonFiniteSite, "site %d (%v, %v)", i, p.X, p.Y)
		}
	}
	return nil
}

func build(points []Vertex, bbox BoundingBox, maxSitesPerJob int, s *settings) (*Diagram, error) {
	if err := validate(points, bbox, maxSitesPerJob); err != nil {
		return nil, err
	}

	sites := prepareSites(points)
	jobs := jobsCount(len(sites), maxSitesPerJob)
	fr := newFrame(points, bbox, s.rayExtentFactor)

	s.log.Info("[build] started",
		zap.Int("sites", len(points)),
		zap.Int("unique", len(sites)),
		zap.Int("jobs", jobs))

	var clip *BoundingBox
	if jobs == 1 {
		clip = &bbox
	}

	started := time.Now()
	parts := make([]*partial, jobs)
	var g errgroup.Group
	for i, chunk := range splitChunks(sites, jobs) {
		i, chunk := i, chunk
		g.Go(func() error {
			return protect(func() {
				t := time.Now()
				parts[i] = buildChunk(chunk, fr, clip, s)
				s.metrics.ObserveChunk(time.Since(t))
			})
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	chunkTime := time.Since(started)

	started = time.Now()
	rounds := 0
	for len(parts) > 1 {
		rounds++
		round := rounds
		next := make([]*partial, len(parts)/2)
		var g errgroup.Group
		for i := range next {
			i := i
			g.Go(func() error {
				return protect(func() {
					t := time.Now()
					next[i] = mergePartials(parts[2*i], parts[2*i+1], fr, s)
					s.metrics.ObserveMerge(round, time.Since(t))
				})
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		s.log.Debug("[build] merge round done", zap.Int("round", round), zap.Int("partials", len(next)))
		parts = next
	}
	mergeTime := time.Since(started)

	final := parts[0]
	edges := final.edges
	if clip == nil {
		edges = clipEdges(edges, bbox)
	}

	regions := make([][]int, len(points))
	for i, e := range edges {
		regions[e.Left] = append(regions[e.Left], i)
		regions[e.Right] = append(regions[e.Right], i)
	}

	report := Report{
		Sites:        len(points),
		UniqueSites:  len(sites),
		Chunks:       jobs,
		Rounds:       rounds,
		Edges:        len(edges),
		SiteEvents:   final.stats.SiteEvents,
		CircleEvents: final.stats.CircleEvents,
		StaleEvents:  final.stats.StaleEvents,
		ChunkTime:    chunkTime,
		MergeTime:    mergeTime,
	}
	s.metrics.ObserveSites(len(points))
	s.metrics.ObserveEdges(len(edges))
	s.log.Info("[build] done",
		zap.Int("edges", len(edges)),
		zap.Int("chunks", jobs),
		zap.Int("rounds", rounds),
		zap.Duration("chunk_time", chunkTime),
		zap.Duration("merge_time", mergeTime))

	return &Diagram{
		Sites:   append([]Vertex(nil), points...),
		Edges:   edges,
		Regions: regions,
		Report:  report,
	}, nil
}

// protect runs fn and turns a fatal build panic into an error.
func protect(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recoverFatal(r)
		}
	}()
	fn()
	return nil
}

// prepareSites tags points with their index, sorts them by x then y and
// drops exact duplicates after the first occurrence.
func prepareSites(points []Vertex) []Site {
	sites := make([]Site, len(points))
	for i, p := range points {
		sites[i] = Site{ID: i, Vertex: p}
	}
	sort.SliceStable(sites, func(i, j int) bool {
		return lessXY(sites[i].Vertex, sites[j].Vertex)
	})
	unique := sites[:0]
	for _, site := range sites {
		if len(unique) > 0 && site.Vertex == unique[len(unique)-1].Vertex {
			continue
		}
		unique = append(unique, site)
	}
	return unique
}

// jobsCount is ceilPow2(ceil(n / maxSitesPerJob)), halved until no chunk is
// empty.
func jobsCount(n, maxSitesPerJob int) int {
	jobs := ceilPow2((n + maxSitesPerJob - 1) / maxSitesPerJob)
	for jobs > 1 && jobs > n {
		jobs /= 2
	}
	return jobs
}

func ceilPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// splitChunks cuts sorted sites into jobs contiguous chunks of near equal size.
func splitChunks(sites []Site, jobs int) [][]Site {
	chunks := make([][]Site, jobs)
	n := len(sites)
	for i := range chunks {
		chunks[i] = sites[i*n/jobs : (i+1)*n/jobs]
	}
	return chunks
}
