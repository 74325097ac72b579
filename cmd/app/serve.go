package main

import (
	"fmt"
	"html"
	"net/http"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/0x0FACED/go-fortune-parallel/pkg/config"
	"github.com/0x0FACED/go-fortune-parallel/pkg/logger"
	"github.com/0x0FACED/go-fortune-parallel/pkg/metrics"
	"github.com/0x0FACED/go-fortune-parallel/pkg/voronoi"
	"github.com/0x0FACED/go-fortune-parallel/static"
)

const (
	defaultWidth    = 1000
	defaultHeight   = 1000
	defaultStations = 12
	maxFormValue    = 5000
)

func newServeCommand(load loadFunc) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the diagram page and Prometheus metrics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return serve(cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides server.addr")

	return cmd
}

func serve(cfg *config.Config) error {
	log := logger.NewWithLevel(cfg.LogLevel())
	collector := metrics.New()

	h := &diagramHandler{cfg: cfg, metrics: collector, log: log}

	mux := http.NewServeMux()
	mux.Handle("/", h)
	mux.Handle(cfg.Server.MetricsPath, collector.Handler())

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("[serve] listening",
		zap.String("addr", cfg.Server.Addr),
		zap.String("metrics", cfg.Server.MetricsPath))
	fmt.Printf("Сервер запущен на http://localhost%s\n", cfg.Server.Addr)

	return srv.ListenAndServe()
}

type diagramHandler struct {
	cfg     *config.Config
	metrics *metrics.Collector
	log     *logger.ZapLogger
}

// Параметры формы. Битые или пустые поля оставляют значение по умолчанию.
type diagramForm struct {
	width, height int
	stations      int
	jobs          int
	seed          int64
	random        bool
}

func (h *diagramHandler) parseForm(r *http.Request) diagramForm {
	f := diagramForm{
		width:    defaultWidth,
		height:   defaultHeight,
		stations: defaultStations,
		jobs:     h.cfg.Build.MaxSitesPerJob,
		seed:     time.Now().UnixNano() % 1_000_000,
	}
	if r.Method != http.MethodPost {
		return f
	}
	if err := r.ParseForm(); err != nil {
		h.log.Warn("[serve] bad form", zap.Error(err))
		return f
	}

	f.width = formInt(r, "width", f.width)
	f.height = formInt(r, "height", f.height)
	f.stations = formInt(r, "stations", f.stations)
	f.jobs = formInt(r, "jobs", f.jobs)
	if v, err := strconv.ParseInt(r.FormValue("seed"), 10, 64); err == nil {
		f.seed = v
	}
	f.random = r.FormValue("random") == "true"
	return f
}

func formInt(r *http.Request, key string, def int) int {
	v, err := strconv.Atoi(r.FormValue(key))
	if err != nil || v <= 0 || v > maxFormValue {
		return def
	}
	return v
}

// http обработчик страницы с диаграммой и формой для ввода данных
func (h *diagramHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	form := h.parseForm(r)
	bbox := voronoi.NewBoundingBox(0, float64(form.width), 0, float64(form.height))

	var stations []voronoi.Vertex
	if form.random {
		stations = generateRandStations(form.stations, bbox, form.seed)
	} else {
		stations = generateFixStations(form.stations, bbox)
	}

	// Логи построения показываем на странице, поэтому логгер свой на каждый запрос
	reqLog := logger.New()

	options := append([]voronoi.Option{
		voronoi.WithLogger(reqLog),
		voronoi.WithMetrics(h.metrics),
	}, h.cfg.BuildOptions()...)

	diagram, err := voronoi.BuildDiagram(stations, bbox, form.jobs, options...)

	fmt.Fprintln(w, static.Form(form.width, form.height, form.stations, form.jobs, form.seed, form.random))

	report := ""
	if err != nil {
		h.log.Error("[serve] build failed", zap.Error(err))
		report = "Ошибка построения: " + html.EscapeString(err.Error())
		diagram = &voronoi.Diagram{Sites: stations}
	} else {
		report = formatReport(diagram.Report)
	}

	if err := voronoiToEcharts(diagram).Render(w); err != nil {
		h.log.Error("[serve] render failed", zap.Error(err))
	}

	fmt.Fprintln(w, static.Report(report))
	fmt.Fprintln(w, reqLog.HTML())
	fmt.Fprintln(w, static.Part3)
}

func formatReport(rep voronoi.Report) string {
	return fmt.Sprintf("Станций: %s, чанков: %d, раундов слияния: %d, рёбер: %s, построение: %s, слияние: %s",
		humanize.Comma(int64(rep.Sites)),
		rep.Chunks,
		rep.Rounds,
		humanize.Comma(int64(rep.Edges)),
		rep.ChunkTime.Round(time.Microsecond),
		rep.MergeTime.Round(time.Microsecond))
}

func prepareScatter(scatter *charts.Scatter) {
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Height: "580px",
			Width:  "1020px",
		}),
		charts.WithLegendOpts(opts.Legend{
			TextStyle: &opts.TextStyle{
				Color: "white",
			},
			Right: "10%",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:                "Диаграмма Вороного (параллельный Форчун)",
			TitleBackgroundColor: "white",
			Left:                 "10%",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value",
			Name: "Ширина",
			AxisLabel: &opts.AxisLabel{
				Color: "white",
			},
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Name: "Высота",
			AxisLabel: &opts.AxisLabel{
				Color: "white",
			},
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(false),
			},
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "horizontal",
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			FilterMode: "none",
			Orient:     "vertical",
		}),
	)
}

// Преобразуем границы диаграммы в серии echarts
func voronoiToEcharts(diagram *voronoi.Diagram) *charts.Scatter {
	scatter := charts.NewScatter()

	points := make([]opts.ScatterData, 0, len(diagram.Sites))
	for _, station := range diagram.Sites {
		points = append(points, opts.ScatterData{
			Value: []float64{station.X, station.Y},
		})
	}

	prepareScatter(scatter)

	scatter.AddSeries("Станции", points).
		SetSeriesOptions(
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color: "lightgreen",
			}),
		)

	for _, edge := range diagram.Edges {
		line := charts.NewLine()
		line.SetGlobalOptions(
			charts.WithXAxisOpts(opts.XAxis{Show: opts.Bool(true)}),
			charts.WithYAxisOpts(opts.YAxis{Show: opts.Bool(true)}),
		)

		line.AddSeries("Границы", []opts.LineData{
			{Value: []float64{edge.Start.X, edge.Start.Y}},
			{Value: []float64{edge.End.X, edge.End.Y}},
		}).SetSeriesOptions(
			charts.WithLineStyleOpts(opts.LineStyle{
				Width: 2,
			}),
		)

		scatter.Overlap(line)
	}

	return scatter
}
