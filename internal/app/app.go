package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"iplreport/internal/analytics"
	"iplreport/internal/config"
	"iplreport/internal/dataprocessing"
	"iplreport/internal/exporter"
	"iplreport/internal/files"
	"iplreport/internal/infrastructure"
	"iplreport/internal/report"
	"iplreport/pkg/contracts"
	"iplreport/pkg/contracts/domain"
)

// Result describes a finished report run
type Result struct {
	TraceID     string
	InputPath   string
	OutputPath  string
	PageTitles  []string
	Deliveries  int
	ExportPaths []string
	Summary     *analytics.Summary
	Duration    time.Duration
}

// Reporter runs the load -> aggregate -> render -> write pipeline
type Reporter struct {
	cfg    *config.Config
	logger *slog.Logger
	otel   *infrastructure.OTelProviders
	theme  report.Theme
	now    func() time.Time

	// ownsOTel is set when the providers were created by NewReporter
	ownsOTel bool

	state *RunState
}

// NewReporter wires a reporter from its configuration. A nil logger uses the
// global logger. Nil providers get an in-memory telemetry setup that the
// reporter owns and releases in Close; caller-supplied providers are left
// for the caller to shut down.
func NewReporter(cfg *config.Config, logger *slog.Logger, providers *infrastructure.OTelProviders) (*Reporter, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	owns := false
	if providers == nil {
		var err error
		providers, err = infrastructure.InitializeOTel(nil, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
		}
		owns = true
	}

	return &Reporter{
		cfg:      cfg,
		logger:   infrastructure.WithComponent(logger, "reporter"),
		otel:     providers,
		theme:    report.DefaultTheme(),
		now:      time.Now,
		ownsOTel: owns,
	}, nil
}

// Close shuts down telemetry providers created by NewReporter. It is safe to
// call more than once.
func (r *Reporter) Close(ctx context.Context) error {
	if !r.ownsOTel {
		return nil
	}
	r.ownsOTel = false
	return r.otel.Shutdown(ctx)
}

// State returns the state of the last run, nil before the first run
func (r *Reporter) State() *RunState {
	return r.state
}

// AnalysisOptions maps the analysis section of the config
func AnalysisOptions(cfg config.AnalysisConfig) analytics.Options {
	return analytics.Options{
		FeaturedPlayer:     cfg.FeaturedPlayer,
		TopScorers:         cfg.TopScorers,
		TopBoundaryHitters: cfg.TopBoundaryHitters,
		TopDeathHitters:    cfg.TopDeathHitters,
		DeathOversAfter:    cfg.DeathOversAfter,
		TopInnings:         cfg.TopInnings,
		StrikeRateMinRuns:  cfg.StrikeRateMinRuns,
		TopStrikeRates:     cfg.TopStrikeRates,
		TeamBuckets:        cfg.TeamBuckets,
	}
}

// Run produces the report. The input is resolved before anything is written,
// so a missing delivery log never leaves an output file behind.
func (r *Reporter) Run(ctx context.Context) (result *Result, err error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	traceID := infrastructure.GetTraceID(ctx)
	state := NewRunState(traceID, 0)
	r.state = state

	ctx, span := r.otel.Tracer.Start(ctx, "report.run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("run.id", traceID),
			attribute.String("report.output", r.cfg.Output.Path),
		))

	defer func() {
		outcome := "success"
		if err != nil {
			outcome = "failure"
			state.Fail(err)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			infrastructure.WithError(r.logger, err).ErrorContext(ctx, "report run failed",
				slog.String("state", state.String()))
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()

		r.otel.Metrics.RecordRun(ctx, outcome)
		rt := r.otel.Runtime.Collect(ctx)
		r.logger.DebugContext(ctx, "runtime usage",
			slog.Int64("heap_alloc_bytes", rt.HeapAlloc),
			slog.Int64("total_alloc_bytes", rt.TotalAlloc),
			slog.Uint64("gc_count", uint64(rt.GCCount)))
		if werr := r.otel.WriteMetrics(); werr != nil {
			r.logger.WarnContext(ctx, "failed to write metrics file", slog.String("error", werr.Error()))
		}
	}()

	r.logger.InfoContext(ctx, "report run starting", slog.String("config", r.cfg.String()))

	input, err := files.FindFirst(ctx, r.cfg.InputCandidates()...)
	if err != nil {
		return nil, err
	}

	deliveries, err := r.load(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := state.Loaded(); err != nil {
		return nil, err
	}

	summary, err := r.aggregate(ctx, deliveries)
	if err != nil {
		return nil, err
	}
	if err := state.Aggregated(); err != nil {
		return nil, err
	}

	exports, err := r.export(ctx, summary)
	if err != nil {
		return nil, err
	}

	titles, err := r.render(ctx, state, summary)
	if err != nil {
		return nil, err
	}

	result = &Result{
		TraceID:     traceID,
		InputPath:   input,
		OutputPath:  r.cfg.Output.Path,
		PageTitles:  titles,
		Deliveries:  len(deliveries),
		ExportPaths: exports,
		Summary:     summary,
		Duration:    state.Duration(),
	}

	r.logger.InfoContext(ctx, "report run complete",
		slog.String("output", result.OutputPath),
		slog.Int("pages", len(titles)),
		slog.Int("deliveries", result.Deliveries),
		slog.Duration("duration", result.Duration))
	return result, nil
}

func (r *Reporter) load(ctx context.Context, input string) ([]domain.Delivery, error) {
	started := time.Now()
	ctx, span := r.otel.Tracer.Start(ctx, "report.load",
		trace.WithAttributes(attribute.String("input.path", input)))
	defer span.End()

	r.logger.InfoContext(ctx, "loading delivery log", slog.String("path", input))

	deliveries, err := dataprocessing.LoadDeliveries(ctx, input)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("deliveries", len(deliveries)))
	r.otel.Metrics.DeliveriesLoaded.Add(ctx, int64(len(deliveries)))
	r.otel.Metrics.RecordStage(ctx, "load", started)

	r.logger.InfoContext(ctx, "delivery log loaded",
		slog.Int("deliveries", len(deliveries)),
		slog.Duration("duration", time.Since(started)))
	return deliveries, nil
}

func (r *Reporter) aggregate(ctx context.Context, deliveries []domain.Delivery) (*analytics.Summary, error) {
	started := time.Now()
	ctx, span := r.otel.Tracer.Start(ctx, "report.aggregate")
	defer span.End()

	summary, err := analytics.Summarize(deliveries, AnalysisOptions(r.cfg.Analysis))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	r.otel.Metrics.RecordStage(ctx, "aggregate", started)

	r.logger.InfoContext(ctx, "summary computed",
		slog.Int("matches", summary.Overview.Matches),
		slog.Int("batsmen", summary.Overview.Batsmen),
		slog.Int("total_runs", summary.Overview.TotalRuns))
	return summary, nil
}

// export writes the optional workbook and CSV tables
func (r *Reporter) export(ctx context.Context, summary *analytics.Summary) ([]string, error) {
	if r.cfg.Export.WorkbookPath == "" && r.cfg.Export.CSVDir == "" {
		return nil, nil
	}

	started := time.Now()
	ctx, span := r.otel.Tracer.Start(ctx, "report.export")
	defer span.End()

	tables := exporter.SummaryTables(summary)
	var paths []string

	if path := r.cfg.Export.WorkbookPath; path != "" {
		if err := exporter.WriteWorkbook(path, tables); err != nil {
			span.RecordError(err)
			return nil, err
		}
		paths = append(paths, path)
	}

	if dir := r.cfg.Export.CSVDir; dir != "" {
		written, err := exporter.NewCSVWriter(dir).WriteTables(tables)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		paths = append(paths, written...)
	}

	r.otel.Metrics.RecordStage(ctx, "export", started)
	r.logger.InfoContext(ctx, "summary tables exported", slog.Int("files", len(paths)))
	return paths, nil
}

// render draws every page in order and closes the document
func (r *Reporter) render(ctx context.Context, state *RunState, summary *analytics.Summary) ([]string, error) {
	started := time.Now()
	ctx, span := r.otel.Tracer.Start(ctx, "report.render")
	defer span.End()

	pages := report.Pages(summary)
	state.ExpectPages(len(pages))

	doc := report.NewDocument(r.theme, r.metadata())
	doc.SetVerify(r.cfg.Output.Verify)
	doc.SetLogger(infrastructure.WithComponent(r.logger, "document"))

	for i, page := range pages {
		if err := r.renderPage(ctx, doc, i+1, page); err != nil {
			span.RecordError(err)
			return nil, err
		}
		if err := state.PageRendered(i + 1); err != nil {
			return nil, err
		}
	}

	if err := doc.Close(r.cfg.Output.Path); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := state.Closed(); err != nil {
		return nil, err
	}

	r.otel.Metrics.RecordStage(ctx, "render", started)
	return doc.Titles(), nil
}

func (r *Reporter) renderPage(ctx context.Context, doc *report.Document, number int, page report.Page) error {
	ctx, span := r.otel.Tracer.Start(ctx, "report.page",
		trace.WithAttributes(
			attribute.Int("page.number", number),
			attribute.String("page.title", page.Title())))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := doc.AddPage(page); err != nil {
		return err
	}

	r.otel.Metrics.PagesRendered.Add(ctx, 1)
	r.logger.DebugContext(ctx, "page rendered",
		slog.Int("page", number),
		slog.String("title", page.Title()))
	return nil
}

func (r *Reporter) metadata() report.Metadata {
	return report.Metadata{
		Title:     "IPL Batting Analysis",
		Subject:   fmt.Sprintf("Batting statistics and %s performance", r.cfg.Analysis.FeaturedPlayer),
		Author:    contracts.ProductName,
		Creator:   contracts.GetVersionString(),
		Keywords:  "IPL cricket batting",
		CreatedAt: r.now(),
	}
}
