package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/docline/internal/heading"
	"github.com/dgallion1/docline/internal/outline"
	"github.com/dgallion1/docline/internal/parser"
	"github.com/dgallion1/docline/internal/sections"
	"github.com/dgallion1/docline/internal/sink"
)

// Worker processes a single document job.
type Worker struct {
	sink        *sink.Client
	stats       *Stats
	log         *slog.Logger
	pdfFallback bool
}

func NewWorker(sinkClient *sink.Client, stats *Stats, log *slog.Logger, pdfFallback bool) *Worker {
	return &Worker{
		sink:        sinkClient,
		stats:       stats,
		log:         log,
		pdfFallback: pdfFallback,
	}
}

// Process runs the full extraction pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)
	start := time.Now()

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	if pdf, ok := p.(*parser.PDFParser); ok {
		pdf.FallbackPdftotext = w.pdfFallback
	}

	src, err := p.Parse(ctx, bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	// Phase 2: Analyze and classify. Formats that declare their own
	// outline skip the detector.
	var headings []outline.Heading
	if len(src.Outline) > 0 {
		job.SetStatus(StatusClassifying, "native outline")
		headings = src.Outline
	} else {
		job.SetStatus(StatusAnalyzing, "analyzing layout")
		profile := heading.ProfileByName(job.Profile)
		job.SetStatus(StatusClassifying, "classifying")
		if profile.Strict != nil {
			headings = heading.ExtractStrict(src.Runs, profile)
		} else {
			headings = heading.Extract(src.Runs, profile)
		}
	}

	doc := outline.BuildDocument(src.Title, headings)

	// Phase 3: Link sections when requested. Native-outline formats carry
	// no runs to build content from.
	if job.Sections && len(src.Runs) > 0 {
		job.SetStatus(StatusLinking, "linking sections")
		doc.Sections = sections.BuildSections(src.Runs, headings)
	}

	job.SetResult(doc)
	w.stats.RecordExtraction(time.Since(start), headings)
	log.Info("extraction complete", "headings", len(headings), "elapsed_ms", time.Since(start).Milliseconds())

	// Phase 4: Optional sink delivery. Sink trouble never fails the job;
	// the result is still served from the job store.
	if w.sink != nil {
		if err := w.deliver(ctx, doc); err != nil {
			log.Warn("sink delivery failed", "error", err)
		}
	}

	job.SetStatus(StatusCompleted, "done")
}

// deliver pushes one document to the sink with bounded retries.
func (w *Worker) deliver(ctx context.Context, doc outline.Document) error {
	var lastErr error
	for attempt := range MaxRetries {
		lastErr = w.sink.Push(ctx, doc)
		if lastErr == nil || !IsRetryable(lastErr) {
			return lastErr
		}
		w.log.Warn("retryable sink error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return lastErr
}
