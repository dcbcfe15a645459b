package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dgallion1/docline/internal/config"
	"github.com/dgallion1/docline/internal/heading"
	"github.com/dgallion1/docline/internal/outline"
	"github.com/dgallion1/docline/internal/parser"
	"github.com/dgallion1/docline/internal/sections"
)

func main() {
	cfg := config.Load()
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	entries, err := os.ReadDir(cfg.InputDir)
	if err != nil {
		log.Error("read input dir", "dir", cfg.InputDir, "error", err)
		os.Exit(1)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !parser.IsSupportedExtension(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(cfg.InputDir, e.Name()))
	}
	if len(files) == 0 {
		log.Info("no supported documents found", "dir", cfg.InputDir)
		return
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		log.Error("create output dir", "dir", cfg.OutputDir, "error", err)
		os.Exit(1)
	}

	log.Info("starting batch extraction",
		"files", len(files),
		"concurrency", cfg.BatchConcurrency,
		"profile", cfg.Profile,
	)

	// Per-file failures are logged and counted, never abort the sweep.
	var succeeded, failed atomic.Int64
	var g errgroup.Group
	g.SetLimit(cfg.BatchConcurrency)
	for _, path := range files {
		g.Go(func() error {
			if err := processFile(ctx, cfg, log, path); err != nil {
				log.Error("extraction failed", "file", filepath.Base(path), "error", err)
				failed.Add(1)
				return nil
			}
			succeeded.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	log.Info("batch complete", "succeeded", succeeded.Load(), "failed", failed.Load())
	if succeeded.Load() == 0 {
		os.Exit(1)
	}
}

func processFile(ctx context.Context, cfg config.Config, log *slog.Logger, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	name := filepath.Base(path)
	p, err := parser.ForFile(name)
	if err != nil {
		return err
	}
	if pdf, ok := p.(*parser.PDFParser); ok {
		pdf.FallbackPdftotext = cfg.PDFFallbackPdftotext
	}

	src, err := p.Parse(ctx, f, name)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	// Declared-outline formats skip layout analysis entirely.
	var headings []outline.Heading
	if len(src.Outline) > 0 {
		headings = src.Outline
	} else {
		profile := heading.ProfileByName(cfg.Profile)
		if profile.Strict != nil {
			headings = heading.ExtractStrict(src.Runs, profile)
		} else {
			headings = heading.Extract(src.Runs, profile)
		}
	}

	doc := outline.BuildDocument(src.Title, headings)
	if cfg.Sections && len(src.Runs) > 0 {
		doc.Sections = sections.BuildSections(src.Runs, headings)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	out := filepath.Join(cfg.OutputDir, strings.TrimSuffix(name, filepath.Ext(name))+".json")
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	log.Info("extracted", "file", name, "headings", len(headings), "output", out)
	return nil
}
