package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/walkthrough"
	"github.com/aretw0/walkthrough/internal/config"
	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/aretw0/walkthrough/pkg/observability"
)

// pageCandidates are the files a page directory may hold in place of Markdown documents,
// in order of preference.
var pageCandidates = []string{
	"walkthrough.yaml",
	"walkthrough.yml",
	"walkthrough.json",
	"page.yaml",
	"page.json",
	"index.html",
}

// ResolvePagePath picks the page source for path.
// A directory holding one of the known page files resolves to that file;
// any other directory is read as a Loam repository.
func ResolvePagePath(path string) string {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return path
	}
	for _, name := range pageCandidates {
		candidate := filepath.Join(path, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return path
}

// CreateEngine initializes an engine with the configured conventions.
// Lifecycle logging is attached when the logger has debug enabled; extra hooks are chained after it.
func CreateEngine(pagePath string, cfg *config.Config, logger *slog.Logger, hooks ...domain.LifecycleHooks) (*walkthrough.Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	all := append([]domain.LifecycleHooks{}, hooks...)
	if debugEnabled(logger) {
		all = append([]domain.LifecycleHooks{observability.LoggingHooks(logger)}, all...)
	}

	engine, err := walkthrough.New(ResolvePagePath(pagePath),
		walkthrough.WithLogger(logger),
		walkthrough.WithLifecycleHooks(observability.Chain(all...)),
		walkthrough.WithOffset(cfg.Tour.Offset),
		walkthrough.WithMarkerPrefix(cfg.Tour.MarkerPrefix),
		walkthrough.WithAnnotationKey(cfg.Tour.Annotation),
	)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}
