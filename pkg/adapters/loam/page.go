// Package loam reads a tour page from a directory of Markdown documents.
//
// Each document describes one element:
//
//	---
//	id: search
//	step: 1
//	rect: {top: 10, left: 20, width: 100, height: 40}
//	---
//	Search anything from here.
//
// Documents are ordered by their "order" field, then by document ID, which stands in for document order.
package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/walkthrough/pkg/adapters/manifest"
	"github.com/aretw0/walkthrough/pkg/adapters/memory"
)

// Page is a memory page loaded from a Loam repository.
type Page struct {
	*memory.Page
	Repo *loam.TypedRepository[ElementMetadata]

	markerPrefix  string
	annotationKey string
}

// Option customises how documents are converted.
type Option func(*Page)

// WithConvention overrides the marker prefix and annotation key used for the step and body shorthands.
func WithConvention(markerPrefix, annotationKey string) Option {
	return func(p *Page) {
		p.markerPrefix = markerPrefix
		p.annotationKey = annotationKey
	}
}

// Open initialises a read-only Loam repository at dir and loads it.
func Open(ctx context.Context, dir string, opts ...Option) (*Page, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// The page is never written, so keep Loam out of its sandbox behaviour.
	repo, err := loam.Init(absPath, loam.WithReadOnly(true))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	return New(ctx, loam.NewTypedRepository[ElementMetadata](repo), opts...)
}

// New loads every document of the repository into a page.
func New(ctx context.Context, repo *loam.TypedRepository[ElementMetadata], opts ...Option) (*Page, error) {
	p := &Page{Repo: repo}
	for _, opt := range opts {
		opt(p)
	}
	if err := p.Reload(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

type entry struct {
	docID string
	meta  ElementMetadata
	body  string
}

// Reload re-reads the repository and replaces the page content.
func (p *Page) Reload(ctx context.Context) error {
	docs, err := p.Repo.List(ctx)
	if err != nil {
		return fmt.Errorf("loam list failed: %w", err)
	}

	entries := make([]entry, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, entry{docID: doc.ID, meta: doc.Data, body: doc.Content})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].meta.Order != entries[j].meta.Order {
			return entries[i].meta.Order < entries[j].meta.Order
		}
		return entries[i].docID < entries[j].docID
	})

	targets := make([]memory.Target, 0, len(entries))
	seen := make(map[string]string)
	for _, e := range entries {
		spec := manifest.ElementSpec{
			ID:          e.meta.ID,
			Step:        e.meta.Step,
			Description: strings.TrimSpace(e.body),
			Markers:     e.meta.Markers,
			Annotations: e.meta.Annotations,
			Rect:        e.meta.Rect,
		}
		target, err := spec.Target(p.markerPrefix, p.annotationKey, trimExtension(e.docID))
		if err != nil {
			return fmt.Errorf("document %s: %w", e.docID, err)
		}

		id := target.Element.ID
		if existing, ok := seen[id]; ok {
			return fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existing, e.docID)
		}
		seen[id] = e.docID
		targets = append(targets, target)
	}

	page, err := memory.NewPage(targets...)
	if err != nil {
		return err
	}
	p.Page = page
	return nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
