package walkthrough

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aretw0/walkthrough/internal/runtime"
	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/aretw0/walkthrough/pkg/ports"
	"github.com/google/uuid"
)

// Engine is the high-level entry point of the library.
// It binds a page to the tour conventions and hands out one Tour per host session.
type Engine struct {
	page          ports.Page
	hooks         domain.LifecycleHooks
	logger        *slog.Logger
	offset        float64
	markerPrefix  string
	annotationKey string
	Name          string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithPage injects a page, bypassing the default file-based page sources.
func WithPage(p ports.Page) Option {
	return func(e *Engine) {
		e.page = p
	}
}

// WithLifecycleHooks registers observability hooks on every tour.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithOffset sets the horizontal gap between target and callout (default 10).
func WithOffset(offset float64) Option {
	return func(e *Engine) {
		e.offset = offset
	}
}

// WithMarkerPrefix changes the marker convention (default "tour-target-").
// An empty prefix keeps the default.
func WithMarkerPrefix(prefix string) Option {
	return func(e *Engine) {
		if prefix != "" {
			e.markerPrefix = prefix
		}
	}
}

// WithAnnotationKey changes the annotation holding descriptions (default "walkthrough").
func WithAnnotationKey(key string) Option {
	return func(e *Engine) {
		if key != "" {
			e.annotationKey = key
		}
	}
}

// New initializes an Engine.
// By default the page is read from pagePath (a Loam directory, an HTML file or a YAML/JSON manifest).
// If WithPage is provided, pagePath is only used as a label and may be empty.
func New(pagePath string, opts ...Option) (*Engine, error) {
	eng := &Engine{
		offset:        domain.DefaultOffset,
		markerPrefix:  domain.DefaultMarkerPrefix,
		annotationKey: domain.DefaultAnnotationKey,
	}
	for _, opt := range opts {
		opt(eng)
	}

	if pagePath != "" {
		eng.Name = strings.TrimSuffix(filepath.Base(pagePath), filepath.Ext(pagePath))
	}

	if eng.page == nil {
		if pagePath == "" {
			return nil, fmt.Errorf("pagePath is required when no custom page is provided")
		}
		page, title, err := OpenPage(context.Background(), pagePath, eng.markerPrefix, eng.annotationKey)
		if err != nil {
			return nil, err
		}
		eng.page = page
		if title != "" {
			eng.Name = title
		}
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("page", eng.Name)
	}

	return eng, nil
}

// Page returns the page the engine resolves steps against.
func (e *Engine) Page() ports.Page {
	return e.page
}

// Marker returns the marker that tags the target of step index.
func (e *Engine) Marker(index int) string {
	return runtime.NewStepResolver(e.page, e.markerPrefix, e.annotationKey).Marker(index)
}

// MarkerPrefix returns the prefix that, followed by a step index, forms a marker.
func (e *Engine) MarkerPrefix() string {
	return e.markerPrefix
}

// AnnotationKey returns the annotation holding step descriptions.
func (e *Engine) AnnotationKey() string {
	return e.annotationKey
}

// CountSteps returns the default step count for hosts that do not declare one.
// Inspectable pages report the highest index tagged anywhere, so a numbering gap is
// walked into and warned about instead of silently shortening the tour. Other pages
// count the consecutive steps starting at 1. The tour itself never scans.
func (e *Engine) CountSteps() int {
	if in, ok := e.page.(ports.Inspectable); ok {
		return highestStep(in.Elements(), e.markerPrefix)
	}
	resolver := runtime.NewStepResolver(e.page, e.markerPrefix, e.annotationKey)
	n := 0
	for {
		if _, err := resolver.Resolve(n + 1); err != nil {
			return n
		}
		n++
	}
}

// highestStep returns the largest N for which some element carries prefix+N.
// Markers whose suffix is not a canonical positive integer never resolve and are skipped.
func highestStep(elements []domain.Element, prefix string) int {
	highest := 0
	for _, el := range elements {
		for _, marker := range el.Markers {
			suffix, ok := strings.CutPrefix(marker, prefix)
			if !ok {
				continue
			}
			index, err := strconv.Atoi(suffix)
			if err != nil || index < 1 || strconv.Itoa(index) != suffix {
				continue
			}
			highest = max(highest, index)
		}
	}
	return highest
}

// Resolve looks up a single step without starting a tour.
func (e *Engine) Resolve(index int) (domain.Step, error) {
	return runtime.NewStepResolver(e.page, e.markerPrefix, e.annotationKey).Resolve(index)
}

// Inspect returns every element of the page, for tooling.
func (e *Engine) Inspect() ([]domain.Element, error) {
	if in, ok := e.page.(ports.Inspectable); ok {
		return in.Elements(), nil
	}
	return nil, fmt.Errorf("current page does not support inspection")
}

// NewTour creates an inactive tour bound to host. An empty sessionID gets a random one.
func (e *Engine) NewTour(sessionID string, host ports.Host) *Tour {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	ctrl := runtime.NewController(e.page, e.page, host,
		runtime.WithLogger(e.logger.With("session_id", sessionID)),
		runtime.WithLifecycleHooks(e.hooks),
		runtime.WithOffset(e.offset),
		runtime.WithMarkerPrefix(e.markerPrefix),
		runtime.WithAnnotationKey(e.annotationKey),
		runtime.WithSessionID(sessionID),
	)
	return &Tour{id: sessionID, ctrl: ctrl}
}

// Restore rebuilds a tour from a persisted state without calling the host.
func (e *Engine) Restore(state *domain.State, host ports.Host) (*Tour, error) {
	if state == nil {
		return nil, fmt.Errorf("%w: nil state", domain.ErrInvalidState)
	}
	t := e.NewTour(state.SessionID, host)
	if err := t.ctrl.Restore(state); err != nil {
		return nil, err
	}
	return t, nil
}

// Tour is one guided walk through the page. It is not safe for concurrent use.
type Tour struct {
	id   string
	ctrl *runtime.Controller
}

// ID returns the session identifier of the tour.
func (t *Tour) ID() string { return t.id }

// Activate starts the tour with totalSteps steps.
func (t *Tour) Activate(ctx context.Context, totalSteps int) { t.ctrl.Activate(ctx, totalSteps) }

// Next advances, or completes the tour on the last step.
func (t *Tour) Next(ctx context.Context) { t.ctrl.Next(ctx) }

// Back returns to the previous step.
func (t *Tour) Back(ctx context.Context) { t.ctrl.Back(ctx) }

// Close dismisses the tour.
func (t *Tour) Close(ctx context.Context) { t.ctrl.Close(ctx) }

// Apply dispatches a parsed navigation command.
func (t *Tour) Apply(ctx context.Context, cmd domain.Command) error {
	switch cmd {
	case domain.CommandNext:
		t.Next(ctx)
	case domain.CommandBack:
		t.Back(ctx)
	case domain.CommandClose:
		t.Close(ctx)
	default:
		return fmt.Errorf("%w: %q", domain.ErrInvalidCommand, cmd)
	}
	return nil
}

// State returns a snapshot of the tour state.
func (t *Tour) State() *domain.State { return t.ctrl.State() }

// Phase returns the lifecycle phase.
func (t *Tour) Phase() domain.Phase { return t.ctrl.Phase() }

// Current recomputes the placement of the focused step without notifying the host.
func (t *Tour) Current(ctx context.Context) (domain.Placement, domain.Step, error) {
	return t.ctrl.Current(ctx)
}
