package dsl

import (
	"fmt"
	"strconv"

	"github.com/aretw0/walkthrough/pkg/adapters/memory"
	"github.com/aretw0/walkthrough/pkg/domain"
)

// Builder collects the elements of a page in document order.
type Builder struct {
	markerPrefix  string
	annotationKey string
	elements      []*ElementBuilder
	byID          map[string]*ElementBuilder
}

// Option configures the conventions a Builder tags elements with.
type Option func(*Builder)

// WithConvention overrides the marker prefix and annotation key used by Step and Describe.
func WithConvention(markerPrefix, annotationKey string) Option {
	return func(b *Builder) {
		if markerPrefix != "" {
			b.markerPrefix = markerPrefix
		}
		if annotationKey != "" {
			b.annotationKey = annotationKey
		}
	}
}

// New creates a page builder with the default conventions.
func New(opts ...Option) *Builder {
	b := &Builder{
		markerPrefix:  domain.DefaultMarkerPrefix,
		annotationKey: domain.DefaultAnnotationKey,
		byID:          make(map[string]*ElementBuilder),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Element appends an element, or returns the existing builder for id.
func (b *Builder) Element(id string) *ElementBuilder {
	if eb, ok := b.byID[id]; ok {
		return eb
	}
	eb := &ElementBuilder{
		el:      domain.Element{ID: id},
		builder: b,
	}
	b.elements = append(b.elements, eb)
	b.byID[id] = eb
	return eb
}

// Build compiles the page.
func (b *Builder) Build() (*memory.Page, error) {
	targets := make([]memory.Target, 0, len(b.elements))
	for _, eb := range b.elements {
		targets = append(targets, eb.Target())
	}
	page, err := memory.NewPage(targets...)
	if err != nil {
		return nil, fmt.Errorf("failed to build page: %w", err)
	}
	return page, nil
}

// ElementBuilder configures one element.
// Its methods return the builder so calls chain; Element jumps to the next element.
type ElementBuilder struct {
	el      domain.Element
	rect    domain.Rect
	builder *Builder
}

// Step tags the element as the target of step index.
func (e *ElementBuilder) Step(index int) *ElementBuilder {
	return e.Marker(e.builder.markerPrefix + strconv.Itoa(index))
}

// Marker adds a raw marker.
func (e *ElementBuilder) Marker(marker string) *ElementBuilder {
	if !e.el.HasMarker(marker) {
		e.el.Markers = append(e.el.Markers, marker)
	}
	return e
}

// Describe sets the step description annotation.
func (e *ElementBuilder) Describe(text string) *ElementBuilder {
	return e.Annotate(e.builder.annotationKey, text)
}

// Annotate sets an arbitrary annotation.
func (e *ElementBuilder) Annotate(key, value string) *ElementBuilder {
	if e.el.Annotations == nil {
		e.el.Annotations = make(map[string]string)
	}
	e.el.Annotations[key] = value
	return e
}

// At sets the bounding rect.
func (e *ElementBuilder) At(top, left, width, height float64) *ElementBuilder {
	e.rect = domain.Rect{Top: top, Left: left, Width: width, Height: height}
	return e
}

// Element continues with another element of the same page.
func (e *ElementBuilder) Element(id string) *ElementBuilder {
	return e.builder.Element(id)
}

// Build compiles the whole page.
func (e *ElementBuilder) Build() (*memory.Page, error) {
	return e.builder.Build()
}

// Target returns the element and its rect as configured so far.
func (e *ElementBuilder) Target() memory.Target {
	return memory.Target{Element: e.el, Rect: e.rect}
}
