package memory

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/aretw0/walkthrough/pkg/ports"
)

// Target pairs an element with its geometry.
type Target struct {
	Element domain.Element
	Rect    domain.Rect
}

// Tagged builds a Target carrying the default marker for index and the description annotation.
// An empty description leaves the annotation out.
func Tagged(index int, description string, rect domain.Rect) Target {
	el := domain.Element{
		ID:      "target-" + strconv.Itoa(index),
		Markers: []string{domain.DefaultMarkerPrefix + strconv.Itoa(index)},
	}
	if description != "" {
		el.Annotations = map[string]string{domain.DefaultAnnotationKey: description}
	}
	return Target{Element: el, Rect: rect}
}

// Page implements ports.Page over a programmatic element list.
// Elements keep insertion order, which acts as document order.
// Safe for concurrent use.
type Page struct {
	mu       sync.RWMutex
	elements []domain.Element
	rects    map[string]domain.Rect
}

var (
	_ ports.Page        = (*Page)(nil)
	_ ports.Inspectable = (*Page)(nil)
)

// NewPage creates a page from the given targets.
func NewPage(targets ...Target) (*Page, error) {
	p := &Page{rects: make(map[string]domain.Rect)}
	for _, t := range targets {
		if err := p.Add(t.Element, t.Rect); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Add appends an element. IDs must be unique within the page.
func (p *Page) Add(el domain.Element, rect domain.Rect) error {
	if el.ID == "" {
		return fmt.Errorf("element missing ID")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.rects[el.ID]; exists {
		return fmt.Errorf("duplicate element ID: %s", el.ID)
	}
	p.elements = append(p.elements, el.Clone())
	p.rects[el.ID] = rect
	return nil
}

// Remove deletes an element, simulating a document change.
func (p *Page) Remove(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, el := range p.elements {
		if el.ID == id {
			p.elements = append(p.elements[:i], p.elements[i+1:]...)
			break
		}
	}
	delete(p.rects, id)
}

// Move updates the geometry of an element, simulating a layout change.
func (p *Page) Move(id string, rect domain.Rect) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.rects[id]; ok {
		p.rects[id] = rect
	}
}

// Find returns the first element tagged with marker.
func (p *Page) Find(marker string) (domain.Element, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, el := range p.elements {
		if el.HasMarker(marker) {
			return el.Clone(), true
		}
	}
	return domain.Element{}, false
}

// Bounds returns the stored geometry, or a zero Rect for unknown elements.
func (p *Page) Bounds(el domain.Element) domain.Rect {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.rects[el.ID]
}

// Elements returns a deep copy of the element list in document order.
// Callers may modify the result without affecting the page.
func (p *Page) Elements() []domain.Element {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]domain.Element, len(p.elements))
	for i, el := range p.elements {
		out[i] = el.Clone()
	}
	return out
}
