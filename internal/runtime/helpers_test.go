package runtime_test

import (
	"context"
	"fmt"

	"github.com/aretw0/walkthrough/pkg/domain"
)

// fakePage is a minimal in-test document: elements in order, geometry by ID.
type fakePage struct {
	elements []domain.Element
	rects    map[string]domain.Rect
	reads    int
}

func newFakePage() *fakePage {
	return &fakePage{rects: map[string]domain.Rect{}}
}

// tag adds an element carrying the marker for step index and a description.
func (p *fakePage) tag(index int, description string, rect domain.Rect) *fakePage {
	id := fmt.Sprintf("el-%d", index)
	el := domain.Element{
		ID:      id,
		Markers: []string{fmt.Sprintf("%s%d", domain.DefaultMarkerPrefix, index)},
	}
	if description != "" {
		el.Annotations = map[string]string{domain.DefaultAnnotationKey: description}
	}
	p.elements = append(p.elements, el)
	p.rects[id] = rect
	return p
}

func (p *fakePage) remove(index int) {
	marker := fmt.Sprintf("%s%d", domain.DefaultMarkerPrefix, index)
	kept := p.elements[:0]
	for _, el := range p.elements {
		if !el.HasMarker(marker) {
			kept = append(kept, el)
		}
	}
	p.elements = kept
}

func (p *fakePage) Find(marker string) (domain.Element, bool) {
	for _, el := range p.elements {
		if el.HasMarker(marker) {
			return el, true
		}
	}
	return domain.Element{}, false
}

func (p *fakePage) Bounds(el domain.Element) domain.Rect {
	p.reads++
	return p.rects[el.ID]
}

type call struct {
	kind        string
	placement   domain.Placement
	description string
	previous    string
	current     string
	message     string
}

// recordingHost captures every host call in order.
type recordingHost struct {
	calls []call
}

func idOf(el *domain.Element) string {
	if el == nil {
		return ""
	}
	return el.ID
}

func (h *recordingHost) OnShow(_ context.Context, placement domain.Placement, description string) {
	h.calls = append(h.calls, call{kind: "show", placement: placement, description: description})
}

func (h *recordingHost) OnHighlightChange(_ context.Context, previous, current *domain.Element) {
	h.calls = append(h.calls, call{kind: "highlight", previous: idOf(previous), current: idOf(current)})
}

func (h *recordingHost) OnEnd(_ context.Context) {
	h.calls = append(h.calls, call{kind: "end"})
}

func (h *recordingHost) OnWarn(_ context.Context, message string) {
	h.calls = append(h.calls, call{kind: "warn", message: message})
}

func (h *recordingHost) of(kind string) []call {
	var out []call
	for _, c := range h.calls {
		if c.kind == kind {
			out = append(out, c)
		}
	}
	return out
}

func (h *recordingHost) kinds() []string {
	out := make([]string, 0, len(h.calls))
	for _, c := range h.calls {
		out = append(out, c.kind)
	}
	return out
}

func (h *recordingHost) reset() {
	h.calls = nil
}
