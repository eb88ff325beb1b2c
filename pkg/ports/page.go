package ports

import "github.com/aretw0/walkthrough/pkg/domain"

// ElementLookup finds elements in the host's document.
type ElementLookup interface {
	// Find returns the first element (in document order) tagged with marker.
	// The boolean is false when no element carries the marker.
	Find(marker string) (domain.Element, bool)
}

// GeometryProvider reads the on-screen geometry of an element.
// Reads are synchronous and reflect the layout at the moment of the call.
type GeometryProvider interface {
	Bounds(el domain.Element) domain.Rect
}

// Page is a host document able to both find elements and measure them.
type Page interface {
	ElementLookup
	GeometryProvider
}

// Inspectable defines an interface for pages that can enumerate their elements.
// This is used by tooling (validate, graph, MCP resources), never by the controller.
type Inspectable interface {
	Elements() []domain.Element
}
