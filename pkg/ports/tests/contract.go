package tests

import (
	"fmt"
	"testing"

	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/aretw0/walkthrough/pkg/ports"
)

// Target describes one convention-tagged element a page adapter is expected to expose.
type Target struct {
	Index       int
	Description string
	Rect        domain.Rect
}

// StandardTargets is the fixture every page adapter test loads through its own format.
var StandardTargets = []Target{
	{Index: 1, Description: "A", Rect: domain.Rect{Top: 10, Left: 20, Width: 100, Height: 40}},
	{Index: 2, Description: "B", Rect: domain.Rect{Top: 80, Left: 20, Width: 200, Height: 20}},
	{Index: 3, Description: "C", Rect: domain.Rect{Top: 120, Left: 300, Width: 50, Height: 50}},
}

// PageContractTest is a reusable test suite that verifies if an adapter complies with ports.Page.
func PageContractTest(t *testing.T, page ports.Page, targets []Target) {
	t.Helper()

	t.Run("Find_Success", func(t *testing.T) {
		for _, target := range targets {
			marker := fmt.Sprintf("%s%d", domain.DefaultMarkerPrefix, target.Index)
			el, ok := page.Find(marker)
			if !ok {
				t.Fatalf("expected element for marker %s", marker)
			}
			if !el.HasMarker(marker) {
				t.Errorf("element %s does not carry marker %s", el.ID, marker)
			}
			desc, _ := el.Annotation(domain.DefaultAnnotationKey)
			if desc != target.Description {
				t.Errorf("description mismatch for %s. got %q, want %q", marker, desc, target.Description)
			}
			if got := page.Bounds(el); got != target.Rect {
				t.Errorf("bounds mismatch for %s. got %+v, want %+v", marker, got, target.Rect)
			}
		}
	})

	t.Run("Find_NotFound", func(t *testing.T) {
		if _, ok := page.Find(domain.DefaultMarkerPrefix + "999"); ok {
			t.Error("expected no element for unknown marker")
		}
	})

	t.Run("Elements", func(t *testing.T) {
		inspectable, ok := page.(ports.Inspectable)
		if !ok {
			t.Skip("page does not implement ports.Inspectable")
		}
		if got := len(inspectable.Elements()); got < len(targets) {
			t.Errorf("expected at least %d elements, got %d", len(targets), got)
		}
	})
}
