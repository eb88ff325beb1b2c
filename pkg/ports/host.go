package ports

import (
	"context"

	"github.com/aretw0/walkthrough/pkg/domain"
)

// Host receives the render intents emitted by the controller after each transition.
// The controller never touches presentation; it only calls these methods.
type Host interface {
	// OnShow renders or repositions the callout for the focused step.
	OnShow(ctx context.Context, placement domain.Placement, description string)

	// OnHighlightChange moves visual emphasis. Either side may be nil.
	OnHighlightChange(ctx context.Context, previous, current *domain.Element)

	// OnEnd tears the callout down.
	OnEnd(ctx context.Context)

	// OnWarn reports a non-fatal convention violation.
	OnWarn(ctx context.Context, message string)
}

// HostFuncs adapts plain functions to the Host interface. Nil fields are ignored.
type HostFuncs struct {
	Show            func(ctx context.Context, placement domain.Placement, description string)
	HighlightChange func(ctx context.Context, previous, current *domain.Element)
	End             func(ctx context.Context)
	Warn            func(ctx context.Context, message string)
}

var _ Host = HostFuncs{}

func (h HostFuncs) OnShow(ctx context.Context, placement domain.Placement, description string) {
	if h.Show != nil {
		h.Show(ctx, placement, description)
	}
}

func (h HostFuncs) OnHighlightChange(ctx context.Context, previous, current *domain.Element) {
	if h.HighlightChange != nil {
		h.HighlightChange(ctx, previous, current)
	}
}

func (h HostFuncs) OnEnd(ctx context.Context) {
	if h.End != nil {
		h.End(ctx)
	}
}

func (h HostFuncs) OnWarn(ctx context.Context, message string) {
	if h.Warn != nil {
		h.Warn(ctx, message)
	}
}
