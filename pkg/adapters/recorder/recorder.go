// Package recorder provides a ports.Host that records every call as a domain.Effect.
//
// Hosts that cannot receive callbacks directly (an HTTP client, an MCP agent, a JSON pipe)
// apply a command against a recorder and ship the drained effects instead.
package recorder

import (
	"context"
	"sync"

	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/aretw0/walkthrough/pkg/ports"
)

// Recorder implements ports.Host. Safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	effects []domain.Effect
	onEmit  func(domain.Effect)
}

var _ ports.Host = (*Recorder)(nil)

// New creates a recorder. onEmit, if not nil, is called synchronously for every effect.
func New(onEmit func(domain.Effect)) *Recorder {
	return &Recorder{onEmit: onEmit}
}

func (r *Recorder) add(e domain.Effect) {
	r.mu.Lock()
	r.effects = append(r.effects, e)
	r.mu.Unlock()

	if r.onEmit != nil {
		r.onEmit(e)
	}
}

func cloneElement(el *domain.Element) *domain.Element {
	if el == nil {
		return nil
	}
	c := *el
	return &c
}

func (r *Recorder) OnShow(_ context.Context, placement domain.Placement, description string) {
	p := placement
	r.add(domain.Effect{Type: domain.EffectShow, Placement: &p, Description: description})
}

func (r *Recorder) OnHighlightChange(_ context.Context, previous, current *domain.Element) {
	r.add(domain.Effect{
		Type:     domain.EffectHighlight,
		Previous: cloneElement(previous),
		Current:  cloneElement(current),
	})
}

func (r *Recorder) OnEnd(_ context.Context) {
	r.add(domain.Effect{Type: domain.EffectEnd})
}

func (r *Recorder) OnWarn(_ context.Context, message string) {
	r.add(domain.Effect{Type: domain.EffectWarn, Message: message})
}

// Effects returns a copy of the recorded effects.
func (r *Recorder) Effects() []domain.Effect {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Effect, len(r.effects))
	copy(out, r.effects)
	return out
}

// Drain returns the recorded effects and clears the recorder.
func (r *Recorder) Drain() []domain.Effect {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.effects
	r.effects = nil
	if out == nil {
		out = []domain.Effect{}
	}
	return out
}
