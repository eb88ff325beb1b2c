package domain

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Element is an opaque handle into the host's element tree.
// Markers play the role of CSS classes and Annotations the role of data attributes.
type Element struct {
	ID          string            `json:"id" yaml:"id"`
	Markers     []string          `json:"markers,omitempty" yaml:"markers,omitempty"`
	Annotations map[string]string `json:"annotations,omitempty" yaml:"annotations,omitempty"`
}

// HasMarker reports whether the element is tagged with the given marker.
func (e Element) HasMarker(marker string) bool {
	return slices.Contains(e.Markers, marker)
}

// Clone returns a copy that shares no slices or maps with e.
func (e Element) Clone() Element {
	e.Markers = slices.Clone(e.Markers)
	e.Annotations = maps.Clone(e.Annotations)
	return e
}

// Annotation returns the value of an annotation and whether it was present.
func (e Element) Annotation(key string) (string, bool) {
	if e.Annotations == nil {
		return "", false
	}
	v, ok := e.Annotations[key]
	return v, ok
}

// Rect is the bounding geometry of an element in the host's viewport coordinate space.
type Rect struct {
	Top    float64 `json:"top" yaml:"top" mapstructure:"top"`
	Left   float64 `json:"left" yaml:"left" mapstructure:"left"`
	Width  float64 `json:"width" yaml:"width" mapstructure:"width"`
	Height float64 `json:"height" yaml:"height" mapstructure:"height"`
}

// Step is one resolved position of the tour.
// Steps are never persisted; they are looked up again on every transition.
type Step struct {
	Index       int     `json:"index"`
	Marker      string  `json:"marker"`
	Element     Element `json:"element"`
	Description string  `json:"description"`
}

// Placement is where the host should anchor the callout for the focused step.
type Placement struct {
	Top        float64 `json:"top"`
	Left       float64 `json:"left"`
	IsLastStep bool    `json:"is_last_step"`
	Step       int     `json:"step"`
	TotalSteps int     `json:"total_steps"`
}

// ParseRect reads a "top,left,width,height" quadruple. Whitespace around values is ignored.
func ParseRect(s string) (Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Rect{}, fmt.Errorf("rect %q: want top,left,width,height", s)
	}
	var vals [4]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Rect{}, fmt.Errorf("rect %q: %w", s, err)
		}
		vals[i] = v
	}
	return Rect{Top: vals[0], Left: vals[1], Width: vals[2], Height: vals[3]}, nil
}
