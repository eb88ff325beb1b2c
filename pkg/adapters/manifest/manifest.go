// Package manifest loads a page description from a YAML or JSON manifest.
//
// A manifest lists elements in document order:
//
//	name: dashboard
//	elements:
//	  - id: search
//	    step: 1
//	    description: Search anything from here.
//	    rect: {top: 10, left: 20, width: 100, height: 40}
//	  - id: inbox
//	    markers: [tour-target-2]
//	    annotations: {walkthrough: Your messages.}
//	    rect: "80,20,200,20"
//
// "step" and "description" are shorthands for the default marker and annotation.
package manifest

import (
	"fmt"
	"os"
	"strconv"

	"github.com/aretw0/walkthrough/pkg/adapters/memory"
	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Manifest is the decoded document.
type Manifest struct {
	Name         string        `json:"name" mapstructure:"name"`
	MarkerPrefix string        `json:"marker_prefix" mapstructure:"marker_prefix"`
	Annotation   string        `json:"annotation" mapstructure:"annotation"`
	Elements     []ElementSpec `json:"elements" mapstructure:"elements"`
}

// ElementSpec describes one element of the page.
type ElementSpec struct {
	ID          string            `json:"id" mapstructure:"id"`
	Step        int               `json:"step" mapstructure:"step"`
	Description string            `json:"description" mapstructure:"description"`
	Markers     []string          `json:"markers" mapstructure:"markers"`
	Annotations map[string]string `json:"annotations" mapstructure:"annotations"`
	// Rect accepts a {top,left,width,height} map, a 4-item list or a "t,l,w,h" string.
	Rect any `json:"rect" mapstructure:"rect"`
}

// Page is a memory page tagged with the manifest name.
type Page struct {
	*memory.Page
	Name string
}

// Load reads and parses a manifest file.
func Load(path string) (*Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	page, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return page, nil
}

// Parse builds a page from manifest bytes. JSON is accepted as a YAML subset.
func Parse(data []byte) (*Page, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	var m Manifest
	if err := decode(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}

	targets := make([]memory.Target, 0, len(m.Elements))
	for i, spec := range m.Elements {
		target, err := spec.Target(m.MarkerPrefix, m.Annotation, "element-"+strconv.Itoa(i+1))
		if err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}

	page, err := memory.NewPage(targets...)
	if err != nil {
		return nil, err
	}
	return &Page{Page: page, Name: m.Name}, nil
}

// Target converts the manifest entry into an element and its geometry.
// Empty prefix or annotation key fall back to the domain defaults.
func (s ElementSpec) Target(markerPrefix, annotationKey, fallbackID string) (memory.Target, error) {
	if markerPrefix == "" {
		markerPrefix = domain.DefaultMarkerPrefix
	}
	if annotationKey == "" {
		annotationKey = domain.DefaultAnnotationKey
	}

	el := domain.Element{ID: s.ID}
	if el.ID == "" {
		el.ID = fallbackID
	}

	if s.Step > 0 {
		el.Markers = append(el.Markers, markerPrefix+strconv.Itoa(s.Step))
	}
	el.Markers = append(el.Markers, s.Markers...)

	if len(s.Annotations) > 0 || s.Description != "" {
		el.Annotations = make(map[string]string, len(s.Annotations)+1)
		for k, v := range s.Annotations {
			el.Annotations[k] = v
		}
		if s.Description != "" {
			el.Annotations[annotationKey] = s.Description
		}
	}

	rect, err := DecodeRect(s.Rect)
	if err != nil {
		return memory.Target{}, fmt.Errorf("element %s: %w", el.ID, err)
	}
	return memory.Target{Element: el, Rect: rect}, nil
}

// DecodeRect converts the loosely typed rect forms found in manifests and frontmatter.
func DecodeRect(v any) (domain.Rect, error) {
	switch r := v.(type) {
	case nil:
		return domain.Rect{}, nil
	case string:
		return domain.ParseRect(r)
	case []any:
		if len(r) != 4 {
			return domain.Rect{}, fmt.Errorf("rect list: want 4 values, got %d", len(r))
		}
		var vals [4]float64
		if err := decode(r, &vals); err != nil {
			return domain.Rect{}, fmt.Errorf("rect list: %w", err)
		}
		return domain.Rect{Top: vals[0], Left: vals[1], Width: vals[2], Height: vals[3]}, nil
	case map[string]any, map[any]any:
		var rect domain.Rect
		if err := decode(r, &rect); err != nil {
			return domain.Rect{}, fmt.Errorf("rect: %w", err)
		}
		return rect, nil
	default:
		return domain.Rect{}, fmt.Errorf("invalid rect type: %T", v)
	}
}

func decode(input, output any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           output,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}
