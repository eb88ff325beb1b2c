package runtime

import (
	"fmt"
	"strconv"

	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/aretw0/walkthrough/pkg/ports"
)

// StepNotFoundError is the NotFound result of a resolution.
// It matches domain.ErrStepNotFound with errors.Is.
type StepNotFoundError struct {
	Index  int
	Marker string
}

func (e *StepNotFoundError) Error() string {
	return fmt.Sprintf("no element tagged '%s' for step %d", e.Marker, e.Index)
}

func (e *StepNotFoundError) Unwrap() error {
	return domain.ErrStepNotFound
}

// StepResolver translates step indices into target elements by naming convention.
type StepResolver struct {
	lookup        ports.ElementLookup
	markerPrefix  string
	annotationKey string
}

// NewStepResolver creates a resolver over the given lookup.
// Empty prefix or annotation key fall back to the domain defaults.
func NewStepResolver(lookup ports.ElementLookup, markerPrefix, annotationKey string) *StepResolver {
	if markerPrefix == "" {
		markerPrefix = domain.DefaultMarkerPrefix
	}
	if annotationKey == "" {
		annotationKey = domain.DefaultAnnotationKey
	}
	return &StepResolver{
		lookup:        lookup,
		markerPrefix:  markerPrefix,
		annotationKey: annotationKey,
	}
}

// Marker returns the marker that tags the target of the given step.
func (r *StepResolver) Marker(index int) string {
	return r.markerPrefix + strconv.Itoa(index)
}

// Resolve looks up the target element and description of a step.
// A missing element is reported as *StepNotFoundError; a missing description is not an error.
func (r *StepResolver) Resolve(index int) (domain.Step, error) {
	marker := r.Marker(index)
	if index < 1 {
		return domain.Step{}, &StepNotFoundError{Index: index, Marker: marker}
	}

	el, ok := r.lookup.Find(marker)
	if !ok {
		return domain.Step{}, &StepNotFoundError{Index: index, Marker: marker}
	}

	description, _ := el.Annotation(r.annotationKey)

	return domain.Step{
		Index:       index,
		Marker:      marker,
		Element:     el,
		Description: description,
	}, nil
}
