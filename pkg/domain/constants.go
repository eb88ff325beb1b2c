package domain

const (
	// DefaultMarkerPrefix is prepended to the 1-based step index to build the marker
	// that tags a step's target element (e.g. "tour-target-1").
	DefaultMarkerPrefix = "tour-target-"

	// DefaultAnnotationKey is the element annotation holding the step description.
	DefaultAnnotationKey = "walkthrough"

	// DefaultOffset is the horizontal gap between the target element and the callout.
	DefaultOffset = 10.0
)
