// Package validator lints a tour page before it is shipped.
// It runs on the host side only; the tour itself never scans the page.
package validator

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/aretw0/walkthrough/pkg/domain"
)

// Severity grades an issue. Errors make the tour abort at runtime; warnings do not.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one finding of the lint.
type Issue struct {
	Severity Severity `json:"severity"`
	Step     int      `json:"step,omitempty"`
	Marker   string   `json:"marker,omitempty"`
	Message  string   `json:"message"`
}

func (i Issue) String() string {
	if i.Step > 0 {
		return fmt.Sprintf("%s: step %d: %s", i.Severity, i.Step, i.Message)
	}
	return fmt.Sprintf("%s: %s", i.Severity, i.Message)
}

// Report is the result of ValidateTour.
type Report struct {
	// Steps is the number of consecutive steps a tour will reach.
	Steps int `json:"steps"`
	// Highest is the largest step index tagged anywhere on the page.
	Highest int     `json:"highest"`
	Issues  []Issue `json:"issues,omitempty"`
}

// Valid reports whether the report carries no errors.
func (r Report) Valid() bool {
	return !slices.ContainsFunc(r.Issues, func(i Issue) bool { return i.Severity == SeverityError })
}

// Source is the part of the engine the lint reads.
type Source interface {
	MarkerPrefix() string
	AnnotationKey() string
	Inspect() ([]domain.Element, error)
}

// ValidateTour scans every element for step markers and reports gaps, duplicate markers,
// markers that can never resolve and steps without a description.
func ValidateTour(src Source) (Report, error) {
	elements, err := src.Inspect()
	if err != nil {
		return Report{}, err
	}

	prefix := src.MarkerPrefix()
	key := src.AnnotationKey()

	var report Report
	tagged := make(map[int][]domain.Element)

	for _, el := range elements {
		for _, marker := range el.Markers {
			suffix, ok := strings.CutPrefix(marker, prefix)
			if !ok {
				continue
			}
			index, err := strconv.Atoi(suffix)
			if err != nil || index < 1 || strconv.Itoa(index) != suffix {
				report.Issues = append(report.Issues, Issue{
					Severity: SeverityWarning,
					Marker:   marker,
					Message:  fmt.Sprintf("marker '%s' on element %s is never resolved; steps are numbered 1, 2, 3...", marker, label(el)),
				})
				continue
			}
			tagged[index] = append(tagged[index], el)
			report.Highest = max(report.Highest, index)
		}
	}

	if report.Highest == 0 {
		report.Issues = append(report.Issues, Issue{
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("no element is tagged '%s1'; the tour ends as soon as it starts", prefix),
		})
		return report, nil
	}

	gap := false
	for i := 1; i <= report.Highest; i++ {
		marker := prefix + strconv.Itoa(i)
		els := tagged[i]

		if len(els) == 0 {
			report.Issues = append(report.Issues, Issue{
				Severity: SeverityError,
				Step:     i,
				Marker:   marker,
				Message:  fmt.Sprintf("no element tagged '%s'; the tour aborts here and later steps are unreachable", marker),
			})
			gap = true
			continue
		}
		if !gap {
			report.Steps = i
		}

		if len(els) > 1 {
			report.Issues = append(report.Issues, Issue{
				Severity: SeverityWarning,
				Step:     i,
				Marker:   marker,
				Message:  fmt.Sprintf("'%s' tags %d elements; only %s is used", marker, len(els), label(els[0])),
			})
		}

		if desc, _ := els[0].Annotation(key); strings.TrimSpace(desc) == "" {
			report.Issues = append(report.Issues, Issue{
				Severity: SeverityWarning,
				Step:     i,
				Marker:   marker,
				Message:  fmt.Sprintf("element %s has no '%s' description", label(els[0]), key),
			})
		}
	}

	return report, nil
}

func label(el domain.Element) string {
	if el.ID != "" {
		return "#" + el.ID
	}
	return "(anonymous)"
}
