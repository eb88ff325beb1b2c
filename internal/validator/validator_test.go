package validator

import (
	"errors"
	"testing"

	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	elements []domain.Element
	err      error
}

func (f fakeSource) MarkerPrefix() string  { return domain.DefaultMarkerPrefix }
func (f fakeSource) AnnotationKey() string { return domain.DefaultAnnotationKey }
func (f fakeSource) Inspect() ([]domain.Element, error) {
	return f.elements, f.err
}

func el(id, description string, markers ...string) domain.Element {
	e := domain.Element{ID: id, Markers: markers}
	if description != "" {
		e.Annotations = map[string]string{domain.DefaultAnnotationKey: description}
	}
	return e
}

func TestValidateTour_Valid(t *testing.T) {
	report, err := ValidateTour(fakeSource{elements: []domain.Element{
		el("a", "First", "tour-target-1"),
		el("b", "Second", "tour-target-2", "toolbar"),
		el("c", "", "unrelated"),
	}})
	require.NoError(t, err)

	assert.True(t, report.Valid())
	assert.Empty(t, report.Issues)
	assert.Equal(t, 2, report.Steps)
	assert.Equal(t, 2, report.Highest)
}

func TestValidateTour_Gap(t *testing.T) {
	report, err := ValidateTour(fakeSource{elements: []domain.Element{
		el("a", "First", "tour-target-1"),
		el("c", "Third", "tour-target-3"),
	}})
	require.NoError(t, err)

	assert.False(t, report.Valid())
	assert.Equal(t, 1, report.Steps)
	assert.Equal(t, 3, report.Highest)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, SeverityError, report.Issues[0].Severity)
	assert.Equal(t, 2, report.Issues[0].Step)
	assert.Equal(t, "tour-target-2", report.Issues[0].Marker)
	assert.Contains(t, report.Issues[0].String(), "error: step 2:")
}

func TestValidateTour_Warnings(t *testing.T) {
	report, err := ValidateTour(fakeSource{elements: []domain.Element{
		el("a", "First", "tour-target-1"),
		el("a2", "Shadowed", "tour-target-1"),
		el("b", "  ", "tour-target-2"),
		el("z", "Zero padded", "tour-target-03"),
		el("", "", "tour-target-x"),
	}})
	require.NoError(t, err)

	assert.True(t, report.Valid(), "warnings do not invalidate the tour")
	assert.Equal(t, 2, report.Steps)

	var messages []string
	for _, i := range report.Issues {
		assert.Equal(t, SeverityWarning, i.Severity)
		messages = append(messages, i.Message)
	}
	require.Len(t, messages, 4)
	assert.Contains(t, messages[0], "'tour-target-03'")
	assert.Contains(t, messages[1], "(anonymous)")
	assert.Contains(t, messages[2], "tags 2 elements; only #a is used")
	assert.Contains(t, messages[3], "#b has no 'walkthrough' description")
}

func TestValidateTour_Empty(t *testing.T) {
	report, err := ValidateTour(fakeSource{})
	require.NoError(t, err)

	assert.True(t, report.Valid())
	assert.Zero(t, report.Steps)
	require.Len(t, report.Issues, 1)
	assert.Contains(t, report.Issues[0].String(), "no element is tagged 'tour-target-1'")
}

func TestValidateTour_InspectError(t *testing.T) {
	_, err := ValidateTour(fakeSource{err: errors.New("not inspectable")})
	assert.EqualError(t, err, "not inspectable")
}
