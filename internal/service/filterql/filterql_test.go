package filterql

import (
	"testing"

	"github.com/elizabethszent/MASIVinternTest/internal/model"

	"github.com/stretchr/testify/require"
)

func testBoxes() []model.BuildingBox {
	return []model.BuildingBox{
		{ID: 0, Height: 10, Info: model.BuildingInfo{Area: 100, Zone: "Residential"}},
		{ID: 100, Height: 20, Info: model.BuildingInfo{Area: 900, Zone: "CC-X"}},
	}
}

func TestParseResponseRejectsFeatureCollection(t *testing.T) {
	// The query service occasionally echoes back raw geographic data
	_, err := ParseResponse(map[string]any{
		"type":     "FeatureCollection",
		"features": []any{},
	})
	require.ErrorIs(t, err, ErrNotAFilter)

	_, err = ParseResponse(map[string]any{
		"features": []any{},
	})
	require.ErrorIs(t, err, ErrNotAFilter)
}

func TestParseResponseSurfacesUpstreamError(t *testing.T) {
	_, err := ParseResponse(map[string]any{
		"error": "model is overloaded",
	})

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	require.Equal(t, "model is overloaded", upstream.Reason)
}

func TestParseResponseRejectsMissingFields(t *testing.T) {
	_, err := ParseResponse(map[string]any{
		"attribute": "height",
		"operator":  ">",
	})
	require.ErrorIs(t, err, ErrMissingFields)

	_, err = ParseResponse(map[string]any{
		"operator": ">",
		"value":    10.0,
	})
	require.ErrorIs(t, err, ErrMissingFields)
}

func TestParseResponseAllowsZeroValue(t *testing.T) {
	f, err := ParseResponse(map[string]any{
		"attribute": "height",
		"operator":  ">",
		"value":     0.0,
	})
	require.NoError(t, err)
	require.Equal(t, 0.0, f.Value)
}

func TestParseResponseRejectsUnknownAttribute(t *testing.T) {
	_, err := ParseResponse(map[string]any{
		"attribute": "footprint",
		"operator":  ">",
		"value":     10.0,
	})
	require.ErrorIs(t, err, ErrUnknownAttribute)
}

func TestParseResponseCoercesNumericZoning(t *testing.T) {
	f, err := ParseResponse(map[string]any{
		"attribute": "zoning",
		"operator":  "==",
		"value":     "12",
	})
	require.NoError(t, err)
	require.Equal(t, 12, f.Value)

	// Non-numeric zoning codes stay strings
	f, err = ParseResponse(map[string]any{
		"attribute": "zoning",
		"operator":  "==",
		"value":     "RC-G",
	})
	require.NoError(t, err)
	require.Equal(t, "RC-G", f.Value)
}

func TestEvaluateGreaterThan(t *testing.T) {
	matches := Evaluate(model.Filter{Attribute: "height", Operator: ">", Value: 15}, testBoxes())
	require.Equal(t, []int{100}, matches)
}

func TestEvaluateLessThan(t *testing.T) {
	matches := Evaluate(model.Filter{Attribute: "area", Operator: "<", Value: 500}, testBoxes())
	require.Equal(t, []int{0}, matches)
}

func TestEvaluateEquality(t *testing.T) {
	// Case-insensitive, whitespace-trimmed
	matches := Evaluate(model.Filter{Attribute: "zoning", Operator: "==", Value: " cc-x "}, testBoxes())
	require.Equal(t, []int{100}, matches)
}

func TestEvaluateSubstring(t *testing.T) {
	matches := Evaluate(model.Filter{Attribute: "zoning", Operator: "IN", Value: "res"}, testBoxes())
	require.Equal(t, []int{0}, matches)
}

func TestEvaluateZoningCoercion(t *testing.T) {
	boxes := []model.BuildingBox{
		{ID: 0, Info: model.BuildingInfo{Zone: 12}},
		{ID: 100, Info: model.BuildingInfo{Zone: "12"}},
		{ID: 200, Info: model.BuildingInfo{Zone: "13"}},
	}

	// Digit-string zoning values coerce to int during validation and still
	// match both numeric and string zone metadata
	f, err := ParseResponse(map[string]any{
		"attribute": "zoning",
		"operator":  "==",
		"value":     "12",
	})
	require.NoError(t, err)

	matches := Evaluate(f, boxes)
	require.Equal(t, []int{0, 100}, matches)
}

func TestEvaluateUnknownOperatorMatchesNothing(t *testing.T) {
	matches := Evaluate(model.Filter{Attribute: "height", Operator: "~=", Value: 15}, testBoxes())
	require.Empty(t, matches)
}

func TestEvaluateAbsentOperandNeverMatches(t *testing.T) {
	// "value" is a known attribute but not part of the projected metadata
	matches := Evaluate(model.Filter{Attribute: "value", Operator: ">", Value: 0}, testBoxes())
	require.Empty(t, matches)

	// Boxes without zone metadata never match zoning filters
	boxes := []model.BuildingBox{{ID: 0}}
	matches = Evaluate(model.Filter{Attribute: "zoning", Operator: "IN", Value: ""}, boxes)
	require.Empty(t, matches)
}

func TestEvaluateNumericStrings(t *testing.T) {
	// Both sides of numeric comparisons parse from strings
	matches := Evaluate(model.Filter{Attribute: "height", Operator: ">", Value: "15"}, testBoxes())
	require.Equal(t, []int{100}, matches)
}
