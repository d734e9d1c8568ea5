// Package filterql validates structured filters returned by the language
// model service and evaluates them against projected building boxes.
package filterql

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/elizabethszent/MASIVinternTest/internal/model"
)

// Validation failures, distinct per rejection reason. Upstream-supplied error
// messages are surfaced verbatim via UpstreamError instead.
var (
	ErrNotAFilter       = errors.New("expected a filter object, got geographic data")
	ErrMissingFields    = errors.New("filter must include attribute, operator and value")
	ErrUnknownAttribute = errors.New("unknown filter attribute")
)

// UpstreamError carries an error message embedded in the service response
type UpstreamError struct {
	Reason string
}

func (e *UpstreamError) Error() string {
	return e.Reason
}

// attributeFields maps the attribute names the language model emits to the
// queryable fields of a projected box.
var attributeFields = map[string]string{
	"zoning": "zone",
	"height": "height",
	"area":   "area",
	"value":  "value",
}

// accessors resolve a queryable field on a box. A false second return means
// the box carries no such operand and can never match.
var accessors = map[string]func(*model.BuildingBox) (any, bool){
	"zone": func(b *model.BuildingBox) (any, bool) {
		if b.Info.Zone == nil {
			return nil, false
		}
		return b.Info.Zone, true
	},
	"height": func(b *model.BuildingBox) (any, bool) {
		return b.Height, true
	},
	"area": func(b *model.BuildingBox) (any, bool) {
		return b.Info.Area, true
	},
	// Assessed value is a known attribute but not part of the projected
	// metadata, so it resolves to nothing and matches no box.
	"value": func(b *model.BuildingBox) (any, bool) {
		return nil, false
	},
}

// ParseResponse validates an untrusted response object from the query service
// and returns the filter it carries. The service occasionally echoes back raw
// GeoJSON or an error object instead of a filter; each misuse is rejected
// with its own reason, checked in order, and evaluation never proceeds past
// the first failure.
func ParseResponse(raw map[string]any) (model.Filter, error) {
	var f model.Filter

	// A feature collection is geographic data, not a filter
	if t, _ := raw["type"].(string); t == "FeatureCollection" {
		return f, ErrNotAFilter
	}
	if _, ok := raw["features"]; ok {
		return f, ErrNotAFilter
	}

	// Surface an embedded upstream error verbatim
	if msg, ok := raw["error"]; ok {
		return f, &UpstreamError{Reason: fmt.Sprint(msg)}
	}

	attribute, _ := raw["attribute"].(string)
	operator, _ := raw["operator"].(string)
	value, hasValue := raw["value"]

	// Value may be zero or an empty string, but it must be present
	if attribute == "" || operator == "" || !hasValue || value == nil {
		return f, ErrMissingFields
	}

	if _, known := attributeFields[attribute]; !known {
		return f, fmt.Errorf("%w: %q", ErrUnknownAttribute, attribute)
	}

	// Numeric zoning codes often arrive as digit strings; compare them as numbers
	if attribute == "zoning" {
		if s, ok := value.(string); ok && isDigits(s) {
			if n, err := strconv.Atoi(s); err == nil {
				value = n
			}
		}
	}

	f.Attribute = attribute
	f.Operator = operator
	f.Value = value
	return f, nil
}

// Evaluate returns the ids of all boxes satisfying the filter, in box order.
// An unsupported operator or an unresolvable attribute yields an empty set,
// never an error. The result replaces any prior highlight set wholesale.
func Evaluate(f model.Filter, boxes []model.BuildingBox) []int {
	field, ok := attributeFields[f.Attribute]
	if !ok {
		return []int{}
	}
	access := accessors[field]

	matched := make([]int, 0)
	for i := range boxes {
		operand, ok := access(&boxes[i])
		if !ok {
			continue
		}
		if matches(f.Operator, operand, f.Value) {
			matched = append(matched, boxes[i].ID)
		}
	}
	return matched
}

func matches(operator string, operand, value any) bool {
	switch operator {
	case ">":
		a, aok := toFloat(operand)
		b, bok := toFloat(value)
		return aok && bok && a > b
	case "<":
		a, aok := toFloat(operand)
		b, bok := toFloat(value)
		return aok && bok && a < b
	case "==":
		return strings.EqualFold(
			strings.TrimSpace(toString(operand)),
			strings.TrimSpace(toString(value)),
		)
	case "IN":
		return strings.Contains(
			strings.ToLower(toString(operand)),
			strings.ToLower(toString(value)),
		)
	default:
		// Unsupported operator: valid but vacuous
		return false
	}
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
