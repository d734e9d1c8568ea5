package projector

import (
	"math"
	"strconv"
	"strings"

	"github.com/elizabethszent/MASIVinternTest/internal/model"
)

const (
	// Scale converts map units to scene units
	Scale = 0.08

	// DecimationStride keeps only every Nth surviving record so the scene
	// stays renderable at interactive frame rates
	DecimationStride = 100

	// MaxBoxes caps the decimated sample
	MaxBoxes = 50

	// Fixed aspect heuristic: footprints are assumed roughly square, height
	// exaggerated for visual prominence
	depthRatio  = 0.8
	heightRatio = 1.5
)

// Project converts raw building records into renderable boxes, using the
// first record's coordinates as the scene origin. An unparseable origin
// yields NaN positions on every box, which the renderer drops; that is the
// accepted degraded behavior for dirty leading records.
func Project(records []model.RawRecord) []model.BuildingBox {
	if len(records) == 0 {
		return []model.BuildingBox{}
	}

	baseX, baseY := Origin(records)
	return ProjectFrom(baseX, baseY, records)
}

// Origin returns the coordinates of the first record, NaN where unparseable.
func Origin(records []model.RawRecord) (x, y float64) {
	if len(records) == 0 {
		return math.NaN(), math.NaN()
	}
	return ParseCoord(records[0].X), ParseCoord(records[0].Y)
}

// ProjectFrom converts raw building records into renderable boxes positioned
// relative to an explicit origin. Records whose coordinates or area do not
// parse to finite floats are dropped; no error is ever raised for dirty data.
// The function is pure: the same input always yields the same output.
func ProjectFrom(baseX, baseY float64, records []model.RawRecord) []model.BuildingBox {
	boxes := make([]model.BuildingBox, 0, MaxBoxes)
	survivor := 0

	for _, rec := range records {
		x := ParseCoord(rec.X)
		y := ParseCoord(rec.Y)
		area := ParseCoord(rec.Area)

		// Dirty records contribute nothing; area must be positive to be usable
		if !isFinite(x) || !isFinite(y) || !isFinite(area) || area <= 0 {
			continue
		}

		if survivor%DecimationStride == 0 && len(boxes) < MaxBoxes {
			footprint := math.Sqrt(area)
			height := footprint * heightRatio

			boxes = append(boxes, model.BuildingBox{
				ID: survivor,
				Position: [3]float64{
					(x - baseX) * Scale,
					height / 2,
					(y - baseY) * Scale,
				},
				Width:  footprint,
				Height: height,
				Depth:  footprint * depthRatio,
				Info: model.BuildingInfo{
					Desc: displayString(rec.Desc),
					Area: area,
					X:    strconv.FormatFloat(x, 'f', 2, 64),
					Y:    strconv.FormatFloat(y, 'f', 2, 64),
					Zone: zoneValue(rec.Zone),
				},
			})
		}

		survivor++
	}

	return boxes
}

// ParseCoord coerces an upstream property value to a float64, returning NaN
// for anything that does not parse. Upstream data mixes JSON numbers and
// numeric strings for the same fields.
func ParseCoord(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func displayString(v any) string {
	if v == nil {
		return "Unknown"
	}
	if s, ok := v.(string); ok {
		if strings.TrimSpace(s) == "" {
			return "Unknown"
		}
		return s
	}
	return "Unknown"
}

// zoneValue keeps the source type so numeric zoning codes stay numeric
func zoneValue(v any) any {
	if v == nil {
		return "Unknown"
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return "Unknown"
	}
	return v
}
