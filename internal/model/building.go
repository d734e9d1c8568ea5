package model

import (
	"github.com/dhconnelly/rtreego"
)

// RawRecord is one building record as it arrives from the upstream GeoJSON
// source. Coordinate and area values are kept untyped because the upstream
// data mixes numbers and numeric strings; the projector parses them and drops
// records that do not yield finite floats.
type RawRecord struct {
	X    any // planar map x coordinate (x_coord)
	Y    any // planar map y coordinate (y_coord)
	Area any // footprint area (shape__area)
	Desc any // descriptive label (bldg_code_desc)
	Zone any // zoning classifier (zone or bldg_code)
}

// BuildingInfo is the display/queryable metadata snapshot attached to a
// projected box. X and Y are formatted to two decimals for display; Zone
// keeps whatever type the source supplied (numeric zoning codes stay numeric).
type BuildingInfo struct {
	Desc string  `json:"desc"`
	Area float64 `json:"area"`
	X    string  `json:"x"`
	Y    string  `json:"y"`
	Zone any     `json:"zone"`
}

// BuildingBox is one renderable extruded box. Position is (x, y, z) in scene
// units with y at half the height so the box rests on the ground plane at y=0.
// Boxes are immutable once projected.
type BuildingBox struct {
	ID       int          `json:"id"`
	Position [3]float64   `json:"position"`
	Width    float64      `json:"width"`
	Height   float64      `json:"height"`
	Depth    float64      `json:"depth"`
	Info     BuildingInfo `json:"info"`
}

// BoxSpatial wraps a BuildingBox for R-tree indexing on the scene ground plane
type BoxSpatial struct {
	Box *BuildingBox
}

// Bounds implements the rtreego.Spatial interface
func (b *BoxSpatial) Bounds() rtreego.Rect {
	// Footprint rectangle on the ground plane: scene x and scene z
	minX := b.Box.Position[0] - b.Box.Width/2
	minZ := b.Box.Position[2] - b.Box.Depth/2

	rect, _ := rtreego.NewRect(
		rtreego.Point{minX, minZ},
		[]float64{b.Box.Width, b.Box.Depth},
	)

	return rect
}
