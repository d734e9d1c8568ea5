// Command osm-extract converts buildings from an OSM PBF extract into the
// GeoJSON property schema the dashboard's dataset service consumes, so the
// service can be pointed at self-produced data instead of a city open data
// portal.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/elizabethszent/MASIVinternTest/internal/util"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

func main() {
	inFile := flag.String("in", "", "input OSM PBF file")
	outFile := flag.String("out", "buildings.geojson", "output GeoJSON file")
	flag.Parse()

	if *inFile == "" {
		log.Fatalln("usage: osm-extract -in <file.osm.pbf> [-out buildings.geojson]")
	}

	processor := NewBuildingExtractor()
	if err := processor.ProcessOSMFile(*inFile); err != nil {
		log.Fatalf("Failed to process OSM file: %v", err)
	}

	if err := writeGeoJSON(processor.Buildings, *outFile); err != nil {
		log.Fatalf("Failed to write GeoJSON: %v", err)
	}

	log.Printf("Wrote %d buildings to %s", len(processor.Buildings), *outFile)
}

// writeGeoJSON emits one point feature per building with the upstream
// property schema: x_coord/y_coord are planar offsets in meters from the
// first building's centroid, matching the projected coordinates the dataset
// service expects.
func writeGeoJSON(buildings []*ExtractedBuilding, outputFile string) error {
	fc := geojson.NewFeatureCollection()

	var originLat, originLng float64
	for i, b := range buildings {
		centroid, _ := planar.CentroidArea(b.Outline)

		if i == 0 {
			originLng, originLat = centroid[0], centroid[1]
		}

		// Signed east/north offsets in meters from the extract origin
		xy := util.LocalPlanar(originLat, originLng, centroid[1], centroid[0])

		feature := geojson.NewFeature(orb.Point{centroid[0], centroid[1]})
		feature.Properties = geojson.Properties{
			"x_coord":        xy[0],
			"y_coord":        xy[1],
			"shape__area":    geo.Area(b.Outline),
			"bldg_code_desc": b.Desc,
			"zone":           b.Type,
		}
		fc.Append(feature)
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return err
	}

	return os.WriteFile(outputFile, data, 0o644)
}
