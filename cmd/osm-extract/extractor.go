package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime"

	"github.com/paulmach/orb"
	"github.com/qedus/osmpbf"
)

// ExtractedBuilding is one building way resolved to a closed outline
type ExtractedBuilding struct {
	ID      int64       // OSM way ID
	Desc    string      // Name of the building, or its type when unnamed
	Type    string      // Building type (residential, commercial, etc.)
	Outline orb.Polygon // Building outline as polygon
}

// BuildingExtractor handles processing of OSM PBF files
type BuildingExtractor struct {
	Buildings []*ExtractedBuilding
	nodes     map[int64]orb.Point
}

// NewBuildingExtractor creates a new extractor
func NewBuildingExtractor() *BuildingExtractor {
	return &BuildingExtractor{
		Buildings: make([]*ExtractedBuilding, 0),
		nodes:     make(map[int64]orb.Point),
	}
}

// ProcessOSMFile processes an OSM PBF file and extracts buildings
func (p *BuildingExtractor) ProcessOSMFile(osmFilePath string) error {
	log.Printf("Processing OSM file: %s", osmFilePath)

	// Open the OSM PBF file
	file, err := os.Open(osmFilePath)
	if err != nil {
		return fmt.Errorf("failed to open OSM file: %w", err)
	}
	defer file.Close()

	// First pass: collect all nodes
	log.Println("First pass: collecting nodes...")
	decoder := newDecoder(file)
	if err := p.collectNodes(decoder); err != nil {
		return err
	}
	log.Printf("Collected %d nodes", len(p.nodes))

	// Rewind the file for the second pass
	if _, err := file.Seek(0, 0); err != nil {
		return fmt.Errorf("failed to rewind OSM file: %w", err)
	}

	// Second pass: process ways (buildings)
	log.Println("Second pass: processing buildings...")
	decoder = newDecoder(file)
	if err := p.processBuildings(decoder); err != nil {
		return err
	}

	log.Printf("Processing complete. Found %d buildings.", len(p.Buildings))
	return nil
}

func newDecoder(file *os.File) *osmpbf.Decoder {
	decoder := osmpbf.NewDecoder(file)
	decoder.SetBufferSize(osmpbf.MaxBlobSize)

	// Use all available CPU cores
	decoder.Start(runtime.GOMAXPROCS(-1))
	return decoder
}

// collectNodes collects all nodes from the OSM file
func (p *BuildingExtractor) collectNodes(decoder *osmpbf.Decoder) error {
	for {
		obj, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("error decoding OSM data: %w", err)
		}

		if node, ok := obj.(*osmpbf.Node); ok {
			p.nodes[node.ID] = orb.Point{node.Lon, node.Lat}
		}
	}
	return nil
}

// processBuildings extracts closed building ways
func (p *BuildingExtractor) processBuildings(decoder *osmpbf.Decoder) error {
	for {
		obj, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("error decoding OSM data: %w", err)
		}

		way, ok := obj.(*osmpbf.Way)
		if !ok {
			continue
		}

		buildingType, ok := way.Tags["building"]
		if !ok {
			continue
		}

		// Resolve node references to coordinates; skip ways with missing nodes
		ring := make(orb.Ring, 0, len(way.NodeIDs))
		complete := true
		for _, nodeID := range way.NodeIDs {
			point, exists := p.nodes[nodeID]
			if !exists {
				complete = false
				break
			}
			ring = append(ring, point)
		}
		if !complete || len(ring) < 4 {
			continue
		}

		// Building outlines must be closed
		if ring[0] != ring[len(ring)-1] {
			ring = append(ring, ring[0])
		}

		desc := way.Tags["name"]
		if desc == "" {
			desc = buildingType
		}

		p.Buildings = append(p.Buildings, &ExtractedBuilding{
			ID:      way.ID,
			Desc:    desc,
			Type:    buildingType,
			Outline: orb.Polygon{ring},
		})
	}
	return nil
}
