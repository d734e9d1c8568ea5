package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleGeoJSON = `{
	"type": "FeatureCollection",
	"features": [
		{
			"type": "Feature",
			"geometry": {"type": "Point", "coordinates": [-114.07, 51.04]},
			"properties": {
				"x_coord": 1000.5,
				"y_coord": 2000.5,
				"shape__area": 400,
				"bldg_code_desc": "OFFICE",
				"zone": "CC-X"
			}
		},
		{
			"type": "Feature",
			"geometry": {"type": "Point", "coordinates": [-114.08, 51.05]},
			"properties": {
				"x_coord": "1100.5",
				"y_coord": "2100.5",
				"shape__area": "900",
				"bldg_code": "RES"
			}
		}
	]
}`

func TestParseFeatureCollection(t *testing.T) {
	records, err := ParseFeatureCollection([]byte(sampleGeoJSON))
	require.NoError(t, err)
	require.Len(t, records, 2)

	require.Equal(t, 1000.5, records[0].X)
	require.Equal(t, 2000.5, records[0].Y)
	require.Equal(t, 400.0, records[0].Area)
	require.Equal(t, "OFFICE", records[0].Desc)
	require.Equal(t, "CC-X", records[0].Zone)

	// Numeric strings pass through untyped; the projector parses them
	require.Equal(t, "1100.5", records[1].X)

	// bldg_code substitutes for a missing zone
	require.Equal(t, "RES", records[1].Zone)
	require.Nil(t, records[1].Desc)
}

func TestParseFeatureCollectionRejectsGarbage(t *testing.T) {
	_, err := ParseFeatureCollection([]byte(`{"not": "geojson"`))
	require.Error(t, err)
}

func TestRefreshFromUpstream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleGeoJSON))
	}))
	defer server.Close()

	service := NewDatasetService(server.URL, "")
	require.NoError(t, service.InitService(context.Background()))

	require.Equal(t, 2, service.RecordCount())
	require.JSONEq(t, sampleGeoJSON, string(service.RawGeoJSON()))
	require.False(t, service.FetchedAt().IsZero())
}

func TestRefreshFailureKeepsPriorData(t *testing.T) {
	failing := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(sampleGeoJSON))
	}))
	defer server.Close()

	service := NewDatasetService(server.URL, "")
	require.NoError(t, service.InitService(context.Background()))

	failing = true
	require.Error(t, service.Refresh(context.Background()))

	// A failed refresh leaves the loaded dataset untouched
	require.Equal(t, 2, service.RecordCount())
}

func TestInitServiceFallsBackToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "buildings.geojson")
	require.NoError(t, os.WriteFile(file, []byte(sampleGeoJSON), 0o644))

	service := NewDatasetService("", file)
	require.NoError(t, service.InitService(context.Background()))
	require.Equal(t, 2, service.RecordCount())
}

func TestInitServiceFailsWithoutSources(t *testing.T) {
	service := NewDatasetService("", "")
	require.Error(t, service.InitService(context.Background()))
}
