package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func inferenceServer(t *testing.T, generatedText string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"generated_text": ` + jsonString(generatedText) + `}]`))
	}))
}

func jsonString(s string) string {
	out := make([]byte, 0, len(s)+2)
	out = append(out, '"')
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			out = append(out, '\\', '"')
		case '\\':
			out = append(out, '\\', '\\')
		case '\n':
			out = append(out, '\\', 'n')
		default:
			out = append(out, s[i])
		}
	}
	return string(append(out, '"'))
}

func TestParseQueryExtractsFilter(t *testing.T) {
	server := inferenceServer(t, `Sure, here is the filter:
{"attribute": "height", "operator": ">", "value": 30}`)
	defer server.Close()

	client := NewClient(server.URL, "")
	filter, err := client.ParseQuery(context.Background(), "highlight buildings over 30 meters")
	require.NoError(t, err)

	require.Equal(t, "height", filter["attribute"])
	require.Equal(t, ">", filter["operator"])
	require.Equal(t, 30.0, filter["value"])
}

func TestParseQuerySkipsIncompleteBlocks(t *testing.T) {
	server := inferenceServer(t, `{"note": "thinking"} {"attribute": "area", "operator": "<", "value": 500}`)
	defer server.Close()

	client := NewClient(server.URL, "")
	filter, err := client.ParseQuery(context.Background(), "small buildings")
	require.NoError(t, err)
	require.Equal(t, "area", filter["attribute"])
}

func TestParseQueryConvertsFeetToMeters(t *testing.T) {
	server := inferenceServer(t, `{"attribute": "height", "operator": ">", "value": 100}`)
	defer server.Close()

	client := NewClient(server.URL, "")
	filter, err := client.ParseQuery(context.Background(), "buildings taller than 100 feet")
	require.NoError(t, err)

	// 100 ft * 0.3048 = 30.48 m
	require.Equal(t, 30.48, filter["value"])
}

func TestParseQueryFeetConversionOnlyForHeight(t *testing.T) {
	server := inferenceServer(t, `{"attribute": "area", "operator": ">", "value": 100}`)
	defer server.Close()

	client := NewClient(server.URL, "")
	filter, err := client.ParseQuery(context.Background(), "buildings with 100 feet of frontage")
	require.NoError(t, err)
	require.Equal(t, 100.0, filter["value"])
}

func TestParseQueryCoercesNumericZoning(t *testing.T) {
	server := inferenceServer(t, `{"attribute": "zoning", "operator": "==", "value": "12"}`)
	defer server.Close()

	client := NewClient(server.URL, "")
	filter, err := client.ParseQuery(context.Background(), "buildings in zone 12")
	require.NoError(t, err)

	// Digit-string zoning codes come back as integers
	require.Equal(t, 12, filter["value"])
}

func TestParseQueryKeepsNonNumericZoning(t *testing.T) {
	server := inferenceServer(t, `{"attribute": "zoning", "operator": "==", "value": "RC-G"}`)
	defer server.Close()

	client := NewClient(server.URL, "")
	filter, err := client.ParseQuery(context.Background(), "buildings zoned RC-G")
	require.NoError(t, err)
	require.Equal(t, "RC-G", filter["value"])
}

func TestParseQueryNoFilterInResponse(t *testing.T) {
	server := inferenceServer(t, `I could not understand the request.`)
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.ParseQuery(context.Background(), "gibberish")
	require.ErrorIs(t, err, ErrNoFilter)
}

func TestParseQueryUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.ParseQuery(context.Background(), "anything")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNoFilter)
}

func TestParseQuerySendsAuthorization(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[{"generated_text": "{\"attribute\": \"height\", \"operator\": \">\", \"value\": 10}"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	_, err := client.ParseQuery(context.Background(), "tall buildings")
	require.NoError(t, err)
	require.Equal(t, "Bearer secret", gotAuth)
}

func TestExtractFilterPicksFirstComplete(t *testing.T) {
	filter := extractFilter(`{"attribute": "height"} {"attribute": "zoning", "operator": "==", "value": "RC-G"} {"attribute": "area", "operator": ">", "value": 1}`)
	require.NotNil(t, filter)
	require.Equal(t, "zoning", filter["attribute"])
}
