// Package llm calls a hosted language model to translate free-text queries
// into structured building filters.
package llm

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/elizabethszent/MASIVinternTest/internal/config"
	redis_client "github.com/elizabethszent/MASIVinternTest/internal/redis"
)

// ErrNoFilter means the model response contained no usable filter object
var ErrNoFilter = errors.New("no filter found in model response")

const queryCacheKeyPrefix = "llmquery:"

const promptTemplate = `
Extract a JSON filter from this request: "%s"

Respond ONLY with the JSON object. The format should include:
- "attribute" (e.g. "height", "zoning", "value", "area")
- "operator" (e.g. ">", "<", "==")
- "value" (e.g. 100, "RC-G", 500000)

If the query mentions "feet", assume it refers to building height and convert feet to meters (1 foot = 0.3048 meters). Use "height" as the attribute in that case.
`

// jsonBlockRe finds candidate JSON objects inside generated text
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*?\}`)

// Client talks to a HuggingFace-style inference endpoint
type Client struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client for the given inference endpoint. The key may
// be empty for endpoints that do not require authentication.
func NewClient(apiURL, apiKey string) *Client {
	return &Client{
		apiURL:     apiURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// inferenceResponse is one generation from the inference API
type inferenceResponse struct {
	GeneratedText string `json:"generated_text"`
}

// ParseQuery sends the free-text query to the language model and extracts the
// first JSON block carrying attribute, operator and value. The raw object is
// returned untrusted; shape validation is the filter engine's job. Results
// are cached in Redis keyed by the normalized query text.
func (c *Client) ParseQuery(ctx context.Context, query string) (map[string]any, error) {
	if cached := c.cachedFilter(ctx, query); cached != nil {
		return cached, nil
	}

	prompt := fmt.Sprintf(promptTemplate, query)

	body, err := json.Marshal(map[string]string{"inputs": prompt})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inference request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("inference request returned status %d: %s", resp.StatusCode, payload)
	}

	var generations []inferenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&generations); err != nil {
		return nil, fmt.Errorf("failed to decode inference response: %w", err)
	}
	if len(generations) == 0 {
		return nil, ErrNoFilter
	}

	filter := extractFilter(generations[0].GeneratedText)
	if filter == nil {
		return nil, ErrNoFilter
	}

	normalizeFeet(query, filter)
	normalizeZoning(filter)

	c.cacheFilter(ctx, query, filter)
	return filter, nil
}

// extractFilter returns the first JSON block in the generated text that
// carries all three filter fields, nil when there is none
func extractFilter(text string) map[string]any {
	for _, match := range jsonBlockRe.FindAllString(text, -1) {
		var parsed map[string]any
		if err := json.Unmarshal([]byte(match), &parsed); err != nil {
			continue
		}

		if _, ok := parsed["attribute"]; !ok {
			continue
		}
		if _, ok := parsed["operator"]; !ok {
			continue
		}
		if _, ok := parsed["value"]; !ok {
			continue
		}
		return parsed
	}
	return nil
}

// normalizeFeet converts a height value from feet to meters when the user
// phrased the query in feet. 1 foot = 0.3048 meters, rounded to 2 decimals.
func normalizeFeet(query string, filter map[string]any) {
	if !strings.Contains(strings.ToLower(query), "feet") {
		return
	}
	if attr, _ := filter["attribute"].(string); attr != "height" {
		return
	}
	if v, ok := filter["value"].(float64); ok {
		filter["value"] = math.Round(v*0.3048*100) / 100
	}
}

// normalizeZoning coerces a digit-string zoning value to an integer, so
// numeric zoning codes supplied as text compare as numbers downstream
func normalizeZoning(filter map[string]any) {
	if attr, _ := filter["attribute"].(string); attr != "zoning" {
		return
	}
	s, ok := filter["value"].(string)
	if !ok || !isDigits(s) {
		return
	}
	if n, err := strconv.Atoi(s); err == nil {
		filter["value"] = n
	}
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

func cacheKey(query string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(query))))
	return queryCacheKeyPrefix + hex.EncodeToString(sum[:])
}

func (c *Client) cachedFilter(ctx context.Context, query string) map[string]any {
	client := redis_client.GetClient()
	if client == nil {
		return nil
	}

	data, err := client.Get(ctx, cacheKey(query)).Bytes()
	if err != nil {
		return nil
	}

	var filter map[string]any
	if err := json.Unmarshal(data, &filter); err != nil {
		return nil
	}
	return filter
}

func (c *Client) cacheFilter(ctx context.Context, query string, filter map[string]any) {
	client := redis_client.GetClient()
	if client == nil {
		return
	}

	data, err := json.Marshal(filter)
	if err != nil {
		return
	}

	if err := client.Set(ctx, cacheKey(query), data, config.QueryCacheTTL).Err(); err != nil {
		log.Printf("Failed to cache parsed filter: %v", err)
	}
}
