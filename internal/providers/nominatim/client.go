package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/voxatlas/weather-location-backend/internal/models"
)

// API docs: https://nominatim.org/release-docs/develop/api/Search/
// Nominatim's usage policy requires an identifying User-Agent on every
// request, so the client sends one unconditionally.
const (
	searchPath  = "/search"
	detailsPath = "/details.php"
	reversePath = "/reverse"
)

// Client talks to a Nominatim instance
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// NewClient creates a Nominatim client for the given base URL
func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
	}
}

// Search performs a forward geocode of a free-text place description.
// Only the single best match is requested.
func (c *Client) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")

	var results []models.SearchResult
	if err := c.get(ctx, searchPath, params, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// Details fetches place details for an OSM object. osmType is the raw
// osm_type of a search result; the endpoint wants only its initial,
// uppercased (node -> N, way -> W, relation -> R).
func (c *Client) Details(ctx context.Context, osmID int64, osmType string) (*models.DetailsResponse, error) {
	params := url.Values{}
	params.Set("osmid", strconv.FormatInt(osmID, 10))
	params.Set("osmtype", osmTypeInitial(osmType))
	params.Set("format", "json")

	var details models.DetailsResponse
	if err := c.get(ctx, detailsPath, params, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// Reverse resolves a coordinate pair into an address
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (*models.ReverseResponse, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("format", "json")

	var reverse models.ReverseResponse
	if err := c.get(ctx, reversePath, params, &reverse); err != nil {
		return nil, err
	}
	return &reverse, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("failed to parse base URL: %w", err)
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s returned status %d: %s", path, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

func osmTypeInitial(osmType string) string {
	if osmType == "" {
		return ""
	}
	return strings.ToUpper(osmType[:1])
}
