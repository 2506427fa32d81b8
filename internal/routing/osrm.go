package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kashala/atm-finder-go/internal/models"
	"github.com/kashala/atm-finder-go/internal/spatial"
)

// Client talks to an OSRM-compatible routing service
// (e.g. https://router.project-osrm.org).
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a routing client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Duration float64 `json:"duration"` // seconds
		Distance float64 `json:"distance"` // meters
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"` // [lon, lat]
		} `json:"geometry"`
	} `json:"routes"`
}

// Route fetches the full driving route between two points, geometry
// included.
func (c *Client) Route(ctx context.Context, from, to models.Coordinate) (*models.Route, error) {
	resp, err := c.query(ctx, from, to, "overview=full&geometries=geojson")
	if err != nil {
		return nil, err
	}

	best := resp.Routes[0]
	points := make([]models.Coordinate, 0, len(best.Geometry.Coordinates))
	path := make([]spatial.Point, 0, len(best.Geometry.Coordinates))
	for _, pair := range best.Geometry.Coordinates {
		if len(pair) < 2 {
			continue
		}
		// OSRM emits lon/lat order.
		points = append(points, models.Coordinate{Latitude: pair[1], Longitude: pair[0]})
		path = append(path, spatial.Point{Lat: pair[1], Lon: pair[0]})
	}

	return &models.Route{
		Points:          points,
		DurationSeconds: best.Duration,
		DistanceKm:      spatial.PathLengthKm(path),
	}, nil
}

// Duration fetches only the travel duration for one origin-destination
// pair.
func (c *Client) Duration(ctx context.Context, from, to models.Coordinate) (time.Duration, error) {
	resp, err := c.query(ctx, from, to, "overview=false")
	if err != nil {
		return 0, err
	}
	return time.Duration(resp.Routes[0].Duration * float64(time.Second)), nil
}

func (c *Client) query(ctx context.Context, from, to models.Coordinate, options string) (*osrmResponse, error) {
	u := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f?%s",
		c.baseURL,
		from.Longitude, from.Latitude,
		to.Longitude, to.Latitude,
		options)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("routing request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("routing service returned status %s", resp.Status)
	}

	var parsed osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode routing response: %w", err)
	}

	if parsed.Code != "Ok" || len(parsed.Routes) == 0 {
		return nil, fmt.Errorf("no route found (code %q)", parsed.Code)
	}
	return &parsed, nil
}
