package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/angiepellets-dev/Holz-Markt/pkg/geo"
	"github.com/angiepellets-dev/Holz-Markt/pkg/util"
)

const DefaultBaseURL = "https://router.project-osrm.org"

// Client asks the external routing provider for the single best driving
// route between two points, with full geometry.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// Route is the provider's best driving route.
type Route struct {
	DistanceMeters  float64
	DurationSeconds float64
	Geometry        []geo.Coordinate
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"` // meters
		Duration float64 `json:"duration"` // seconds
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"` // [lon, lat]
		} `json:"geometry"`
	} `json:"routes"`
}

// DrivingRoute returns the best route from a to b. Zero routes fail with
// ErrNoRouteFound, transport failures with ErrNetwork.
func (c *Client) DrivingRoute(ctx context.Context, a, b geo.Coordinate) (*Route, error) {
	u, err := url.Parse(c.baseURL + "/route/v1/driving/")
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "bad router base url")
	}

	// the provider expects lon,lat pairs
	u.Path += fmt.Sprintf("%f,%f;%f,%f", a.Lon, a.Lat, b.Lon, b.Lat)
	q := u.Query()
	q.Set("overview", "full")
	q.Set("geometries", "geojson")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "build router request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrNetwork, "route request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusBadRequest {
		return nil, util.WrapErrorf(fmt.Errorf("status %s", resp.Status), util.ErrNetwork,
			"route request failed")
	}

	var data osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, util.WrapErrorf(err, util.ErrNetwork, "decode router response")
	}

	if len(data.Routes) == 0 {
		return nil, util.WrapErrorf(fmt.Errorf("router code %q", data.Code), util.ErrNoRouteFound,
			"no route from %f,%f to %f,%f", a.Lat, a.Lon, b.Lat, b.Lon)
	}

	best := data.Routes[0]
	geometry := make([]geo.Coordinate, 0, len(best.Geometry.Coordinates))
	for _, c := range best.Geometry.Coordinates {
		if len(c) < 2 {
			continue
		}
		geometry = append(geometry, geo.NewCoordinate(c[1], c[0]))
	}

	return &Route{
		DistanceMeters:  best.Distance,
		DurationSeconds: best.Duration,
		Geometry:        geometry,
	}, nil
}
