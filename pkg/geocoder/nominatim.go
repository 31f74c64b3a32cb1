package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/angiepellets-dev/Holz-Markt/pkg/datastructure"
	"github.com/angiepellets-dev/Holz-Markt/pkg/util"
)

const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// Client asks the external geocoding provider for the single best match of
// a free-text query. Address fields are requested localized to german
// administrative naming.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:   baseURL,
		userAgent: "holz-markt/1.0",
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type searchResult struct {
	Lat     string `json:"lat"`
	Lon     string `json:"lon"`
	Address struct {
		Country     string `json:"country"`
		CountryCode string `json:"country_code"`
	} `json:"address"`
}

// Search returns the best match for query, or (nil, nil) when the provider
// finds nothing. Transport and decoding failures surface as ErrNetwork so
// callers can tell "no match" from "could not ask".
func (c *Client) Search(ctx context.Context, query string) (*datastructure.Location, error) {
	u, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "bad geocoder base url")
	}

	q := u.Query()
	q.Set("format", "json")
	q.Set("addressdetails", "1")
	q.Set("limit", "1")
	q.Set("accept-language", "de")
	q.Set("q", query)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "build geocoder request")
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrNetwork, "geocode %q", query)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, util.WrapErrorf(fmt.Errorf("status %s", resp.Status), util.ErrNetwork,
			"geocode %q", query)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, util.WrapErrorf(err, util.ErrNetwork, "decode geocoder response for %q", query)
	}

	if len(results) == 0 {
		return nil, nil
	}

	best := results[0]
	lat, err := util.StringToFloat64(best.Lat)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrNetwork, "parse geocoder lat for %q", query)
	}
	lon, err := util.StringToFloat64(best.Lon)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrNetwork, "parse geocoder lon for %q", query)
	}

	return datastructure.NewLocation(lat, lon, best.Address.Country,
		strings.ToLower(best.Address.CountryCode)), nil
}
