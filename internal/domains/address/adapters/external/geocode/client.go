package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oapi-codegen/runtime"

	"github.com/Apurer/go-gin-order-flow/internal/domains/address/domain"
	"github.com/Apurer/go-gin-order-flow/internal/domains/address/ports"
)

// DefaultBaseURL points at the public BigDataCloud client endpoint.
const DefaultBaseURL = "https://api.bigdatacloud.net/data"

var _ ports.ReverseGeocoder = (*Client)(nil)

// Client resolves coordinates to a display address through the reverse-geocode-client endpoint.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// NewClient instantiates the geocoder with sane defaults.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	parsed, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("parse geocode base URL: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{baseURL: parsed, httpClient: httpClient}, nil
}

// Response is the subset of the reverse geocode payload used to build the address.
type Response struct {
	Locality    string `json:"locality"`
	City        string `json:"city"`
	Postcode    string `json:"postcode"`
	CountryName string `json:"countryName"`
}

// FormatAddress renders "{locality}, {city} {postcode}, {countryName}".
func (r Response) FormatAddress() string {
	return fmt.Sprintf("%s, %s %s, %s", r.Locality, r.City, r.Postcode, r.CountryName)
}

func (r Response) empty() bool {
	return r.Locality == "" && r.City == "" && r.Postcode == "" && r.CountryName == ""
}

func (c *Client) ReverseGeocode(ctx context.Context, coords domain.Coordinates) (string, error) {
	if c == nil || c.httpClient == nil {
		return "", errors.New("geocode client not configured")
	}
	req, err := c.newReverseGeocodeRequest(ctx, coords)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call geocode API: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("geocode API unexpected status: %s", resp.Status)
	}
	var body Response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode geocode response: %w", err)
	}
	if body.empty() {
		return "", ports.ErrAddressNotFound
	}
	return body.FormatAddress(), nil
}

func (c *Client) newReverseGeocodeRequest(ctx context.Context, coords domain.Coordinates) (*http.Request, error) {
	target, err := c.baseURL.Parse("reverse-geocode-client")
	if err != nil {
		return nil, err
	}
	queryValues := target.Query()
	params := []struct {
		name  string
		value float64
	}{
		{name: "latitude", value: coords.Latitude},
		{name: "longitude", value: coords.Longitude},
	}
	for _, p := range params {
		queryFrag, err := runtime.StyleParamWithLocation("form", true, p.name, runtime.ParamLocationQuery, p.value)
		if err != nil {
			return nil, err
		}
		parsed, err := url.ParseQuery(queryFrag)
		if err != nil {
			return nil, err
		}
		for k, v := range parsed {
			for _, v2 := range v {
				queryValues.Add(k, v2)
			}
		}
	}
	target.RawQuery = queryValues.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}
