package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrAddressDisabled is returned when no places API key is configured.
// Address autocomplete degrades to disabled; nothing else is affected.
var ErrAddressDisabled = errors.New("address autocomplete disabled")

const defaultPlacesBaseURL = "https://maps.googleapis.com/maps/api"

// AddressClient wraps the external places-autocomplete service.
type AddressClient struct {
	APIKey  string
	BaseURL string
	HTTP    *http.Client
}

func NewAddressClient(apiKey string) *AddressClient {
	return &AddressClient{
		APIKey:  apiKey,
		BaseURL: defaultPlacesBaseURL,
		HTTP:    &http.Client{Timeout: 5 * time.Second},
	}
}

// Suggestion is one autocomplete candidate.
type Suggestion struct {
	PlaceID     string `json:"place_id"`
	Description string `json:"description"`
}

// Component is a structured address component from the geocoding API.
type Component struct {
	LongName string   `json:"long_name"`
	Types    []string `json:"types"`
}

// Address is the parsed structured address.
type Address struct {
	Line1   string
	Line2   string
	City    string
	Pincode string
	Country string
}

// Suggest returns autocomplete candidates for a partial address line.
// Callers debounce by cancelling the previous call's context.
func (a *AddressClient) Suggest(ctx context.Context, input string) ([]Suggestion, error) {
	if a.APIKey == "" {
		return nil, ErrAddressDisabled
	}
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}
	q := url.Values{}
	q.Set("input", input)
	q.Set("types", "address")
	q.Set("key", a.APIKey)

	var out struct {
		Status      string       `json:"status"`
		Predictions []Suggestion `json:"predictions"`
	}
	if err := a.getJSON(ctx, "/place/autocomplete/json?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	if out.Status != "OK" && out.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("places autocomplete status %s", out.Status)
	}
	return out.Predictions, nil
}

// Resolve geocodes a selected candidate and parses its components. On any
// failure the caller's existing field values stay untouched; only the
// error is returned.
func (a *AddressClient) Resolve(ctx context.Context, placeID string) (Address, error) {
	if a.APIKey == "" {
		return Address{}, ErrAddressDisabled
	}
	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("key", a.APIKey)

	var out struct {
		Status  string `json:"status"`
		Results []struct {
			AddressComponents []Component `json:"address_components"`
		} `json:"results"`
	}
	if err := a.getJSON(ctx, "/geocode/json?"+q.Encode(), &out); err != nil {
		return Address{}, err
	}
	if out.Status != "OK" || len(out.Results) == 0 {
		return Address{}, fmt.Errorf("geocode status %s", out.Status)
	}
	return ParseComponents(out.Results[0].AddressComponents), nil
}

// ParseComponents applies the component heuristics: street_number and
// route join into line1; subpremise or premise becomes line2; locality,
// falling back to postal_town, becomes city; postal_code becomes pincode.
func ParseComponents(comps []Component) Address {
	var (
		addr         Address
		streetNumber string
		route        string
		postalTown   string
	)
	for _, c := range comps {
		for _, t := range c.Types {
			switch t {
			case "street_number":
				streetNumber = c.LongName
			case "route":
				route = c.LongName
			case "subpremise", "premise":
				addr.Line2 = c.LongName
			case "locality":
				addr.City = c.LongName
			case "postal_town":
				postalTown = c.LongName
			case "postal_code":
				addr.Pincode = c.LongName
			case "country":
				addr.Country = c.LongName
			}
		}
	}
	addr.Line1 = strings.TrimSpace(streetNumber + " " + route)
	if addr.City == "" {
		addr.City = postalTown
	}
	return addr
}

// Merge copies non-empty parsed fields over existing values, leaving
// everything the parse did not produce untouched.
func (dst *Address) Merge(src Address) {
	if src.Line1 != "" {
		dst.Line1 = src.Line1
	}
	if src.Line2 != "" {
		dst.Line2 = src.Line2
	}
	if src.City != "" {
		dst.City = src.City
	}
	if src.Pincode != "" {
		dst.Pincode = src.Pincode
	}
	if src.Country != "" {
		dst.Country = src.Country
	}
}

func (a *AddressClient) getJSON(ctx context.Context, pathAndQuery string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.BaseURL+pathAndQuery, nil)
	if err != nil {
		return err
	}
	resp, err := a.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("places api status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
