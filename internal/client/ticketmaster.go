// Client for the Ticketmaster Discovery v2 API.
//
// Environment:
//   - TICKETMASTER_API_KEY: Discovery API key
//   - TICKETMASTER_URL: base URL (default https://app.ticketmaster.com/discovery/v2)
//
// The core never interprets provider event ids; they pass through as opaque
// strings.

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/event-finder/backend/internal/config"
	"github.com/event-finder/backend/internal/model"
)

const defaultPageSize = 100

type TicketmasterClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// discoveryResponse mirrors the slice of the Discovery payload we consume.
type discoveryResponse struct {
	Embedded struct {
		Events []discoveryEvent `json:"events"`
	} `json:"_embedded"`
}

type discoveryEvent struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	URL    string `json:"url"`
	Dates struct {
		Start struct {
			DateTime  string `json:"dateTime"`
			LocalDate string `json:"localDate"`
			LocalTime string `json:"localTime"`
		} `json:"start"`
	} `json:"dates"`
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
	Embedded struct {
		Venues []struct {
			Name string `json:"name"`
		} `json:"venues"`
	} `json:"_embedded"`
}

func NewTicketmasterClient(cfg config.TicketmasterConfig) *TicketmasterClient {
	return &TicketmasterClient{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SearchEvents queries /events.json and flattens the response into model.Event.
func (c *TicketmasterClient) SearchEvents(ctx context.Context, q model.EventSearchQuery) ([]model.Event, error) {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	if q.Keyword != "" {
		params.Set("keyword", q.Keyword)
	}
	if q.City != "" {
		params.Set("city", q.City)
	}
	if q.CountryCode != "" {
		params.Set("countryCode", q.CountryCode)
	}
	size := q.Size
	if size <= 0 || size > defaultPageSize {
		size = defaultPageSize
	}
	params.Set("size", strconv.Itoa(size))
	if q.StartDate != "" {
		params.Set("startDateTime", q.StartDate+"T00:00:00Z")
	}
	if q.EndDate != "" {
		params.Set("endDateTime", q.EndDate+"T23:59:59Z")
	}

	reqURL := c.baseURL + "/events.json?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ticketmaster request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ticketmaster returned status %d", resp.StatusCode)
	}

	var parsed discoveryResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse ticketmaster response: %w", err)
	}

	events := make([]model.Event, 0, len(parsed.Embedded.Events))
	for _, e := range parsed.Embedded.Events {
		events = append(events, model.Event{
			ID:       e.ID,
			Name:     e.Name,
			URL:      e.URL,
			Date:     eventDate(e),
			Venue:    eventVenue(e),
			ImageURL: eventImage(e),
		})
	}
	return events, nil
}

func eventDate(e discoveryEvent) string {
	if e.Dates.Start.DateTime != "" {
		return e.Dates.Start.DateTime
	}
	if e.Dates.Start.LocalDate == "" {
		return ""
	}
	localTime := e.Dates.Start.LocalTime
	if localTime == "" {
		localTime = "00:00:00"
	}
	return e.Dates.Start.LocalDate + "T" + localTime
}

func eventVenue(e discoveryEvent) string {
	if len(e.Embedded.Venues) == 0 {
		return ""
	}
	return e.Embedded.Venues[0].Name
}

func eventImage(e discoveryEvent) string {
	if len(e.Images) == 0 {
		return ""
	}
	return e.Images[0].URL
}
