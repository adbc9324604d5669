package model

// Event is the subset of a Ticketmaster Discovery event surfaced to clients.
// IDs are provider-assigned and treated as opaque strings.
type Event struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	Date     string `json:"date,omitempty"`
	Venue    string `json:"venue,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

type EventSearchQuery struct {
	Keyword     string `form:"keyword"`
	City        string `form:"city"`
	CountryCode string `form:"countryCode"`
	StartDate   string `form:"startDate"`
	EndDate     string `form:"endDate"`
	Size        int    `form:"size"`
}

type EventSearchResponse struct {
	Events []Event `json:"events"`
}
