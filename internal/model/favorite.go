package model

import "time"

type FavoriteEvent struct {
	ID       int64     `json:"id"`
	UserID   int64     `json:"-"`
	EventID  string    `json:"event_id"`
	Name     string    `json:"name"`
	URL      string    `json:"url"`
	Date     time.Time `json:"date"`
	ImageURL *string   `json:"image_url,omitempty"`
}

// FavoriteCreateRequest carries the event date as a string; it is parsed into
// a canonical timestamp before storage so the date sort stays well-defined.
type FavoriteCreateRequest struct {
	EventID  string `json:"event_id" binding:"required,max=100"`
	Name     string `json:"name" binding:"required,max=200"`
	URL      string `json:"url" binding:"required,max=300"`
	Date     string `json:"date" binding:"required"`
	ImageURL string `json:"image_url" binding:"omitempty,max=500"`
}
