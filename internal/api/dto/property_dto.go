package dto

import "time"

// PropertyRequest payload for listing create/update.
type PropertyRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	PropertyType string  `json:"property_type"`
	Location     string  `json:"location"`
	Price        float64 `json:"price"`
	ImageURL     *string `json:"image_url"`
	Available    *bool   `json:"available"`
}

// PropertyResponse is the listing representation.
type PropertyResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	PropertyType string    `json:"property_type"`
	Location     string    `json:"location"`
	Price        float64   `json:"price"`
	ImageURL     *string   `json:"image_url"`
	Available    bool      `json:"available"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
