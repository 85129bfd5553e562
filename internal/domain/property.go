package domain

import "time"

// Property is a listing that can be recommended to leads.
type Property struct {
	ID           string
	Title        string
	Description  string
	PropertyType string
	Location     string
	Price        float64
	ImageURL     *string
	Available    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
