package model

import "time"

// DefaultLinkIcon is used when a link is created without an icon.
const DefaultLinkIcon = "🔗"

// Link is an entry in the public links list. Listing order is SortOrder
// ascending, ties broken by ID.
type Link struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Icon        string    `json:"icon"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
}
