package model

import "time"

// MediaItem is an uploaded audio or video file plus its display metadata.
//
// Filename is always generated by the server; the client only influences
// its extension. Date is the user-supplied publication date (YYYY-MM-DD) and
// may be absent.
type MediaItem struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Filename    string    `json:"filename"`
	Date        *string   `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}
