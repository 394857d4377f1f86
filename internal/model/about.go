package model

import "time"

// About is the single "about me" text shown on the public site.
type About struct {
	Text      string    `json:"text"`
	UpdatedAt time.Time `json:"updated_at"`
}
