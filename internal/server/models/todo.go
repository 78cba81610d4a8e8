package models

import "time"

// Todo is a single task document. Every todo has exactly one owner for its
// entire lifetime; the id is assigned by the store at creation and is never
// reused. CreatedAt is the explicit sort key for per-owner listings.
type Todo struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}
