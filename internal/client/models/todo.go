// Package models holds the client-side view of the wire types exchanged
// with the todo API.
package models

import "time"

// Todo mirrors the JSON representation served by the API. The id is always
// server-assigned; the client never invents one.
type Todo struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}
