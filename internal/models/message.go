package models

import "time"

// AdminMessage is a one-shot admin broadcast to a single user, optionally
// carrying a coin adjustment. Delivered once via poll, marked read, then
// excluded from future fetches.
type AdminMessage struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	CoinAmount int       `json:"coinAmount,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	Read       bool      `json:"read"`
}
