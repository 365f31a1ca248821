package domain

import "time"

// RefreshToken is a persisted long-lived credential. One account may hold
// several concurrent tokens (multi-device); logout removes them all.
type RefreshToken struct {
	Token     string    `json:"-" dynamodbav:"token"`
	UserID    string    `json:"user_id" dynamodbav:"user_id"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
}
