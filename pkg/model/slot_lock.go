package model

import "time"

// SlotLock is an advisory lock document serializing booking writes per
// property. A TTL index on expires_at reaps locks abandoned by crashed
// requests.
type SlotLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
