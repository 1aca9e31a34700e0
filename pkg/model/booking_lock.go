package model

import "time"

// BookingLock is an advisory lock row. ID is the lock key; a TTL index on
// ExpiresAt removes locks a crashed request never released.
type BookingLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
