package model

import "time"

// Payment is an append-only record of a confirmed external charge. It points
// at a booking by id but the link is not enforced.
type Payment struct {
	ID            string         `json:"_id,omitempty" bson:"_id,omitempty"`
	BookingID     string         `json:"bookingId" bson:"booking_id"`
	TransactionID string         `json:"transactionId" bson:"transaction_id"`
	Payload       map[string]any `json:"payload,omitempty" bson:"payload,omitempty"`
	CreatedAt     time.Time      `json:"createdAt" bson:"created_at"`
}

type PaymentIntentRequest struct {
	Price float64 `json:"price" validate:"gt=0"`
}

type PaymentIntent struct {
	ClientSecret string `json:"clientSecret"`
}

// PaymentConfirmation is the part of a confirmation payload the server reads.
// The rest of the payload is stored as given.
type PaymentConfirmation struct {
	TransactionID string `json:"transactionId" validate:"required,max=255"`
}
