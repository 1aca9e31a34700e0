package model

import (
	"time"
)

// Booking is one patient's reservation of a treatment slot on a calendar date.
// Treatment references Service.Name by value; nothing enforces that the
// service or the slot exists.
type Booking struct {
	ID            string    `json:"_id,omitempty" bson:"_id,omitempty"`
	Treatment     string    `json:"treatment" bson:"treatment" validate:"required,min=1,max=100"`
	Date          string    `json:"date" bson:"date" validate:"required,max=40"`
	Slot          string    `json:"slot" bson:"slot" validate:"required,max=40"`
	Patient       string    `json:"patient" bson:"patient" validate:"required,email"`
	PatientName   string    `json:"patientName,omitempty" bson:"patientName,omitempty" validate:"omitempty,max=100"`
	Phone         string    `json:"phone,omitempty" bson:"phone,omitempty" validate:"omitempty,max=20"`
	Price         float64   `json:"price,omitempty" bson:"price,omitempty" validate:"omitempty,gte=0"`
	Paid          bool      `json:"paid" bson:"paid"`
	TransactionID string    `json:"transactionId,omitempty" bson:"transactionId,omitempty"`
	Review        string    `json:"review,omitempty" bson:"review,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitempty" bson:"created_at,omitempty"`
}

type ReviewUpdate struct {
	Review string `json:"review" validate:"required,max=2000"`
}
