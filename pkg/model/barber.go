package model

import "time"

type Barber struct {
	ID        string    `json:"_id,omitempty" bson:"_id,omitempty"`
	Email     string    `json:"email" bson:"email" validate:"required,email"`
	Name      string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Specialty string    `json:"specialty,omitempty" bson:"specialty,omitempty" validate:"omitempty,max=100"`
	Image     string    `json:"img,omitempty" bson:"img,omitempty" validate:"omitempty,url"`
	CreatedAt time.Time `json:"createdAt,omitempty" bson:"created_at,omitempty"`
}
