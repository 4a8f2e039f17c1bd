package model

import "time"

// DefaultAgeRestriction applies when a listing is created without one.
const DefaultAgeRestriction = 18

type Location struct {
	City  string `json:"city" bson:"city" validate:"required"`
	State string `json:"state" bson:"state" validate:"required"`
}

// Property is a bookable listing. Availability and AgeRestriction are
// informational: neither is enforced against bookings.
type Property struct {
	ID             string      `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name           string      `json:"name" bson:"name" validate:"required,min=3,max=100"`
	Description    string      `json:"description" bson:"description" validate:"required,min=10"`
	Price          float64     `json:"price" bson:"price" validate:"required,gte=0"`
	Availability   []time.Time `json:"availability,omitempty" bson:"availability,omitempty"`
	Images         []string    `json:"images,omitempty" bson:"images,omitempty" validate:"omitempty,dive,url"`
	Location       Location    `json:"location" bson:"location"`
	AgeRestriction int         `json:"ageRestriction" bson:"age_restriction" validate:"omitempty,gte=0"`
	CreatedAt      time.Time   `json:"createdAt,omitempty" bson:"created_at"`
}

type PropertyUpdate struct {
	Name           string      `json:"name,omitempty" validate:"omitempty,min=3,max=100"`
	Description    string      `json:"description,omitempty" validate:"omitempty,min=10"`
	Price          *float64    `json:"price,omitempty" validate:"omitempty,gte=0"`
	Availability   []time.Time `json:"availability,omitempty"`
	Images         []string    `json:"images,omitempty" validate:"omitempty,dive,url"`
	Location       *Location   `json:"location,omitempty"`
	AgeRestriction *int        `json:"ageRestriction,omitempty" validate:"omitempty,gte=0"`
}
