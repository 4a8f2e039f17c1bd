package model

import "time"

// User account. PasswordHash never crosses the wire; registration and
// login carry the plaintext password in dedicated request types.
type User struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Username     string    `json:"username" bson:"username" validate:"required,min=3,max=50"`
	Email        string    `json:"email" bson:"email" validate:"required,email,min=5,max=100"`
	FirstName    string    `json:"firstName,omitempty" bson:"first_name,omitempty" validate:"omitempty,min=3"`
	LastName     string    `json:"lastName,omitempty" bson:"last_name,omitempty" validate:"omitempty,min=3"`
	Phone        string    `json:"phone,omitempty" bson:"phone,omitempty" validate:"omitempty,e164"`
	DOB          time.Time `json:"dob,omitempty" bson:"dob,omitempty"`
	PasswordHash string    `json:"-" bson:"password_hash,omitempty"`
	IsAdmin      bool      `json:"isAdmin" bson:"is_admin"`
	CreatedAt    time.Time `json:"createdAt,omitempty" bson:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt,omitempty" bson:"updated_at"`
}

type RegisterRequest struct {
	Username  string    `json:"username" validate:"required,min=3,max=50"`
	Email     string    `json:"email" validate:"required,email,min=5,max=100"`
	Password  string    `json:"password" validate:"required,min=6"`
	FirstName string    `json:"firstName,omitempty" validate:"omitempty,min=3"`
	LastName  string    `json:"lastName,omitempty" validate:"omitempty,min=3"`
	Phone     string    `json:"phone,omitempty" validate:"omitempty,e164"`
	DOB       time.Time `json:"dob,omitempty"`
	IsAdmin   bool      `json:"isAdmin,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type UserUpdate struct {
	Username  string     `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
	Email     string     `json:"email,omitempty" validate:"omitempty,email,min=5,max=100"`
	Password  string     `json:"password,omitempty" validate:"omitempty,min=6"`
	FirstName string     `json:"firstName,omitempty" validate:"omitempty,min=3"`
	LastName  string     `json:"lastName,omitempty" validate:"omitempty,min=3"`
	Phone     string     `json:"phone,omitempty" validate:"omitempty,e164"`
	DOB       *time.Time `json:"dob,omitempty"`
	IsAdmin   *bool      `json:"isAdmin,omitempty"`
}
