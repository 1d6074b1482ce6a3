package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	Phone        *string   `json:"phone,omitempty" db:"phone"`
	University   string    `json:"university" db:"university"`
	Program      *string   `json:"program,omitempty" db:"program"`
	StudentID    *string   `json:"student_id,omitempty" db:"student_id"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type CreateUserInput struct {
	Email      string  `json:"email" validate:"required,email"`
	Password   string  `json:"password" validate:"required,min=8"`
	FirstName  string  `json:"first_name" validate:"required"`
	LastName   string  `json:"last_name" validate:"required"`
	Phone      *string `json:"phone,omitempty"`
	University string  `json:"university" validate:"omitempty,oneof=UNIVERSITY_OF_MANITOBA UNIVERSITY_OF_WINNIPEG RED_RIVER_COLLEGE BRANDON_UNIVERSITY OTHER"`
	Program    *string `json:"program,omitempty"`
	StudentID  *string `json:"student_id,omitempty"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AccessToken struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

const (
	RoleStudent = "STUDENT"
	RoleAdvisor = "ADVISOR"
	RoleAdmin   = "ADMIN"
)
