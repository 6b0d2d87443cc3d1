package model

const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

type User struct {
	Base
	Email        string `json:"email" db:"email"`
	Name         string `json:"name" db:"name"`
	Password     string `json:"-" db:"-"`
	PasswordHash string `json:"-" db:"password_hash"`
	Role         string `json:"role" db:"role"`
	Status       string `json:"status" db:"status"`
}

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=admin instructor parent guest"`
}

type UpdateUserRequest struct {
	Name   *string `json:"name,omitempty"`
	Role   *string `json:"role,omitempty" binding:"omitempty,oneof=admin instructor parent guest"`
	Status *string `json:"status,omitempty" binding:"omitempty,oneof=active disabled"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Role         string `json:"role"`
}
