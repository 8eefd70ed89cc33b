package dto

import "github.com/savorworks/ledger_backend/internal/core/domain"

// CreateUserRequest is the registration payload.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the credential payload for token issuance.
type LoginRequest struct {
	Username string `json:"username" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse is the public representation of a user.
type UserResponse struct {
	UserID   string `json:"userID"`
	Username string `json:"username"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

// ToUserResponse converts a domain User to its response DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:   u.UserID,
		Username: u.Username,
		Name:     u.Name,
		IsActive: u.IsActive,
	}
}
