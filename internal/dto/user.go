package dto

import "github.com/retailnet/retail_network_app/internal/core/domain"

// RegisterUserRequest defines the data needed to register a user.
type RegisterUserRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=8"`
	ScopeID  string `json:"scopeID" binding:"required"`
}

// LoginRequest defines the data needed to authenticate.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID   string `json:"userID"`
	Username string `json:"username"`
	ScopeID  string `json:"scopeID"`
	IsActive bool   `json:"isActive"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:   u.UserID,
		Username: u.Username,
		ScopeID:  u.ScopeID,
		IsActive: u.IsActive,
	}
}
