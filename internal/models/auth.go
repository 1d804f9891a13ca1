package models

// LoginRequest defines the structure for login requests
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest defines the structure for registration requests
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// ChangePasswordRequest defines the structure for a self-service password
// change
type ChangePasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// LoginResponse carries the issued bearer token
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
