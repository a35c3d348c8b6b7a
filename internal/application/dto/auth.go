package dto

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=64"`
	Password  string `json:"password" binding:"required,min=8"`
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse echoes the current session token back to an
// authenticated caller.
type TokenResponse struct {
	Token string `json:"token"`
}

// MessageResponse is a generic confirmation payload.
type MessageResponse struct {
	Message string `json:"message"`
}
