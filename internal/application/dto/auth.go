package dto

// RegisterRequest is the DTO for creating an account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the DTO for signing in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token  string `json:"token"`
	Email  string `json:"email"`
	UserID uint   `json:"user_id"`
}

// MeResponse reports whether the caller holds a valid token.
type MeResponse struct {
	LoggedIn bool   `json:"logged_in"`
	Email    string `json:"email,omitempty"`
	UserID   uint   `json:"user_id,omitempty"`
}
