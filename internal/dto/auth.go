package dto

// LoginRequest is the sign-in form of the admin area used to moderate
// submissions.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse hands the moderator a bearer token for /admin routes.
// ExpiresIn is the token lifetime in seconds.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}
