package dto

// CredentialsRequest is the body of register
type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=72"`
}

// LoginRequest is the body of login. Length limits are left to the
// credential check so every failure looks the same.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued session token
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// UserResponse is the public view of a user
type UserResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}
