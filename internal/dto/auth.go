package dto

// LoginRequest is the body for POST /api/v1/login (JSON) and POST /login
// (form-encoded).
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// LoginResponse carries the minted access token on the API surface.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// UserResponse is returned by GET /api/v1/me.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Admin    bool   `json:"admin"`
}
