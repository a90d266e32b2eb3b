package models

// Credentials are used once to build a login request and never stored.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the part of the POST /api/auth reply the client uses.
type LoginResponse struct {
	AuthToken string `json:"authToken"`
}

// UserData is the part of the GET /api/me reply the client uses.
type UserData struct {
	Email string `json:"email"`
}
