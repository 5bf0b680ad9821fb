package dto

// LoginRequest carries the credentials of the login form.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login. The session
// triple {userID, username, role} is what the navigation layer keeps for the
// app's lifetime.
type LoginResponse struct {
	Token    string `json:"token"`
	UserID   int64  `json:"userID"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// UpdateUsernameRequest carries a self-service username change.
type UpdateUsernameRequest struct {
	Username string `json:"username" binding:"required,min=3"`
}

// UpdatePasswordRequest carries a self-service password change.
type UpdatePasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

// ChangedResponse reports whether a row was actually changed.
type ChangedResponse struct {
	Changed bool `json:"changed"`
}
