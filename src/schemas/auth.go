package schemas

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse is the identity object returned by login and the identity
// check.
type UserResponse struct {
	Username string `json:"username"`
}

type LogoutResponse struct {
	Status string `json:"status"`
}
