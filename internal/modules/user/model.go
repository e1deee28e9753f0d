package user

// Consumer is a buyer profile. Credentials live in the auth module.
type Consumer struct {
	ID       string `json:"id"`
	Role     string `json:"role"`
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	Username string `json:"username"`
}

// RegisterRequest holds data for creating a consumer account.
type RegisterRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Username string `json:"username"`
	Password string `json:"password"`
}
