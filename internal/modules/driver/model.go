package driver

// Driver is a delivery driver profile. Credentials live in the auth module.
type Driver struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	Vehicle  string `json:"vehicle,omitempty"`
	Username string `json:"username"`
}

// RegisterRequest holds data for creating a driver account.
type RegisterRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Vehicle  string `json:"vehicle"`
	Username string `json:"username"`
	Password string `json:"password"`
}
