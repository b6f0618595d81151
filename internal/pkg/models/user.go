package models

// Roles carried in access tokens
const (
	RoleAdmin    = "admin"
	RoleDriver   = "driver"
	RoleCustomer = "customer"
)

// Caller identifies the authenticated user behind a request
type Caller struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// IsAdmin reports whether the caller may see every trip
func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// IsDriver reports whether the caller is a driver
func (c Caller) IsDriver() bool {
	return c.Role == RoleDriver
}

// IsCustomer reports whether the caller is a customer
func (c Caller) IsCustomer() bool {
	return c.Role == RoleCustomer
}
