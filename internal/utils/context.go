package utils

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	UsernameKey contextKey = "username"
	UserRoleKey contextKey = "role"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)
