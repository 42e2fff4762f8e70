package domain

// UserRole is carried in access tokens issued by the identity service.
type UserRole string

const (
	RoleClient UserRole = "client"
	RoleOwner  UserRole = "owner"
	RoleAdmin  UserRole = "admin"
)
