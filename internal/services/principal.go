package services

import "vehicle-rental/internal/models"

// Principal is the authenticated caller resolved from a bearer token.
type Principal struct {
	UserID uint64
	Role   models.UserRole
}

func (p Principal) IsProvider() bool {
	return p.Role == models.UserRoleProvider
}

func (p Principal) IsCustomer() bool {
	return p.Role == models.UserRoleCustomer
}
