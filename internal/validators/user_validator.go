package validators

import (
	"strings"
)

type UserRegistrationRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role" validate:"required,user_role"`
	City     string `json:"city" validate:"omitempty,max=128"`
}

type UserLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type UserUpdateRequest struct {
	City string `json:"city" validate:"required,max=128"`
}

type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6,max=72"`
}

func ValidateUserRegistration(req *UserRegistrationRequest) ValidationErrors {
	req.Username = SanitizeInput(req.Username)
	req.City = SanitizeInput(req.City)
	req.Role = strings.ToLower(SanitizeInput(req.Role))

	errors := ValidateStruct(req)

	if strings.ContainsAny(req.Username, " \t\n") {
		errors = append(errors, ValidationError{
			Field:   "username",
			Message: "Username cannot contain whitespace",
		})
	}

	return errors
}

func ValidateUserLogin(req *UserLoginRequest) ValidationErrors {
	req.Username = SanitizeInput(req.Username)
	return ValidateStruct(req)
}

func ValidateRefreshToken(req *RefreshTokenRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateUserUpdate(req *UserUpdateRequest) ValidationErrors {
	req.City = SanitizeInput(req.City)
	return ValidateStruct(req)
}

func ValidatePasswordChange(req *PasswordChangeRequest) ValidationErrors {
	errors := ValidateStruct(req)

	// Ensure new password is different from current
	if req.CurrentPassword != "" && req.CurrentPassword == req.NewPassword {
		errors = append(errors, ValidationError{
			Field:   "new_password",
			Message: "New password must be different from current password",
		})
	}

	return errors
}
