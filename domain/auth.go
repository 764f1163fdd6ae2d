package domain

import (
	"errors"
)

var (
	MessageSuccessRegister         = "registration successful, check your email to activate your account"
	MessageRegisterMailNotSent     = "registration successful, but the activation email could not be sent; request a new link via password reset"
	MessageSuccessActivate         = "account activated successfully"
	MessageSuccessLogin            = "login successful"
	MessageSuccessResetRequest     = "if the email exists, a password reset link has been sent"
	MessageSuccessResetConfirm     = "password has been reset successfully"
	MessageSuccessUsernameRecovery = "if the email exists, the username has been sent"
	MessageSuccessGetProfile       = "profile retrieved successfully"
	MessageSuccessDeleteAccount    = "account deleted successfully"

	MessageFailedRegister         = "failed to register"
	MessageFailedActivate         = "failed to activate account"
	MessageFailedLogin            = "failed to login"
	MessageFailedResetRequest     = "failed to request password reset"
	MessageFailedResetConfirm     = "failed to reset password"
	MessageFailedUsernameRecovery = "failed to recover username"
	MessageFailedGetProfile       = "failed to retrieve profile"
	MessageFailedDeleteAccount    = "failed to delete account"

	ErrUsernameTaken      = errors.New("username is already taken")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountNotActive   = errors.New("account is not activated")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrEmailDelivery      = errors.New("failed to send email")
)

type (
	RegisterRequest struct {
		Username       string `json:"username" validate:"required,min=3,max=30"`
		Email          string `json:"email" validate:"required,email"`
		Password       string `json:"password" validate:"required,min=8"`
		RestaurantName string `json:"restaurant_name" validate:"required,min=2,max=100"`
	}

	// EmailSent is false when the account and restaurant were created
	// but the activation mail could not be delivered.
	RegisterResponse struct {
		UserID       string `json:"user_id"`
		RestaurantID string `json:"restaurant_id"`
		EmailSent    bool   `json:"email_sent"`
	}

	ActivateRequest struct {
		UserID string `json:"user_id" validate:"required,uuid"`
		Token  string `json:"token" validate:"required"`
	}

	LoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token        string   `json:"token"`
		UserID       string   `json:"user_id"`
		Username     string   `json:"username"`
		Role         string   `json:"role"`
		IsSuperuser  bool     `json:"is_superuser"`
		Restaurants  []string `json:"restaurants"`
	}

	PasswordResetRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	PasswordResetConfirmRequest struct {
		UserID      string `json:"user_id" validate:"required,uuid"`
		Token       string `json:"token" validate:"required"`
		NewPassword string `json:"new_password" validate:"required,min=8"`
	}

	UsernameRecoveryRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	ProfileResponse struct {
		ID          string   `json:"id"`
		Username    string   `json:"username"`
		Email       string   `json:"email"`
		IsSuperuser bool     `json:"is_superuser"`
		Restaurants []string `json:"restaurants"`
	}
)
