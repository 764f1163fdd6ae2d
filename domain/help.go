package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessCreateHelpRequest = "help request created successfully"
	MessageSuccessGetHelpRequests   = "help requests retrieved successfully"
	MessageSuccessGetMyHelpRequests = "your help requests retrieved successfully"
	MessageSuccessGetHelpRequest    = "help request retrieved successfully"
	MessageSuccessUpdateHelpRequest = "help request updated successfully"
	MessageSuccessDeleteHelpRequest = "help request deleted successfully"

	MessageFailedCreateHelpRequest = "failed to create help request"
	MessageFailedGetHelpRequests   = "failed to retrieve help requests"
	MessageFailedGetMyHelpRequests = "failed to retrieve your help requests"
	MessageFailedGetHelpRequest    = "failed to retrieve help request"
	MessageFailedUpdateHelpRequest = "failed to update help request"
	MessageFailedDeleteHelpRequest = "failed to delete help request"

	ErrHelpRequestNotFound = errors.New("help request not found")
	ErrInvalidHelpStatus   = errors.New("invalid help request status")
)

type (
	CreateHelpRequest struct {
		TableID     string `json:"table" validate:"required,uuid"`
		Description string `json:"description" validate:"omitempty,max=500"`
	}

	UpdateHelpRequest struct {
		Status   string `json:"status" validate:"omitempty,oneof=Pending Accepted Resolved Declined"`
		Response string `json:"response" validate:"omitempty,max=500"`
	}

	HelpRequestResponse struct {
		ID           string    `json:"id"`
		RestaurantID string    `json:"restaurant"`
		TableID      string    `json:"table"`
		TableNumber  int       `json:"table_number"`
		Description  string    `json:"description,omitempty"`
		Status       string    `json:"status"`
		Response     string    `json:"response,omitempty"`
		CreatedAt    time.Time `json:"created_at"`
	}
)
