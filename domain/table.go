package domain

import (
	"errors"
)

var (
	MessageSuccessAddTable       = "table added successfully"
	MessageSuccessGetTables      = "tables retrieved successfully"
	MessageSuccessGetTable       = "table retrieved successfully"
	MessageSuccessUpdateTable    = "table updated successfully"
	MessageSuccessDeleteTable    = "table deleted successfully"
	MessageSuccessGetTableQrCode = "table QR code retrieved successfully"

	MessageFailedAddTable       = "failed to add table"
	MessageFailedGetTables      = "failed to retrieve tables"
	MessageFailedGetTable       = "failed to retrieve table"
	MessageFailedUpdateTable    = "failed to update table"
	MessageFailedDeleteTable    = "failed to delete table"
	MessageFailedGetTableQrCode = "failed to retrieve table QR code"

	ErrTableNotFound      = errors.New("table not found")
	ErrInvalidTableStatus = errors.New("invalid table status")
)

type (
	AddTableRequest struct {
		Capacity int `json:"capacity" validate:"omitempty,min=1,max=50"`
	}

	UpdateTableRequest struct {
		Status   string `json:"status" validate:"omitempty,oneof=Available Occupied Reserved"`
		Capacity int    `json:"capacity" validate:"omitempty,min=1,max=50"`
	}

	TableResponse struct {
		ID        string `json:"id"`
		Number    int    `json:"number"`
		Status    string `json:"status"`
		Capacity  int    `json:"capacity"`
		QrCodeURL string `json:"qr_code_url,omitempty"`
	}
)
