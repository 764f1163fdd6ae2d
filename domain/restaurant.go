package domain

import (
	"errors"
	"mime/multipart"
)

var (
	MessageSuccessGetRestaurants   = "restaurants retrieved successfully"
	MessageSuccessGetRestaurant    = "restaurant retrieved successfully"
	MessageSuccessUpdateRestaurant = "restaurant updated successfully"
	MessageSuccessDeleteRestaurant = "restaurant deleted successfully"
	MessageSuccessAddStaff         = "staff member added successfully"
	MessageSuccessRemoveStaff      = "staff member removed successfully"
	MessageSuccessGetStaff         = "staff retrieved successfully"
	MessageSuccessUploadImage      = "image uploaded successfully"

	MessageFailedGetRestaurants   = "failed to retrieve restaurants"
	MessageFailedGetRestaurant    = "failed to retrieve restaurant"
	MessageFailedUpdateRestaurant = "failed to update restaurant"
	MessageFailedDeleteRestaurant = "failed to delete restaurant"
	MessageFailedAddStaff         = "failed to add staff member"
	MessageFailedRemoveStaff      = "failed to remove staff member"
	MessageFailedGetStaff         = "failed to retrieve staff"
	MessageFailedUploadImage      = "failed to upload image"

	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrStaffNotFound      = errors.New("staff member not found")
	ErrStaffAlreadyAdded  = errors.New("user is already a staff member")
	ErrOwnerAsStaff       = errors.New("owner cannot be added as staff")
	ErrNotOwner           = errors.New("only the restaurant owner may perform this action")
)

type (
	UpdateRestaurantRequest struct {
		Name            string `json:"name" validate:"omitempty,min=2,max=100"`
		Address         string `json:"address" validate:"omitempty,max=200"`
		PhoneNumber     string `json:"phone_number" validate:"omitempty,max=30"`
		Country         string `json:"country" validate:"omitempty,max=60"`
		City            string `json:"city" validate:"omitempty,max=60"`
		PostalCode      string `json:"postal_code" validate:"omitempty,max=20"`
		Currency        string `json:"currency" validate:"omitempty,len=3"`
		DefaultLanguage string `json:"default_language" validate:"omitempty,oneof=en ar tr nl"`
	}

	UploadRestaurantImageRequest struct {
		Kind  string                `json:"kind" form:"kind" validate:"required,oneof=logo background"`
		Image *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	AddStaffRequest struct {
		Username string `json:"username" validate:"required"`
	}

	StaffResponse struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	}

	RestaurantResponse struct {
		ID                 string `json:"id"`
		Name               string `json:"name"`
		Address            string `json:"address,omitempty"`
		PhoneNumber        string `json:"phone_number,omitempty"`
		Country            string `json:"country,omitempty"`
		City               string `json:"city,omitempty"`
		PostalCode         string `json:"postal_code,omitempty"`
		Currency           string `json:"currency"`
		DefaultLanguage    string `json:"default_language"`
		LogoURL            string `json:"logo_url,omitempty"`
		BackgroundImageURL string `json:"background_image_url,omitempty"`
		ProfileCompleted   bool   `json:"profile_completed"`
		Role               string `json:"role,omitempty"`
	}

	// PublicRestaurantResponse is the unauthenticated customer view.
	PublicRestaurantResponse struct {
		ID                 string `json:"id"`
		Name               string `json:"name"`
		Currency           string `json:"currency"`
		DefaultLanguage    string `json:"default_language"`
		LogoURL            string `json:"logo_url,omitempty"`
		BackgroundImageURL string `json:"background_image_url,omitempty"`
	}
)
