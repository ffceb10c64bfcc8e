package dto

import "innkeep/internal/domains/guest/model"

type UpdateProfileRequest struct {
	FirstName  string `json:"first_name"  validate:"required,max=100"`
	MiddleName string `json:"middle_name" validate:"omitempty,max=100"`
	LastName   string `json:"last_name"   validate:"required,max=100"`
	Phone      string `json:"phone"       validate:"required,phoneph"`
	Address    string `json:"address"     validate:"omitempty,max=255"`
	City       string `json:"city"        validate:"omitempty,max=100"`
	PostalCode string `json:"postal_code" validate:"omitempty,postalph"`
}

// ToPatch renders the request as a column patch; the email column is
// never part of it because the profile email is owned by the identity
// provider.
func (u *UpdateProfileRequest) ToPatch() map[string]any {
	return map[string]any{
		"first_name":  u.FirstName,
		"middle_name": u.MiddleName,
		"last_name":   u.LastName,
		"phone":       u.Phone,
		"address":     u.Address,
		"city":        u.City,
		"postal_code": u.PostalCode,
	}
}

type WalkInGuestRequest struct {
	FirstName  string `json:"first_name"  validate:"required,max=100"`
	MiddleName string `json:"middle_name" validate:"omitempty,max=100"`
	LastName   string `json:"last_name"   validate:"required,max=100"`
	Email      string `json:"email"       validate:"required,email"`
	Phone      string `json:"phone"       validate:"required,phoneph"`
	Address    string `json:"address"     validate:"omitempty,max=255"`
	City       string `json:"city"        validate:"omitempty,max=100"`
	PostalCode string `json:"postal_code" validate:"omitempty,postalph"`
}

func (w WalkInGuestRequest) ToModel() model.Guest {
	return model.Guest{
		FirstName:  w.FirstName,
		MiddleName: w.MiddleName,
		LastName:   w.LastName,
		Email:      w.Email,
		Phone:      w.Phone,
		Address:    w.Address,
		City:       w.City,
		PostalCode: w.PostalCode,
	}
}

type GuestResponse struct {
	ID         int64  `json:"guestId"`
	FirstName  string `json:"firstName"`
	MiddleName string `json:"middleName,omitempty"`
	LastName   string `json:"lastName"`
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
}

func NewGuestResponse(guest model.Guest) GuestResponse {
	return GuestResponse{
		ID:         guest.ID,
		FirstName:  guest.FirstName,
		MiddleName: guest.MiddleName,
		LastName:   guest.LastName,
		FullName:   guest.FullName(),
		Email:      guest.Email,
		Phone:      guest.Phone,
		Address:    guest.Address,
		City:       guest.City,
		PostalCode: guest.PostalCode,
	}
}
