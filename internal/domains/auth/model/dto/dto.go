package dto

import (
	guestDto "innkeep/internal/domains/guest/model/dto"
)

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	// Staff logins additionally verify a staff record exists.
	AsStaff bool `json:"asStaff"`
}

type SignupRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`

	FirstName  string `json:"firstName"  validate:"required,max=100"`
	MiddleName string `json:"middleName" validate:"omitempty,max=100"`
	LastName   string `json:"lastName"   validate:"required,max=100"`
	Phone      string `json:"phone"      validate:"omitempty,phoneph"`
	Address    string `json:"address"    validate:"omitempty,max=255"`
	City       string `json:"city"       validate:"omitempty,max=100"`
	PostalCode string `json:"postalCode" validate:"omitempty,postalph"`
}

func (s *SignupRequest) ToWalkInGuest() guestDto.WalkInGuestRequest {
	return guestDto.WalkInGuestRequest{
		FirstName:  s.FirstName,
		MiddleName: s.MiddleName,
		LastName:   s.LastName,
		Email:      s.Email,
		Phone:      s.Phone,
		Address:    s.Address,
		City:       s.City,
		PostalCode: s.PostalCode,
	}
}

type SessionResponse struct {
	Email     string `json:"email"`
	ActorType string `json:"actorType"`
	StaffRole string `json:"staffRole,omitempty"`
	SignedIn  bool   `json:"signedIn"`
}
