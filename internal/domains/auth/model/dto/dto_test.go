package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"innkeep/internal/domains/auth/model/dto"
)

func TestSignupRequest_ToWalkInGuest(t *testing.T) {
	req := dto.SignupRequest{
		Email:      "maria@example.com",
		Password:   "secret-pass",
		FirstName:  "Maria",
		MiddleName: "Santos",
		LastName:   "Reyes",
		Phone:      "09171234567",
		Address:    "12 Mabini St",
		City:       "Makati",
		PostalCode: "1200",
	}

	// the full chain used at signup: request -> guest form -> guest row
	guest := req.ToWalkInGuest().ToModel()

	assert.Equal(t, "Maria", guest.FirstName)
	assert.Equal(t, "Santos", guest.MiddleName)
	assert.Equal(t, "Reyes", guest.LastName)
	assert.Equal(t, "maria@example.com", guest.Email)
	assert.Equal(t, "09171234567", guest.Phone)
	assert.Equal(t, "12 Mabini St", guest.Address)
	assert.Equal(t, "Makati", guest.City)
	assert.Equal(t, "1200", guest.PostalCode)
}
