package validator_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"innkeep/shared/validator"
)

type profileForm struct {
	Email      string `json:"email"       validate:"required,email"`
	Phone      string `json:"phone"       validate:"required,phoneph"`
	PostalCode string `json:"postal_code" validate:"omitempty,postalph"`
}

func TestValidate_PhonePH(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		wantErr bool
	}{
		{name: "mobile with 09 prefix", phone: "09171234567", wantErr: false},
		{name: "mobile with 639 prefix", phone: "639171234567", wantErr: false},
		{name: "too short", phone: "0917123456", wantErr: true},
		{name: "landline prefix", phone: "0281234567", wantErr: true},
		{name: "letters", phone: "09abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := profileForm{Email: "ana@example.com", Phone: tt.phone}

			err := validator.ValidateStruct(&form)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_PostalPH(t *testing.T) {
	form := profileForm{Email: "ana@example.com", Phone: "09171234567", PostalCode: "0123"}
	assert.Error(t, validator.ValidateStruct(&form))

	form.PostalCode = "1000"
	assert.NoError(t, validator.ValidateStruct(&form))

	// omitempty: empty postal code passes
	form.PostalCode = ""
	assert.NoError(t, validator.ValidateStruct(&form))
}

func TestValidate_DecodesBody(t *testing.T) {
	body := strings.NewReader(`{"email":"ana@example.com","phone":"09171234567"}`)

	form := profileForm{}
	err := validator.Validate(body, &form)

	assert.NoError(t, err)
	assert.Equal(t, "ana@example.com", form.Email)
}

func TestValidate_RejectsMalformedJSON(t *testing.T) {
	body := strings.NewReader(`{"email":`)

	form := profileForm{}
	err := validator.Validate(body, &form)

	assert.Error(t, err)
}
