package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"

	val "github.com/go-playground/validator/v10"

	"innkeep/shared/failure"
)

var validate *val.Validate

// Philippine mobile numbers only: 09xxxxxxxxx or 639xxxxxxxxx.
var phonePattern = regexp.MustCompile(`^(09[0-9]{9}|639[0-9]{9})$`)

// Four-digit postal codes without a leading zero.
var postalPattern = regexp.MustCompile(`^[1-9][0-9]{3}$`)

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	err := validate.RegisterValidation("phoneph", func(fl val.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("postalph", func(fl val.FieldLevel) bool {
		return postalPattern.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
