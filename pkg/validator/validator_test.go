package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerForm struct {
	FirstName       string `validate:"required,min=1,max=100"`
	LastName        string `validate:"required,min=1,max=100"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=8"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

type productForm struct {
	Title    string  `validate:"required,min=1,max=255"`
	Category string  `validate:"required,oneof=JAR NORMAL LUXURY"`
	Price    float64 `validate:"gte=0"`
	Stock    int     `validate:"gte=0"`
}

func TestValidate_Valid(t *testing.T) {
	f := registerForm{
		FirstName:       "Jamie",
		LastName:        "Perera",
		Email:           "jamie@example.com",
		Password:        "sup3rsecret",
		ConfirmPassword: "sup3rsecret",
	}
	assert.NoError(t, Validate(f))
}

func TestValidate_MissingRequired(t *testing.T) {
	err := Validate(registerForm{})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)

	fields := valErr.Fields()
	assert.Equal(t, "is required", fields["FirstName"])
	assert.Equal(t, "is required", fields["Email"])
}

func TestValidate_PasswordMismatch(t *testing.T) {
	f := registerForm{
		FirstName:       "Jamie",
		LastName:        "Perera",
		Email:           "jamie@example.com",
		Password:        "sup3rsecret",
		ConfirmPassword: "different",
	}
	err := Validate(f)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "must match Password", valErr.Fields()["ConfirmPassword"])
}

func TestValidate_InvalidEmail(t *testing.T) {
	f := registerForm{
		FirstName:       "Jamie",
		LastName:        "Perera",
		Email:           "not-an-email",
		Password:        "sup3rsecret",
		ConfirmPassword: "sup3rsecret",
	}
	err := Validate(f)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "must be a valid email address", valErr.Fields()["Email"])
}

func TestValidate_ShortPassword(t *testing.T) {
	f := registerForm{
		FirstName:       "Jamie",
		LastName:        "Perera",
		Email:           "jamie@example.com",
		Password:        "short",
		ConfirmPassword: "short",
	}
	err := Validate(f)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "must be at least 8 characters", valErr.Fields()["Password"])
}

func TestValidate_OneOfCategory(t *testing.T) {
	err := Validate(productForm{Title: "Vanilla Jar", Category: "SCENTED"})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "must be one of: JAR NORMAL LUXURY", valErr.Fields()["Category"])
}

func TestValidate_NegativePrice(t *testing.T) {
	err := Validate(productForm{Title: "Vanilla Jar", Category: "JAR", Price: -1})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "must be greater than or equal to 0", valErr.Fields()["Price"])
}

func TestValidationError_ErrorString(t *testing.T) {
	err := Validate(productForm{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 'Title' is required")
}
