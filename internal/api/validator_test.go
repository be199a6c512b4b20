package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateISBN(t *testing.T) {
	type payload struct {
		ISBN string `validate:"isbn"`
	}

	valid := []string{
		"9780441007318",
		"978-0-441-00731-8",
		"0441007317",
		"043942089X",
		"0 439 42089 X",
	}
	for _, isbn := range valid {
		assert.NoError(t, validate.Struct(payload{ISBN: isbn}), isbn)
	}

	invalid := []string{
		"",
		"12345",
		"978044100731",    // 12 digits
		"97804410073188",  // 14 digits
		"04410073X1",      // X only valid in the check digit position
		"abcdefghij",
		"97804410073X8",
	}
	for _, isbn := range invalid {
		assert.Error(t, validate.Struct(payload{ISBN: isbn}), isbn)
	}
}

func TestValidationDetails_FieldMessages(t *testing.T) {
	type payload struct {
		Email string `validate:"required,email"`
		Count int    `validate:"min=1"`
	}

	err := validate.Struct(payload{})
	details := validationDetails(err)
	assert.Len(t, details, 2)
	assert.Equal(t, "email", details[0].Field)
	assert.Equal(t, "is required", details[0].Message)
	assert.Equal(t, "count", details[1].Field)
	assert.Equal(t, "must be at least 1", details[1].Message)
}
