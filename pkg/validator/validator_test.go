package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createReviewPayload struct {
	Rating int    `validate:"required,min=1,max=5"`
	Title  string `validate:"max=255"`
}

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, Validate(createReviewPayload{Rating: 4, Title: "ok"}))
}

func TestValidate_MissingRequired(t *testing.T) {
	err := Validate(createReviewPayload{})
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "is required", valErr.Fields()["Rating"])
}

func TestValidate_OutOfRange(t *testing.T) {
	err := Validate(createReviewPayload{Rating: 9})
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Contains(t, valErr.Error(), "Rating")
	assert.Contains(t, valErr.Fields()["Rating"], "at most 5")
}
