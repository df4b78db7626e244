package response

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email  string `validate:"required,email"`
	Kind   string `validate:"oneof=free paid"`
	Seats  int    `validate:"gte=1"`
	Secret string `validate:"min=8"`
	When   string `validate:"datetime=2006-01-02T15:04:05Z07:00"`
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	err := validator.New().Struct(sample{Kind: "vip", Secret: "short", When: "soon"})
	require.Error(t, err)

	var validateErr validator.ValidationErrors
	require.True(t, errors.As(err, &validateErr))

	resp := ValidationError(validateErr)

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t,
		"field Email is a required field, "+
			"field Kind must be one of [free paid], "+
			"field Seats must be greater than 1, "+
			"field Secret must be at least 8, "+
			"field When must be an RFC 3339 timestamp",
		resp.Error,
	)
}

func TestOKAndError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Response{Status: StatusOK}, OK())
	assert.Equal(t, Response{Status: StatusError, Error: "boom"}, Error("boom"))
}
