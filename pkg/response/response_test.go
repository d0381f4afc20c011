package response

import (
	"errors"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorIs(t *testing.T) {
	errA := NewError(http.StatusNotFound, "blog not found")
	errB := NewError(http.StatusNotFound, "blog not found")

	assert.ErrorIs(t, errA, errB)
	assert.NotErrorIs(t, errA, NewError(http.StatusNotFound, "comment not found"))
}

func TestValidationErrorErr(t *testing.T) {
	v := &ValidationError{}
	assert.NoError(t, v.Err())

	v.Add("title", "min", "title too short")
	v.Add("content", "min", "content too short")
	require.Error(t, v.Err())
	assert.Equal(t, "validation failed: title too short; content too short", v.Error())
}

func TestFromValidator(t *testing.T) {
	type req struct {
		Title string   `validate:"required"`
		Body  string   `validate:"min=10"`
		IDs   []string `validate:"min=1"`
	}

	out := FromValidator(validator.New().Struct(req{Body: "short"}))
	require.Len(t, out.Fields, 3)
	assert.Equal(t, "Title", out.Fields[0].Field)
	assert.Equal(t, "IDs must contain at least 1 item(s)", out.Fields[2].Message)

	other := FromValidator(errors.New("bad json"))
	require.Len(t, other.Fields, 1)
	assert.Equal(t, "body", other.Fields[0].Field)
}
