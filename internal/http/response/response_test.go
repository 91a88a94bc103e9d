package response_test

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/http/response"
)

func TestError(t *testing.T) {
	msg := response.Error("Invalid credentials")
	assert.Equal(t, "Invalid credentials", msg.Message)
}

func TestValidationError(t *testing.T) {
	type form struct {
		Name     string `validate:"required"`
		Email    string `validate:"required,email"`
		Password string `validate:"required,min=6"`
	}

	validate := validator.New()

	tests := []struct {
		name string
		in   form
		want string
	}{
		{
			name: "all fields missing",
			in:   form{},
			want: "field Name is a required field, field Email is a required field, field Password is a required field",
		},
		{
			name: "bad email",
			in:   form{Name: "Alice", Email: "not-an-email", Password: "pw123456"},
			want: "field Email must be a valid email address",
		},
		{
			name: "short password",
			in:   form{Name: "Alice", Email: "alice@example.com", Password: "pw"},
			want: "field Password is too short",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.in)
			require.Error(t, err)

			msg := response.ValidationError(err.(validator.ValidationErrors))
			assert.Equal(t, tt.want, msg.Message)
		})
	}
}
