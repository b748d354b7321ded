package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignupRequestValidate(t *testing.T) {
	valid := SignupRequest{
		Email:           "ada@example.com",
		Password:        "passw0rd1",
		ConfirmPassword: "passw0rd1",
		Name:            "Ada Lovelace",
	}

	t.Run("valid", func(t *testing.T) {
		req := valid

		assert.NoError(t, req.Validate())
	})

	t.Run("bad email", func(t *testing.T) {
		req := valid
		req.Email = "not-an-email"

		assert.Error(t, req.Validate())
	})

	t.Run("password too short", func(t *testing.T) {
		req := valid
		req.Password = "ab1"
		req.ConfirmPassword = "ab1"

		assert.ErrorIs(t, req.Validate(), errInvalidPassword)
	})

	t.Run("password without a digit", func(t *testing.T) {
		req := valid
		req.Password = "passwords"
		req.ConfirmPassword = "passwords"

		assert.ErrorIs(t, req.Validate(), errInvalidPassword)
	})

	t.Run("password without a letter", func(t *testing.T) {
		req := valid
		req.Password = "123456789"
		req.ConfirmPassword = "123456789"

		assert.ErrorIs(t, req.Validate(), errInvalidPassword)
	})

	t.Run("confirmation mismatch", func(t *testing.T) {
		req := valid
		req.ConfirmPassword = "different1"

		assert.ErrorIs(t, req.Validate(), errConfirmPasswordMismatch)
	})

	t.Run("name too short", func(t *testing.T) {
		req := valid
		req.Name = "A"

		assert.Error(t, req.Validate())
	})
}

func TestResetPasswordRequestValidate(t *testing.T) {
	valid := ResetPasswordRequest{
		Email:       "ada@example.com",
		Code:        "123456",
		NewPassword: "passw0rd1",
	}

	t.Run("valid", func(t *testing.T) {
		req := valid

		assert.NoError(t, req.Validate())
	})

	t.Run("code must be six characters", func(t *testing.T) {
		req := valid
		req.Code = "1234"

		assert.Error(t, req.Validate())
	})

	t.Run("weak new password", func(t *testing.T) {
		req := valid
		req.NewPassword = "short"

		assert.ErrorIs(t, req.Validate(), errInvalidPassword)
	})
}
