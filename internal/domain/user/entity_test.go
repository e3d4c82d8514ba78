package user

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("ValidUser", func(t *testing.T) {
		u, err := NewUser("Alice@Example.com", "Alice", "Smith", "password123")
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, u.ID())
		assert.Equal(t, "alice@example.com", u.Email())
		assert.True(t, u.IsActive())
		assert.NotEmpty(t, u.PasswordHash())
		assert.NotEqual(t, "password123", u.PasswordHash())
		assert.Nil(t, u.LastLoginAt())
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		_, err := NewUser("not-an-email", "Alice", "Smith", "password123")
		assert.ErrorIs(t, err, ErrInvalidEmail)
	})

	t.Run("ShortPassword", func(t *testing.T) {
		_, err := NewUser("alice@example.com", "Alice", "Smith", "short")
		assert.ErrorIs(t, err, ErrPasswordTooWeak)
	})
}

func TestCheckPassword(t *testing.T) {
	u, err := NewUser("bob@example.com", "Bob", "Stone", "password123")
	require.NoError(t, err)

	assert.NoError(t, u.CheckPassword("password123"))
	assert.ErrorIs(t, u.CheckPassword("wrong"), ErrInvalidPassword)
}

func TestChangePassword(t *testing.T) {
	u, err := NewUser("carol@example.com", "Carol", "White", "password123")
	require.NoError(t, err)

	require.NoError(t, u.ChangePassword("newpassword456"))
	assert.NoError(t, u.CheckPassword("newpassword456"))
	assert.ErrorIs(t, u.CheckPassword("password123"), ErrInvalidPassword)

	assert.ErrorIs(t, u.ChangePassword("tiny"), ErrPasswordTooWeak)
}

func TestRecordLogin(t *testing.T) {
	u, err := NewUser("dave@example.com", "Dave", "Brown", "password123")
	require.NoError(t, err)

	u.RecordLogin()
	require.NotNil(t, u.LastLoginAt())
}
