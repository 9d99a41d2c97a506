package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "fintrack/internal/domain/error"
	"fintrack/internal/domain/usecase/usecasetest"
)

// Tokens are validated against the real clock, so issue them from now
var testNow = time.Now().UTC().Truncate(time.Second)

func newAuth(t *testing.T) *UseCase {
	t.Helper()
	store := usecasetest.NewStore()
	return NewUseCase(
		store.Users(context.Background()),
		usecasetest.NewClock(testNow),
		usecasetest.NewNopLogger(),
		"test-secret",
		12*time.Hour,
	)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores a hashed credential", func(t *testing.T) {
		auth := newAuth(t)
		user, err := auth.Register(ctx, "Alice", "Alice@Example.com", "secret1")
		require.NoError(t, err)
		assert.NotZero(t, user.ID)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.NotEqual(t, "secret1", user.PasswordHash)
	})

	t.Run("Short password is rejected", func(t *testing.T) {
		auth := newAuth(t)
		_, err := auth.Register(ctx, "Alice", "alice@example.com", "12345")
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("Duplicate email is rejected", func(t *testing.T) {
		auth := newAuth(t)
		_, err := auth.Register(ctx, "Alice", "alice@example.com", "secret1")
		require.NoError(t, err)
		_, err = auth.Register(ctx, "Other", "alice@example.com", "secret2")
		assert.ErrorIs(t, err, errs.ErrEmailTaken)
	})

	t.Run("Invalid email is rejected", func(t *testing.T) {
		auth := newAuth(t)
		_, err := auth.Register(ctx, "Alice", "not-an-email", "secret1")
		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Round trip issues a parseable token", func(t *testing.T) {
		auth := newAuth(t)
		user, err := auth.Register(ctx, "Alice", "alice@example.com", "secret1")
		require.NoError(t, err)

		token, err := auth.Login(ctx, "alice@example.com", "secret1")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := auth.ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, "alice@example.com", claims.Email)
		assert.Equal(t, "Alice", claims.Name)
		require.NotNil(t, claims.ExpiresAt)
		assert.Equal(t, testNow.Add(12*time.Hour).Unix(), claims.ExpiresAt.Unix())
	})

	t.Run("Email lookup is case insensitive", func(t *testing.T) {
		auth := newAuth(t)
		_, err := auth.Register(ctx, "Alice", "alice@example.com", "secret1")
		require.NoError(t, err)

		_, err = auth.Login(ctx, "  Alice@Example.COM ", "secret1")
		assert.NoError(t, err)
	})

	t.Run("Wrong password and unknown user look the same", func(t *testing.T) {
		auth := newAuth(t)
		_, err := auth.Register(ctx, "Alice", "alice@example.com", "secret1")
		require.NoError(t, err)

		_, wrongPassword := auth.Login(ctx, "alice@example.com", "wrong")
		_, unknownUser := auth.Login(ctx, "nobody@example.com", "secret1")

		assert.ErrorIs(t, wrongPassword, errs.ErrInvalidCredentials)
		assert.ErrorIs(t, unknownUser, errs.ErrInvalidCredentials)
	})

	t.Run("Blank credentials are rejected", func(t *testing.T) {
		auth := newAuth(t)
		_, err := auth.Login(ctx, "", "")
		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestParseToken(t *testing.T) {
	ctx := context.Background()

	t.Run("Garbage token", func(t *testing.T) {
		auth := newAuth(t)
		_, err := auth.ParseToken("not.a.token")
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})

	t.Run("Token signed with a different secret", func(t *testing.T) {
		auth := newAuth(t)
		_, err := auth.Register(ctx, "Alice", "alice@example.com", "secret1")
		require.NoError(t, err)
		token, err := auth.Login(ctx, "alice@example.com", "secret1")
		require.NoError(t, err)

		other := NewUseCase(
			usecasetest.NewStore().Users(ctx),
			usecasetest.NewClock(testNow),
			usecasetest.NewNopLogger(),
			"other-secret",
			12*time.Hour,
		)
		_, err = other.ParseToken(token)
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})
}

func TestMe(t *testing.T) {
	ctx := context.Background()
	auth := newAuth(t)

	user, err := auth.Register(ctx, "Alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	me, err := auth.Me(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, me.Email)

	_, err = auth.Me(ctx, user.ID+1)
	assert.ErrorIs(t, err, errs.ErrUserNotFound)
}
