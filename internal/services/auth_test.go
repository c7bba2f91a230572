package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventsmanager/internal/domain"
)

// fakeHasher implements domain.PasswordHasher with reversible fake values.
type fakeHasher struct {
	saltErr error
	hashErr error
}

func (f *fakeHasher) GenerateSalt() (string, error) {
	if f.saltErr != nil {
		return "", f.saltErr
	}
	return "salt", nil
}

func (f *fakeHasher) Hash(salt, password string) (string, error) {
	if f.hashErr != nil {
		return "", f.hashErr
	}
	return "hashed:" + salt + ":" + password, nil
}

func (f *fakeHasher) Compare(hash, salt, password string) error {
	if hash == "hashed:"+salt+":"+password {
		return nil
	}
	return errors.New("mismatch")
}

// fakeTokenIssuer implements domain.TokenIssuer for tests.
type fakeTokenIssuer struct {
	err        error
	lastUserID string
	lastEmail  string
	lastExpiry time.Duration
}

func (f *fakeTokenIssuer) Issue(userID, email string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.lastUserID = userID
	f.lastEmail = email
	f.lastExpiry = expiry
	return fmt.Sprintf("token-for-%s", userID), nil
}

type authServiceFixture struct {
	users  *fakeUserRepo
	hasher *fakeHasher
	issuer *fakeTokenIssuer
	emails *fakeEmailService
	svc    domain.AuthService
}

func newAuthServiceFixture() *authServiceFixture {
	f := &authServiceFixture{
		users:  newFakeUserRepo(),
		hasher: &fakeHasher{},
		issuer: &fakeTokenIssuer{},
		emails: &fakeEmailService{},
	}
	f.svc = NewAuthService(f.users, f.hasher, f.issuer, 24*time.Hour, f.emails, testLogger)
	return f
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user and issues token", func(t *testing.T) {
		f := newAuthServiceFixture()
		user, token, err := f.svc.Register(ctx, "alice", "Alice@Example.com", "s3cret")
		require.NoError(t, err)

		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.Equal(t, "hashed:salt:s3cret", user.PasswordHash)
		assert.Equal(t, "token-for-"+user.ID, token)
		assert.Equal(t, 24*time.Hour, f.issuer.lastExpiry)

		require.Len(t, f.emails.welcomes, 1)
		assert.Equal(t, "alice@example.com", f.emails.welcomes[0].Email)
	})

	t.Run("all fields are required", func(t *testing.T) {
		f := newAuthServiceFixture()
		for _, tc := range []struct{ username, email, password string }{
			{"", "a@b.com", "pw"},
			{"alice", "", "pw"},
			{"alice", "a@b.com", ""},
		} {
			_, _, err := f.svc.Register(ctx, tc.username, tc.email, tc.password)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
		}
	})

	t.Run("invalid email format", func(t *testing.T) {
		f := newAuthServiceFixture()
		_, _, err := f.svc.Register(ctx, "alice", "not-an-email", "pw")
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("duplicate user", func(t *testing.T) {
		f := newAuthServiceFixture()
		_, _, err := f.svc.Register(ctx, "alice", "alice@example.com", "pw")
		require.NoError(t, err)

		_, _, err = f.svc.Register(ctx, "alice", "other@example.com", "pw")
		require.ErrorIs(t, err, domain.ErrDuplicateUser)
	})

	t.Run("welcome email failure does not fail registration", func(t *testing.T) {
		f := newAuthServiceFixture()
		f.emails.sendErr = errors.New("smtp down")
		_, token, err := f.svc.Register(ctx, "alice", "alice@example.com", "pw")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("token issue failure", func(t *testing.T) {
		f := newAuthServiceFixture()
		f.issuer.err = errors.New("bad key")
		_, _, err := f.svc.Register(ctx, "alice", "alice@example.com", "pw")
		require.Error(t, err)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	register := func(t *testing.T, f *authServiceFixture) *domain.User {
		t.Helper()
		user, _, err := f.svc.Register(ctx, "alice", "alice@example.com", "s3cret")
		require.NoError(t, err)
		return user
	}

	t.Run("valid credentials return token and user", func(t *testing.T) {
		f := newAuthServiceFixture()
		user := register(t, f)

		token, got, err := f.svc.Login(ctx, "alice", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, "token-for-"+user.ID, token)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, "alice@example.com", got.Email)
	})

	t.Run("unknown username", func(t *testing.T) {
		f := newAuthServiceFixture()
		_, _, err := f.svc.Login(ctx, "nobody", "pw")
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newAuthServiceFixture()
		register(t, f)
		_, _, err := f.svc.Login(ctx, "alice", "wrong")
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("missing fields", func(t *testing.T) {
		f := newAuthServiceFixture()
		_, _, err := f.svc.Login(ctx, "", "pw")
		require.ErrorIs(t, err, domain.ErrInvalidInput)
		_, _, err = f.svc.Login(ctx, "alice", "")
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
