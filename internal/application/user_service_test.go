package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yash-kumarsharma/vellum/internal/api/middleware"
	"github.com/yash-kumarsharma/vellum/internal/domain/user"
	"github.com/yash-kumarsharma/vellum/internal/repository"
	"github.com/yash-kumarsharma/vellum/internal/testutils"
)

func setupUserService(t *testing.T) *UserService {
	t.Helper()
	db := testutils.NewTestDB(t)
	return NewUserService(repository.NewRepositories(db))
}

func stubToken(t *testing.T, token string) {
	t.Helper()
	orig := middleware.GenerateToken
	middleware.GenerateToken = func(userID uint, email string, expire time.Duration) (string, error) {
		return token, nil
	}
	t.Cleanup(func() { middleware.GenerateToken = orig })
}

func TestRegisterAndLogin(t *testing.T) {
	svc := setupUserService(t)
	stubToken(t, "stub-token")

	pub, err := svc.Register(user.RegisterInput{Email: "a@x.com", Password: "secret123", Name: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", pub.Email)
	assert.Equal(t, "Ada", pub.Name)
	assert.NotZero(t, pub.ID)

	u, token, err := svc.Login("a@x.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "stub-token", token)
	assert.Equal(t, pub.ID, u.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := setupUserService(t)

	_, err := svc.Register(user.RegisterInput{Email: "a@x.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Register(user.RegisterInput{Email: "a@x.com", Password: "other456"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := setupUserService(t)
	stubToken(t, "stub-token")

	_, err := svc.Register(user.RegisterInput{Email: "a@x.com", Password: "secret123"})
	require.NoError(t, err)

	_, _, err = svc.Login("a@x.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// unknown email reports the same error as a wrong password
	_, _, err = svc.Login("nobody@x.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestPasswordNeverSerialized(t *testing.T) {
	svc := setupUserService(t)

	pub, err := svc.Register(user.RegisterInput{Email: "a@x.com", Password: "secret123"})
	require.NoError(t, err)

	got, err := svc.Me(pub.ID)
	require.NoError(t, err)
	assert.Equal(t, user.PublicUser{ID: pub.ID, Email: "a@x.com", Name: ""}, got)
}

func TestUpdateProfile(t *testing.T) {
	svc := setupUserService(t)

	pub, err := svc.Register(user.RegisterInput{Email: "a@x.com", Password: "secret123", Name: "Ada"})
	require.NoError(t, err)
	other, err := svc.Register(user.RegisterInput{Email: "b@x.com", Password: "secret123"})
	require.NoError(t, err)

	name := "Grace"
	updated, err := svc.UpdateProfile(pub.ID, user.UpdateProfileInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Grace", updated.Name)
	assert.Equal(t, "a@x.com", updated.Email)

	taken := "a@x.com"
	_, err = svc.UpdateProfile(other.ID, user.UpdateProfileInput{Email: &taken})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUpdatePassword(t *testing.T) {
	svc := setupUserService(t)
	stubToken(t, "stub-token")

	pub, err := svc.Register(user.RegisterInput{Email: "a@x.com", Password: "secret123"})
	require.NoError(t, err)

	err = svc.UpdatePassword(pub.ID, user.UpdatePasswordInput{OldPassword: "nope", NewPassword: "next456"})
	assert.ErrorIs(t, err, ErrIncorrectPassword)

	err = svc.UpdatePassword(pub.ID, user.UpdatePasswordInput{OldPassword: "secret123", NewPassword: "next456"})
	require.NoError(t, err)

	_, _, err = svc.Login("a@x.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login("a@x.com", "next456")
	assert.NoError(t, err)
}
