package authService

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"BlogPublisher/internal/api/auth"
	authRepository "BlogPublisher/internal/api/auth/repository"
	"BlogPublisher/internal/entity"
	"BlogPublisher/pkg/bcrypt"
	jwtPkg "BlogPublisher/pkg/jwt"
	"BlogPublisher/pkg/response"
	"BlogPublisher/pkg/validate"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUtils struct {
	seq int
}

func (u *fakeUtils) NewULIDFromTimestamp(time.Time) (string, error) {
	u.seq++
	return "user-" + string(rune('0'+u.seq)), nil
}

func (u *fakeUtils) Now() time.Time {
	return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
}

type fakeUsers struct {
	byID map[string]entity.User
}

func (f *fakeUsers) CreateUser(_ context.Context, user entity.User) error {
	for _, u := range f.byID {
		if strings.EqualFold(u.Email, user.Email) {
			return auth.ErrEmailAlreadyExists
		}
	}
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (entity.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return entity.User{}, auth.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (entity.User, error) {
	for _, u := range f.byID {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return entity.User{}, auth.ErrUserNotFound
}

type fakeRepo struct {
	users *fakeUsers
}

func (r *fakeRepo) NewClient(bool) (authRepository.Client, error) {
	return authRepository.Client{
		Users:    r.users,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

func newTestService(t *testing.T) (AuthService, *fakeUsers) {
	t.Helper()
	t.Setenv(jwtPkg.AccessTokenSecret, "test-secret")

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	users := &fakeUsers{byID: map[string]entity.User{}}
	svc := New(logger, &fakeRepo{users: users}, validate.New(), bcrypt.NewWithCost(4), &fakeUtils{})
	return svc, users
}

func TestRegisterUser(t *testing.T) {
	svc, users := newTestService(t)

	res, err := svc.User().RegisterUser(context.Background(), auth.CreateUserRequest{
		Name:     "  Alice  ",
		Email:    "Alice@Example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.Equal(t, "user-1", res.ID)
	assert.Equal(t, "Alice", res.Name)
	assert.Equal(t, "alice@example.com", res.Email)
	assert.Equal(t, entity.RoleUser, res.Role)

	stored := users.byID[res.ID]
	assert.NotEqual(t, "password123", stored.Password)
	assert.NoError(t, bcrypt.New().ComparePassword(stored.Password, "password123"))
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	req := auth.CreateUserRequest{Name: "Alice", Email: "alice@example.com", Password: "password123"}

	_, err := svc.User().RegisterUser(context.Background(), req)
	require.NoError(t, err)

	req.Email = "ALICE@example.com"
	_, err = svc.User().RegisterUser(context.Background(), req)
	assert.ErrorIs(t, err, auth.ErrEmailAlreadyExists)
}

func TestRegisterUserValidation(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.User().RegisterUser(context.Background(), auth.CreateUserRequest{
		Name:     "Al",
		Email:    "not-an-email",
		Password: "short",
	})

	var verr *response.ValidationError
	require.ErrorAs(t, err, &verr)

	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"name", "email", "password"}, fields)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)
	registered, err := svc.User().RegisterUser(context.Background(), auth.CreateUserRequest{
		Name: "Alice", Email: "alice@example.com", Password: "password123",
	})
	require.NoError(t, err)

	res, err := svc.Auth().Login(context.Background(), auth.LoginUserRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.InDelta(t, 60, res.ExpiresInMinutes, 1)

	user, err := jwtPkg.ParseBearer("Bearer " + res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Equal(t, "Alice", user.Username)
	assert.Equal(t, entity.RoleUser, user.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.User().RegisterUser(context.Background(), auth.CreateUserRequest{
		Name: "Alice", Email: "alice@example.com", Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.Auth().Login(context.Background(), auth.LoginUserRequest{Email: "alice@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, auth.ErrInvalidEmailOrPassword)

	_, err = svc.Auth().Login(context.Background(), auth.LoginUserRequest{Email: "bob@example.com", Password: "password123"})
	assert.ErrorIs(t, err, auth.ErrInvalidEmailOrPassword)
}

func TestGetByID(t *testing.T) {
	svc, users := newTestService(t)
	users.byID["u1"] = entity.User{ID: "u1", Email: "a@example.com", Name: "Alice", Role: entity.RoleAdmin}

	res, err := svc.User().GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, res.Role)

	_, err = svc.User().GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}
