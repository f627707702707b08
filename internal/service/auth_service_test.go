package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/phrazzld/employee-api/internal/config"
	"github.com/phrazzld/employee-api/internal/domain"
	"github.com/phrazzld/employee-api/internal/mocks"
	"github.com/phrazzld/employee-api/internal/platform/memory"
	"github.com/phrazzld/employee-api/internal/service"
	"github.com/phrazzld/employee-api/internal/service/auth"
	"github.com/phrazzld/employee-api/internal/store"
	"github.com/phrazzld/employee-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "service-test-secret-that-is-32-chars-long"

type authFixture struct {
	svc    service.AuthService
	users  *memory.UserStore
	hasher auth.PasswordHasher
	tokens auth.JWTService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	users := memory.New().Users()
	hasher := &mocks.MockPasswordHasher{}
	tokens, err := auth.NewJWTService(config.AuthConfig{JWTSecret: testSecret})
	require.NoError(t, err)

	svc, err := service.NewAuthService(users, hasher, tokens, nil)
	require.NoError(t, err)

	return &authFixture{svc: svc, users: users, hasher: hasher, tokens: tokens}
}

func requireKind(t *testing.T, err error, kind domain.ErrorKind) *domain.Error {
	t.Helper()
	require.Error(t, err)
	var derr *domain.Error
	require.True(t, errors.As(err, &derr), "expected *domain.Error, got %T: %v", err, err)
	require.Equal(t, kind, derr.Kind, "message: %s", derr.Message)
	return derr
}

func TestNewAuthService_RequiresDependencies(t *testing.T) {
	users := memory.New().Users()
	hasher := &mocks.MockPasswordHasher{}
	tokens := &mocks.MockJWTService{}

	_, err := service.NewAuthService(nil, hasher, tokens, nil)
	assert.Error(t, err)
	_, err = service.NewAuthService(users, nil, tokens, nil)
	assert.Error(t, err)
	_, err = service.NewAuthService(users, hasher, nil, nil)
	assert.Error(t, err)
}

func TestSignup_MissingFields(t *testing.T) {
	tests := []struct {
		name    string
		in      service.SignupInput
		message string
	}{
		{"missing username", service.SignupInput{Email: "a@example.com", Password: "pw"}, "username is required"},
		{"blank username", service.SignupInput{Username: "  ", Email: "a@example.com", Password: "pw"}, "username is required"},
		{"missing email", service.SignupInput{Username: "alice", Password: "pw"}, "email is required"},
		{"missing password", service.SignupInput{Username: "alice", Email: "a@example.com"}, "password is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(mocks.TestifyMockUserStore)
			svc, err := service.NewAuthService(users, &mocks.MockPasswordHasher{}, &mocks.MockJWTService{}, nil)
			require.NoError(t, err)

			user, err := svc.Signup(context.Background(), tt.in)
			derr := requireKind(t, err, domain.KindInvalidInput)
			assert.Equal(t, tt.message, derr.Message)
			assert.Nil(t, user)

			// No store access of any kind.
			users.AssertNotCalled(t, "FindByUsernameOrEmail", mock.Anything, mock.Anything, mock.Anything)
			users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestSignup_Success(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	user, err := f.svc.Signup(ctx, service.SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Empty(t, user.HashedPassword)

	stored, err := f.users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", stored.HashedPassword)
	assert.True(t, f.hasher.Verify(stored.HashedPassword, "s3cret"))
	assert.False(t, f.hasher.Verify(stored.HashedPassword, "other"))
}

func TestSignup_WithBcryptHashesVerifiably(t *testing.T) {
	users := memory.New().Users()
	hasher, err := auth.NewBcryptHasher(auth.MinBcryptCost)
	require.NoError(t, err)
	svc, err := service.NewAuthService(users, hasher, &mocks.MockJWTService{}, nil)
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), service.SignupInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "hunter2",
	})
	require.NoError(t, err)

	stored, err := users.GetByUsername(context.Background(), "bob")
	require.NoError(t, err)
	assert.True(t, hasher.Verify(stored.HashedPassword, "hunter2"))
	assert.False(t, hasher.Verify(stored.HashedPassword, "hunter3"))
}

func TestSignup_Conflicts(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.svc.Signup(ctx, service.SignupInput{
		Username: "alice", Email: "alice@example.com", Password: "pw",
	})
	require.NoError(t, err)

	tests := []struct {
		name    string
		in      service.SignupInput
		message string
	}{
		{
			name:    "same username",
			in:      service.SignupInput{Username: "alice", Email: "new@example.com", Password: "pw"},
			message: service.MsgUsernameExists,
		},
		{
			name:    "same email",
			in:      service.SignupInput{Username: "newbie", Email: "alice@example.com", Password: "pw"},
			message: service.MsgEmailExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := f.svc.Signup(ctx, tt.in)
			derr := requireKind(t, err, domain.KindConflict)
			assert.Equal(t, tt.message, derr.Message)
			assert.Nil(t, user)
		})
	}

	// Store state unchanged.
	_, err = f.users.GetByUsername(ctx, "newbie")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestSignup_RaceLostAtInsertIsConflict(t *testing.T) {
	users := new(mocks.TestifyMockUserStore)
	users.On("FindByUsernameOrEmail", mock.Anything, "alice", "alice@example.com").
		Return(nil, store.ErrUserNotFound)
	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
		Return(store.ErrEmailExists)

	svc, err := service.NewAuthService(users, &mocks.MockPasswordHasher{}, &mocks.MockJWTService{}, nil)
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), service.SignupInput{
		Username: "alice", Email: "alice@example.com", Password: "pw",
	})
	derr := requireKind(t, err, domain.KindConflict)
	assert.Equal(t, service.MsgEmailExists, derr.Message)
	users.AssertExpectations(t)
}

func TestSignup_StoreFailureIsInternal(t *testing.T) {
	users := new(mocks.TestifyMockUserStore)
	users.On("FindByUsernameOrEmail", mock.Anything, "alice", "alice@example.com").
		Return(nil, errors.New("connection reset"))

	svc, err := service.NewAuthService(users, &mocks.MockPasswordHasher{}, &mocks.MockJWTService{}, nil)
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), service.SignupInput{
		Username: "alice", Email: "alice@example.com", Password: "pw",
	})
	derr := requireKind(t, err, domain.KindInternal)
	assert.Equal(t, service.MsgInternal, derr.Message)
	assert.NotContains(t, derr.Message, "connection reset")
}

func TestSignup_PasswordTooLong(t *testing.T) {
	hasher := &mocks.MockPasswordHasher{
		HashFn: func(string) (string, error) { return "", auth.ErrPasswordTooLong },
	}
	svc, err := service.NewAuthService(memory.New().Users(), hasher, &mocks.MockJWTService{}, nil)
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), service.SignupInput{
		Username: "alice", Email: "alice@example.com", Password: "pw",
	})
	requireKind(t, err, domain.KindInvalidInput)
}

func TestLogin_MissingFields(t *testing.T) {
	f := newAuthFixture(t)

	for _, in := range []service.LoginInput{
		{Password: "pw"},
		{Username: "alice"},
		{},
	} {
		res, err := f.svc.Login(context.Background(), in)
		requireKind(t, err, domain.KindInvalidInput)
		assert.Nil(t, res)
	}
}

func TestLogin_FailuresShareMessage(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.svc.Signup(ctx, service.SignupInput{
		Username: "alice", Email: "alice@example.com", Password: "right",
	})
	require.NoError(t, err)

	_, wrongPassword := f.svc.Login(ctx, service.LoginInput{Username: "alice", Password: "wrong"})
	_, unknownUser := f.svc.Login(ctx, service.LoginInput{Username: "mallory", Password: "right"})

	wp := requireKind(t, wrongPassword, domain.KindUnauthenticated)
	uu := requireKind(t, unknownUser, domain.KindUnauthenticated)
	assert.Equal(t, service.MsgInvalidCredentials, wp.Message)
	assert.Equal(t, wp.Message, uu.Message)
}

func TestLogin_Success(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	signedUp, err := f.svc.Signup(ctx, service.SignupInput{
		Username: "alice", Email: "alice@example.com", Password: "right",
	})
	require.NoError(t, err)

	before := time.Now()
	res, err := f.svc.Login(ctx, service.LoginInput{Username: " alice ", Password: "right"})
	require.NoError(t, err)

	assert.Equal(t, 1, res.TokenExpirationHours)
	assert.Equal(t, signedUp.ID, res.User.ID)
	assert.Empty(t, res.User.HashedPassword)

	claims, err := f.tokens.ValidateToken(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, signedUp.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.WithinDuration(t, before.Add(time.Hour), claims.ExpiresAt, 5*time.Second)

	other, err := auth.NewJWTService(config.AuthConfig{JWTSecret: "a-completely-different-secret-of-32+"})
	require.NoError(t, err)
	_, err = other.ValidateToken(ctx, res.Token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestLogin_TokenFailureIsInternal(t *testing.T) {
	users := memory.New().Users()
	hasher := &mocks.MockPasswordHasher{}
	tokens := &mocks.MockJWTService{Err: errors.New("signing failed")}

	svc, err := service.NewAuthService(users, hasher, tokens, nil)
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), service.SignupInput{
		Username: "alice", Email: "alice@example.com", Password: "pw",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), service.LoginInput{Username: "alice", Password: "pw"})
	requireKind(t, err, domain.KindInternal)
}

func TestLogin_LogsReasonServerSideOnly(t *testing.T) {
	log, logs := testutils.NewTestLogger()
	users := memory.New().Users()
	hasher := &mocks.MockPasswordHasher{}
	tokens := &mocks.MockJWTService{Token: "tok"}

	svc, err := service.NewAuthService(users, hasher, tokens, log)
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), service.SignupInput{
		Username: "erin", Email: "erin@example.com", Password: "s3cret-pass",
	})
	require.NoError(t, err)

	_, unknownErr := svc.Login(context.Background(), service.LoginInput{Username: "nobody", Password: "x"})
	_, mismatchErr := svc.Login(context.Background(), service.LoginInput{Username: "erin", Password: "wrong"})
	assert.Equal(t, requireKind(t, unknownErr, domain.KindUnauthenticated).Message,
		requireKind(t, mismatchErr, domain.KindUnauthenticated).Message)

	var reasons []interface{}
	for _, e := range logs.Entries() {
		if e["message"] == "login rejected" {
			assert.Equal(t, "auth_service", e["component"])
			reasons = append(reasons, e["reason"])
		}
	}
	assert.ElementsMatch(t, []interface{}{"unknown_user", "password_mismatch"}, reasons)
	assert.False(t, logs.Contains("s3cret-pass"))
	assert.False(t, logs.Contains("hashed:"))
}

func TestLogin_RejectionPathsBothVerifyPassword(t *testing.T) {
	tests := []struct {
		name     string
		username string
		hashErr  error
	}{
		{"unknown user", "nobody", nil},
		{"wrong password", "erin", nil},
		{"unknown user without placeholder hash", "nobody", auth.ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := memory.New().Users()
			require.NoError(t, users.Create(context.Background(), &domain.User{
				Username: "erin", Email: "erin@example.com", HashedPassword: "hashed:right",
			}))

			var verified []string
			hasher := &mocks.MockPasswordHasher{
				VerifyFn: func(hashed, _ string) bool {
					verified = append(verified, hashed)
					return false
				},
			}
			if tt.hashErr != nil {
				hasher.HashFn = func(string) (string, error) { return "", tt.hashErr }
			}
			svc, err := service.NewAuthService(users, hasher, &mocks.MockJWTService{}, nil)
			require.NoError(t, err)

			for i := 0; i < 2; i++ {
				_, err = svc.Login(context.Background(), service.LoginInput{Username: tt.username, Password: "wrong"})
				requireKind(t, err, domain.KindUnauthenticated)
			}
			assert.Equal(t, 2, hasher.VerifyCallCount)
			require.Len(t, verified, 2)
			assert.Equal(t, verified[0], verified[1])
		})
	}
}
