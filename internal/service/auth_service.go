package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/phrazzld/employee-api/internal/domain"
	"github.com/phrazzld/employee-api/internal/platform/logger"
	"github.com/phrazzld/employee-api/internal/redact"
	"github.com/phrazzld/employee-api/internal/service/auth"
	"github.com/phrazzld/employee-api/internal/store"
)

// LoginInput carries login credentials.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SignupInput carries the fields of a new account.
type SignupInput struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthService signs users up and issues bearer tokens.
type AuthService interface {
	// Login verifies credentials and returns a one hour bearer token.
	// Unknown users and wrong passwords produce the same Unauthenticated error.
	Login(ctx context.Context, in LoginInput) (*domain.AuthResult, error)

	// Signup creates a user. The returned user never carries the hash.
	Signup(ctx context.Context, in SignupInput) (*domain.User, error)
}

type authServiceImpl struct {
	users  store.UserStore
	hasher auth.PasswordHasher
	tokens auth.JWTService
	logger *slog.Logger

	// dummyHash is verified against on unknown-user logins so both
	// rejection paths pay the hashing cost.
	dummyOnce sync.Once
	dummyHash string
}

var _ AuthService = (*authServiceImpl)(nil)

// NewAuthService creates an AuthService.
func NewAuthService(
	users store.UserStore,
	hasher auth.PasswordHasher,
	tokens auth.JWTService,
	log *slog.Logger,
) (AuthService, error) {
	if users == nil {
		return nil, errors.New("users store cannot be nil")
	}
	if hasher == nil {
		return nil, errors.New("password hasher cannot be nil")
	}
	if tokens == nil {
		return nil, errors.New("jwt service cannot be nil")
	}
	return &authServiceImpl{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger.Component(log, "auth_service"),
	}, nil
}

func (s *authServiceImpl) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}

func (s *authServiceImpl) timingHash() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash("employee-api-unknown-user")
		if err != nil {
			s.logger.Warn("failed to prepare placeholder hash", redact.ErrAttr(err))
			return
		}
		s.dummyHash = h
	})
	return s.dummyHash
}

// Login implements AuthService.
func (s *authServiceImpl) Login(ctx context.Context, in LoginInput) (*domain.AuthResult, error) {
	log := s.log(ctx)
	in.Username = strings.TrimSpace(in.Username)

	if err := validate.Struct(in); err != nil {
		return nil, domain.NewInvalidInputError(validationMessage(err))
	}

	user, err := s.users.GetByUsername(ctx, in.Username)
	if err != nil {
		if store.IsNotFoundError(err) {
			s.hasher.Verify(s.timingHash(), in.Password)
			log.Info("login rejected", "reason", reasonUnknownUser)
			return nil, domain.NewUnauthenticatedError(MsgInvalidCredentials, err)
		}
		log.Error("failed to look up user for login", redact.ErrAttr(err))
		return nil, domain.NewInternalError(MsgInternal, err)
	}

	if !s.hasher.Verify(user.HashedPassword, in.Password) {
		log.Info("login rejected", "reason", reasonPasswordMismatch, "user_id", user.ID)
		return nil, domain.NewUnauthenticatedError(
			MsgInvalidCredentials,
			errors.New(reasonPasswordMismatch),
		)
	}

	token, err := s.tokens.GenerateToken(ctx, user.ID, user.Username)
	if err != nil {
		log.Error("failed to issue token", redact.ErrAttr(err), "user_id", user.ID)
		return nil, domain.NewInternalError(MsgInternal, err)
	}

	log.Info("user logged in", "user_id", user.ID)
	return &domain.AuthResult{
		Token:                token,
		User:                 user.Public(),
		TokenExpirationHours: domain.TokenExpirationHours,
	}, nil
}

// Signup implements AuthService.
func (s *authServiceImpl) Signup(ctx context.Context, in SignupInput) (*domain.User, error) {
	log := s.log(ctx)
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if err := validate.Struct(in); err != nil {
		return nil, domain.NewInvalidInputError(validationMessage(err))
	}

	existing, err := s.users.FindByUsernameOrEmail(ctx, in.Username, in.Email)
	switch {
	case err == nil:
		msg := MsgEmailExists
		if existing.Username == in.Username {
			msg = MsgUsernameExists
		}
		log.Info("signup rejected: account exists")
		return nil, domain.NewConflictError(msg, store.ErrDuplicate)
	case !store.IsNotFoundError(err):
		log.Error("failed to check for existing user", redact.ErrAttr(err))
		return nil, domain.NewInternalError(MsgInternal, err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, domain.NewInvalidInputError("password must be at most 72 bytes")
		}
		log.Error("failed to hash password", redact.ErrAttr(err))
		return nil, domain.NewInternalError(MsgInternal, err)
	}

	user, err := domain.NewUser(in.Username, in.Email, hash)
	if err != nil {
		return nil, domain.NewInvalidInputError(err.Error())
	}

	// The lookup above is advisory; concurrent signups are settled by the
	// store's unique indexes.
	if err := s.users.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, store.ErrUsernameExists):
			return nil, domain.NewConflictError(MsgUsernameExists, err)
		case errors.Is(err, store.ErrEmailExists):
			return nil, domain.NewConflictError(MsgEmailExists, err)
		case store.IsDuplicateError(err):
			return nil, domain.NewConflictError(MsgUserExists, err)
		}
		log.Error("failed to create user", redact.ErrAttr(err))
		return nil, domain.NewInternalError(MsgInternal, fmt.Errorf("create user: %w", err))
	}

	log.Info("user signed up", "user_id", user.ID)
	return user.Public(), nil
}
