package services

import (
	"context"
	"errors"

	"github.com/msgsystec/backoffice/internal/auth"
	"github.com/msgsystec/backoffice/internal/store"
	"github.com/msgsystec/backoffice/types"
)

// ErrInvalidCredentials covers both unknown email and wrong password.
// Callers must not be able to tell the two apart.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService implements the login flow and session verification.
type AuthService struct {
	users    UserRepository
	codec    auth.TokenCodec
	verifier *auth.Verifier
}

func NewAuthService(users UserRepository, codec auth.TokenCodec) *AuthService {
	return &AuthService{
		users:    users,
		codec:    codec,
		verifier: auth.NewVerifier(codec),
	}
}

// Login checks the credentials and, on success, returns the user along
// with a fresh session token. Every failure path that depends on the
// supplied credentials collapses into ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (types.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, "", ErrInvalidCredentials
		}
		return types.User{}, "", err
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return types.User{}, "", ErrInvalidCredentials
	}

	token, err := s.codec.Issue(user.ID)
	if err != nil {
		return types.User{}, "", err
	}

	return user, token, nil
}

// Verify validates a raw session token and returns the subject id.
func (s *AuthService) Verify(raw string) (string, error) {
	return s.verifier.Verify(raw)
}
