package services

import (
	"context"
	"testing"

	"github.com/msgsystec/backoffice/internal/auth"
	"github.com/msgsystec/backoffice/types"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-at-least-32-chars-long"

func TestAuthService_LoginSuccess(t *testing.T) {
	repo := newFakeUserRepo()
	seeded := seedUser(t, repo, "u1", "carol@example.com", "secret123", types.RoleUser)
	codec := auth.NewSignedCodec(testSecret)
	service := NewAuthService(repo, codec)

	user, token, err := service.Login(context.Background(), "carol@example.com", "secret123")
	require.NoError(t, err)
	require.Equal(t, seeded.ID, user.ID)
	require.NotEmpty(t, token)

	// The issued credential verifies immediately and names the user.
	subject, err := service.Verify(token)
	require.NoError(t, err)
	require.Equal(t, seeded.ID, subject)

	cred, err := codec.Decode(token)
	require.NoError(t, err)
	require.Equal(t, seeded.ID, cred.Subject)
	require.Greater(t, cred.ExpiresAt, cred.IssuedAt)
}

func TestAuthService_LoginFailuresAreIndistinguishable(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "u1", "admin@example.com", "secret123", types.RoleAdmin)
	service := NewAuthService(repo, auth.NewSignedCodec(testSecret))

	_, _, wrongPass := service.Login(context.Background(), "admin@example.com", "wrongpass")
	_, _, noUser := service.Login(context.Background(), "nouser@example.com", "anything")

	require.ErrorIs(t, wrongPass, ErrInvalidCredentials)
	require.ErrorIs(t, noUser, ErrInvalidCredentials)
	require.Equal(t, wrongPass.Error(), noUser.Error())
}

func TestAuthService_VerifyTaxonomy(t *testing.T) {
	service := NewAuthService(newFakeUserRepo(), auth.NewSignedCodec(testSecret))

	_, err := service.Verify("")
	require.ErrorIs(t, err, auth.ErrTokenMissing)

	_, err = service.Verify("garbage")
	require.ErrorIs(t, err, auth.ErrTokenInvalid)
}

func TestAuthService_LegacyCodecLogin(t *testing.T) {
	repo := newFakeUserRepo()
	seeded := seedUser(t, repo, "u1", "carol@example.com", "secret123", types.RoleUser)
	service := NewAuthService(repo, auth.NewLegacyCodec())

	_, token, err := service.Login(context.Background(), "carol@example.com", "secret123")
	require.NoError(t, err)

	subject, err := service.Verify(token)
	require.NoError(t, err)
	require.Equal(t, seeded.ID, subject)
}
