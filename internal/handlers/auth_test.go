package handlers

import (
	"encoding/base64"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/msgsystec/backoffice/internal/auth"
	"github.com/msgsystec/backoffice/types"
	"github.com/stretchr/testify/require"
)

func TestLogin_Success(t *testing.T) {
	env := newTestEnv(t)
	seeded := env.seedUser(t, "u1", "carol@example.com", "secret123", types.RoleUser)

	rec := env.do(t, http.MethodPost, "/api/auth/login", "", LoginRequest{
		Email:    "carol@example.com",
		Password: "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result LoginResult
	resp := decodeData(t, rec, &result)
	require.Equal(t, "login successful", resp.Message)
	require.Equal(t, seeded.ID, result.User.ID)
	require.Equal(t, "carol@example.com", result.User.Email)
	require.NotEmpty(t, result.Token)

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie, "login must set the session cookie")
	require.Equal(t, result.Token, cookie.Value)
	require.True(t, cookie.HttpOnly)
	require.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	require.Equal(t, int(auth.DefaultTokenTTL/time.Second), cookie.MaxAge)

	require.NotContains(t, rec.Body.String(), seeded.PasswordHash)
	require.NotContains(t, rec.Body.String(), "password_hash")
}

func TestLogin_FailureResponsesAreIdentical(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1", "admin@example.com", "secret123", types.RoleAdmin)

	wrongPass := env.do(t, http.MethodPost, "/api/auth/login", "", LoginRequest{
		Email:    "admin@example.com",
		Password: "wrongpass",
	})
	noUser := env.do(t, http.MethodPost, "/api/auth/login", "", LoginRequest{
		Email:    "nouser@example.com",
		Password: "anything",
	})

	require.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	require.Equal(t, http.StatusUnauthorized, noUser.Code)
	require.Equal(t, wrongPass.Body.String(), noUser.Body.String())
	require.Nil(t, sessionCookie(wrongPass), "failed login must not set a cookie")
}

func TestLogin_RejectsMalformedAndEmptyPayloads(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body any
	}{
		{"missing email", LoginRequest{Password: "secret123"}},
		{"missing password", LoginRequest{Email: "carol@example.com"}},
		{"whitespace email", LoginRequest{Email: "   ", Password: "secret123"}},
		{"wrong shape", map[string]any{"email": 42}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/api/auth/login", "", tt.body)
			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.Equal(t, msgInvalidCredentials, decodeEnvelope(t, rec).Error)
		})
	}
}

func TestVerify_ReturnsCurrentUser(t *testing.T) {
	env := newTestEnv(t)
	seeded := env.seedUser(t, "u1", "carol@example.com", "secret123", types.RoleUser)

	rec := env.do(t, http.MethodGet, "/api/auth/verify", env.token(t, "u1"), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var user types.User
	decodeData(t, rec, &user)
	require.Equal(t, seeded.ID, user.ID)
	require.Equal(t, seeded.Email, user.Email)
}

func TestVerify_TokenFailures(t *testing.T) {
	env := newTestEnv(t)

	for name, token := range map[string]string{
		"no cookie":       "",
		"garbage cookie":  "not-a-token",
		"tampered cookie": env.token(t, "u1") + "x",
	} {
		t.Run(name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, "/api/auth/verify", token, nil)
			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.Equal(t, msgInvalidToken, decodeEnvelope(t, rec).Error)
		})
	}
}

func TestVerify_DeletedUser(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1", "carol@example.com", "secret123", types.RoleUser)
	token := env.token(t, "u1")
	delete(env.users.users, "u1")

	rec := env.do(t, http.MethodGet, "/api/auth/verify", token, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "user not found", decodeEnvelope(t, rec).Error)
}

func TestVerify_ExpiredLegacyToken(t *testing.T) {
	env := newTestEnvWithCodec(t, auth.NewLegacyCodec())
	env.seedUser(t, "u1", "carol@example.com", "secret123", types.RoleUser)

	exp := time.Now().Add(-time.Minute).Unix()
	expired := base64.StdEncoding.EncodeToString(
		[]byte(`{"userId":"u1","iat":1700000000,"exp":` + strconv.FormatInt(exp, 10) + `}`),
	)

	rec := env.do(t, http.MethodGet, "/api/auth/verify", expired, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, msgInvalidToken, decodeEnvelope(t, rec).Error)
}

func TestLogout_ClearsCookie(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/auth/logout", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "logout successful", decodeEnvelope(t, rec).Message)

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	require.Empty(t, cookie.Value)
	require.Negative(t, cookie.MaxAge)
}

func TestLoginCookie_GrantsAccessToProtectedRoutes(t *testing.T) {
	env := newTestEnv(t)
	seeded := env.seedUser(t, "u1", "carol@example.com", "secret123", types.RoleUser)

	login := env.do(t, http.MethodPost, "/api/auth/login", "", LoginRequest{
		Email:    "carol@example.com",
		Password: "secret123",
	})
	require.Equal(t, http.StatusOK, login.Code)
	cookie := sessionCookie(login)
	require.NotNil(t, cookie)

	rec := env.do(t, http.MethodGet, "/api/users/me", cookie.Value, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var user types.User
	decodeData(t, rec, &user)
	require.Equal(t, seeded.ID, user.ID)
}
