package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/msgsystec/backoffice/internal/auth"
	"github.com/msgsystec/backoffice/internal/services"
	"github.com/msgsystec/backoffice/internal/store"
	"github.com/msgsystec/backoffice/types"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-at-least-32-chars-long"

// ---- in-memory repositories ----

type fakeUserRepo struct {
	users map[string]types.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]types.User{}}
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (types.User, error) {
	user, ok := f.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (types.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (f *fakeUserRepo) List(ctx context.Context) ([]types.User, error) {
	users := []types.User{}
	for _, user := range f.users {
		users = append(users, user)
	}
	return users, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, user types.User) (types.User, error) {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return types.User{}, store.ErrConflict
		}
	}
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user types.User) (types.User, error) {
	if _, ok := f.users[user.ID]; !ok {
		return types.User{}, store.ErrNotFound
	}
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	user, ok := f.users[id]
	if !ok {
		return store.ErrNotFound
	}
	user.PasswordHash = passwordHash
	f.users[id] = user
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeSessionRepo struct {
	sessions map[string]types.WahaSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]types.WahaSession{}}
}

func (f *fakeSessionRepo) GetByID(ctx context.Context, id string) (types.WahaSession, error) {
	session, ok := f.sessions[id]
	if !ok {
		return types.WahaSession{}, store.ErrNotFound
	}
	return session, nil
}

func (f *fakeSessionRepo) ListByUser(ctx context.Context, userID string) ([]types.WahaSession, error) {
	sessions := []types.WahaSession{}
	for _, session := range f.sessions {
		if session.UserID == userID {
			sessions = append(sessions, session)
		}
	}
	return sessions, nil
}

func (f *fakeSessionRepo) Create(ctx context.Context, session types.WahaSession) (types.WahaSession, error) {
	f.sessions[session.ID] = session
	return session, nil
}

func (f *fakeSessionRepo) UpdateStatus(ctx context.Context, id, status string) (types.WahaSession, error) {
	session, ok := f.sessions[id]
	if !ok {
		return types.WahaSession{}, store.ErrNotFound
	}
	session.Status = status
	f.sessions[id] = session
	return session, nil
}

func (f *fakeSessionRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.sessions[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.sessions, id)
	return nil
}

type fakeSheetSource struct {
	data    types.SheetData
	info    types.SheetInfo
	authURL string
	err     error
}

func (f *fakeSheetSource) Read(ctx context.Context) (types.SheetData, error) {
	if f.err != nil {
		return types.SheetData{}, f.err
	}
	return f.data, nil
}

func (f *fakeSheetSource) Info(ctx context.Context) (types.SheetInfo, error) {
	if f.err != nil {
		return types.SheetInfo{}, f.err
	}
	return f.info, nil
}

func (f *fakeSheetSource) AuthURL() string { return f.authURL }

// ---- test server ----

// testEnv wires the full route tree over in-memory repositories, the
// same way the server package assembles it.
type testEnv struct {
	users    *fakeUserRepo
	sessions *fakeSessionRepo
	sheets   *fakeSheetSource
	codec    auth.TokenCodec
	router   http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithCodec(t, auth.NewSignedCodec(testSecret))
}

func newTestEnvWithCodec(t *testing.T, codec auth.TokenCodec) *testEnv {
	t.Helper()

	users := newFakeUserRepo()
	sessions := newFakeSessionRepo()
	source := &fakeSheetSource{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	userService := services.NewUserService(users)
	authService := services.NewAuthService(users, codec)
	sheetService := services.NewSheetService(source, logger)
	wahaService := services.NewWahaService(sessions, nil)

	cookies := NewCookieHelper(false)
	authHandler := NewAuthHandler(authService, userService, cookies)

	r := chi.NewRouter()
	r.Route("/api/auth", func(r chi.Router) {
		AuthRouter(r, authHandler)
	})
	r.Route("/api/users", func(r chi.Router) {
		UserRouter(r, userService, authHandler.RequireAuth, authHandler.RequireAdmin)
	})
	r.Route("/api/sheets", func(r chi.Router) {
		SheetRouter(r, sheetService, authHandler.RequireAuth)
	})
	r.Route("/api/waha", func(r chi.Router) {
		WahaRouter(r, wahaService, authHandler.RequireAuth)
	})

	return &testEnv{
		users:    users,
		sessions: sessions,
		sheets:   source,
		codec:    codec,
		router:   r,
	}
}

func (e *testEnv) seedUser(t *testing.T, id, email, password, role string) types.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	user := types.User{
		ID:           id,
		Email:        email,
		Name:         "Seed User",
		Role:         role,
		PasswordHash: hash,
	}
	e.users.users[id] = user
	return user
}

// token issues a session credential for the user, bypassing the login
// endpoint.
func (e *testEnv) token(t *testing.T, userID string) string {
	t.Helper()
	raw, err := e.codec.Issue(userID)
	require.NoError(t, err)
	return raw
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// envelope mirrors Response with raw data for typed decoding.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) envelope {
	t.Helper()
	env := decodeEnvelope(t, rec)
	require.True(t, env.Success, "expected success envelope, got error %q", env.Error)
	if len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
	return env
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == TokenCookie {
			return cookie
		}
	}
	return nil
}
