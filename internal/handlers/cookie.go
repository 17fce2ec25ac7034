package handlers

import (
	"net/http"
	"time"

	"github.com/msgsystec/backoffice/internal/auth"
)

// TokenCookie is the cookie carrying the session credential.
const TokenCookie = "token"

// CookieHelper writes and clears the session cookie with the attributes
// the dashboard expects: httpOnly, SameSite=Lax, Secure in production.
type CookieHelper struct {
	secure bool
}

func NewCookieHelper(secure bool) *CookieHelper {
	return &CookieHelper{secure: secure}
}

// SetToken stores the credential for the credential's full lifetime.
func (h *CookieHelper) SetToken(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.DefaultTokenTTL / time.Second),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearToken instructs the client to drop the credential. There is no
// server-side revocation; this is the whole of logout.
func (h *CookieHelper) ClearToken(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Token reads the session credential from the request, if present.
func (h *CookieHelper) Token(r *http.Request) string {
	cookie, err := r.Cookie(TokenCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}
