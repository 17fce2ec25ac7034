package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the fixed credential lifetime.
const DefaultTokenTTL = 24 * time.Hour

// Session verification failures. Handlers collapse all three into a
// generic 401, but callers inside the process can tell them apart.
var (
	ErrTokenMissing = errors.New("token missing")
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

// Credential is the decoded content of a session token: who it was
// issued to and when it stops being valid.
type Credential struct {
	Subject   string
	IssuedAt  int64
	ExpiresAt int64
}

// TokenCodec encodes and decodes session credentials. Decode performs
// structural validation only; expiry is the Verifier's job.
type TokenCodec interface {
	Issue(subject string) (string, error)
	Decode(raw string) (Credential, error)
}

// SignedCodec issues HMAC-signed JWTs. This is the default scheme; the
// legacy unsigned encoding remains available for interop only.
type SignedCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSignedCodec constructs a SignedCodec with the fixed 24h lifetime.
func NewSignedCodec(secret string) *SignedCodec {
	return &SignedCodec{
		secret: []byte(secret),
		ttl:    DefaultTokenTTL,
		now:    time.Now,
	}
}

// Issue creates a signed credential for the subject, valid from now for
// the configured lifetime.
func (c *SignedCodec) Issue(subject string) (string, error) {
	now := c.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Decode parses and signature-checks the token. Expiry is deliberately
// not validated here so an expired credential still decodes cleanly and
// the Verifier can report ErrTokenExpired instead of ErrTokenInvalid.
func (c *SignedCodec) Decode(raw string) (Credential, error) {
	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return c.secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil || !token.Valid {
		return Credential{}, ErrTokenInvalid
	}
	if strings.TrimSpace(claims.Subject) == "" || claims.ExpiresAt == nil {
		return Credential{}, ErrTokenInvalid
	}

	cred := Credential{
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt.Unix(),
	}
	if claims.IssuedAt != nil {
		cred.IssuedAt = claims.IssuedAt.Unix()
	}
	return cred, nil
}

// legacyPayload is the historic token body: base64 of a JSON object
// carrying the subject and unix timestamps. It is reversible and not
// tamper-evident, which is why SignedCodec is the default.
type legacyPayload struct {
	UserID   string `json:"userId"`
	IssuedAt int64  `json:"iat"`
	Expires  int64  `json:"exp"`
}

// LegacyCodec reproduces the unsigned encoding issued by the previous
// backend so sessions created before the cutover keep working.
type LegacyCodec struct {
	ttl time.Duration
	now func() time.Time
}

// NewLegacyCodec constructs a LegacyCodec with the fixed 24h lifetime.
func NewLegacyCodec() *LegacyCodec {
	return &LegacyCodec{ttl: DefaultTokenTTL, now: time.Now}
}

// Issue encodes an unsigned credential for the subject.
func (c *LegacyCodec) Issue(subject string) (string, error) {
	now := c.now().Unix()
	payload, err := json.Marshal(legacyPayload{
		UserID:   subject,
		IssuedAt: now,
		Expires:  now + int64(c.ttl/time.Second),
	})
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(payload), nil
}

// Decode reverses Issue. Any structural problem is ErrTokenInvalid; no
// distinction is made between malformed and forged input.
func (c *LegacyCodec) Decode(raw string) (Credential, error) {
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return Credential{}, ErrTokenInvalid
	}
	var payload legacyPayload
	if err := json.Unmarshal(decoded, &payload); err != nil {
		return Credential{}, ErrTokenInvalid
	}
	if payload.UserID == "" || payload.Expires == 0 {
		return Credential{}, ErrTokenInvalid
	}
	return Credential{
		Subject:   payload.UserID,
		IssuedAt:  payload.IssuedAt,
		ExpiresAt: payload.Expires,
	}, nil
}
