package auth

import "time"

// Verifier turns a raw token string into a subject identifier. It is
// the single source of truth for session validity: decode via the
// codec, then compare expiry against the clock.
type Verifier struct {
	codec TokenCodec
	now   func() time.Time
}

// NewVerifier constructs a Verifier around the given codec.
func NewVerifier(codec TokenCodec) *Verifier {
	return &Verifier{codec: codec, now: time.Now}
}

// Verify validates raw and returns the embedded subject identifier.
// Failures are ErrTokenMissing, ErrTokenInvalid, or ErrTokenExpired.
func (v *Verifier) Verify(raw string) (string, error) {
	if raw == "" {
		return "", ErrTokenMissing
	}

	cred, err := v.codec.Decode(raw)
	if err != nil {
		return "", ErrTokenInvalid
	}

	if cred.ExpiresAt <= v.now().Unix() {
		return "", ErrTokenExpired
	}

	return cred.Subject, nil
}
