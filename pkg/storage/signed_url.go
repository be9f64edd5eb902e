package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrTokenInvalid covers malformed and tampered tokens.
	ErrTokenInvalid = errors.New("storage: invalid download token")
	// ErrTokenExpired is returned for well-formed tokens past their expiry.
	ErrTokenExpired = errors.New("storage: download token expired")
)

// Signer issues and checks HMAC-signed download tokens binding an owner ID
// to a stored file name.
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSigner constructs a Signer. A non-positive ttl means 24h.
func NewSigner(secret string, ttl time.Duration) *Signer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Signer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Sign returns a token of the form id.expiry.name.signature.
func (s *Signer) Sign(id, name string) (string, time.Time, error) {
	if id == "" || name == "" {
		return "", time.Time{}, errors.New("storage: id and name are required")
	}
	if len(s.secret) == 0 {
		return "", time.Time{}, errors.New("storage: signing secret missing")
	}
	if strings.Contains(id, ".") {
		return "", time.Time{}, fmt.Errorf("storage: id %q must not contain dots", id)
	}
	expiresAt := s.now().Add(s.ttl).Truncate(time.Second)
	exp := strconv.FormatInt(expiresAt.Unix(), 10)
	encoded := base64.RawURLEncoding.EncodeToString([]byte(name))
	return strings.Join([]string{id, exp, encoded, s.mac(id, exp, encoded)}, "."), expiresAt, nil
}

// Verify checks the signature and expiry of token and returns what it binds.
func (s *Signer) Verify(token string) (id, name string, expiresAt time.Time, err error) {
	parts := strings.Split(token, ".")
	if len(parts) != 4 {
		return "", "", time.Time{}, ErrTokenInvalid
	}
	id, exp, encoded, signature := parts[0], parts[1], parts[2], parts[3]

	if !hmac.Equal([]byte(s.mac(id, exp, encoded)), []byte(signature)) {
		return "", "", time.Time{}, ErrTokenInvalid
	}
	unix, err := strconv.ParseInt(exp, 10, 64)
	if err != nil {
		return "", "", time.Time{}, ErrTokenInvalid
	}
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", "", time.Time{}, ErrTokenInvalid
	}
	expiresAt = time.Unix(unix, 0)
	if s.now().After(expiresAt) {
		return "", "", time.Time{}, ErrTokenExpired
	}
	return id, string(raw), expiresAt, nil
}

func (s *Signer) mac(id, exp, encoded string) string {
	h := hmac.New(sha256.New, s.secret)
	_, _ = h.Write([]byte(id + "|" + exp + "|" + encoded))
	return hex.EncodeToString(h.Sum(nil))
}
