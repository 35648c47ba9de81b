// Package cookie carries session handles to and from the client. The handle
// travels inside an HS256-signed JWT so a forged or altered cookie never
// reaches the session store.
package cookie

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoCookie = errors.New("session cookie not present")
	ErrInvalid  = errors.New("session cookie invalid")
)

type claims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

// Codec signs and verifies session cookies.
type Codec struct {
	name   string
	secret []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

func NewCodec(name, secret string, ttl time.Duration, secure bool) *Codec {
	return &Codec{
		name:   name,
		secret: []byte(secret),
		ttl:    ttl,
		secure: secure,
		now:    time.Now,
	}
}

func (c *Codec) Name() string { return c.name }

// Encode returns the Set-Cookie value binding handle to the client.
func (c *Codec) Encode(handle string) (*http.Cookie, error) {
	now := c.now()
	expires := now.Add(c.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		SID: handle,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session cookie: %w", err)
	}

	return &http.Cookie{
		Name:     c.name,
		Value:    signed,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(c.ttl.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// Decode extracts the handle from r. It returns ErrNoCookie when the client
// sent none and ErrInvalid for anything that fails verification.
func (c *Codec) Decode(r *http.Request) (string, error) {
	ck, err := r.Cookie(c.name)
	if err != nil || ck.Value == "" {
		return "", ErrNoCookie
	}

	var cl claims
	tkn, err := jwt.ParseWithClaims(ck.Value, &cl, func(*jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !tkn.Valid || cl.SID == "" {
		return "", ErrInvalid
	}
	return cl.SID, nil
}

// Clear returns a cookie that removes the session cookie from the client.
func (c *Codec) Clear() *http.Cookie {
	return &http.Cookie{
		Name:     c.name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
