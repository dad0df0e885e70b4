package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const SessionCookieName = "session_token"

var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload of a session token. Subject carries the user id.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Sessions signs and verifies session tokens and manages the cookie that
// carries them.
type Sessions struct {
	secret []byte
	maxAge time.Duration
	domain string
	secure bool
}

type SessionOptions struct {
	Secret string
	MaxAge time.Duration
	Domain string
	Secure bool
}

func NewSessions(opts SessionOptions) (*Sessions, error) {
	if opts.Secret == "" {
		return nil, fmt.Errorf("auth: JWT secret key not set")
	}
	if opts.MaxAge <= 0 {
		opts.MaxAge = 30 * 24 * time.Hour
	}
	return &Sessions{
		secret: []byte(opts.Secret),
		maxAge: opts.MaxAge,
		domain: opts.Domain,
		secure: opts.Secure,
	}, nil
}

func (s *Sessions) CreateToken(userID, email, name string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.maxAge)),
		},
	})

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return tokenString, nil
}

func (s *Sessions) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// FromRequest verifies the session cookie on r, if any.
func (s *Sessions) FromRequest(r *http.Request) (*Claims, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return s.VerifyToken(cookie.Value)
}

func (s *Sessions) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, s.cookie(token, int(s.maxAge.Seconds())))
}

func (s *Sessions) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, s.cookie("", -1))
}

func (s *Sessions) cookie(value string, maxAge int) *http.Cookie {
	c := &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
	// Host-only cookie for localhost
	if s.domain != "" && s.domain != "localhost" {
		c.Domain = s.domain
	}
	return c
}
