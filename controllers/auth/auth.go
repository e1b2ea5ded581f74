package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"

	"github.com/zsmartex/rebate/models"
)

var ErrInvalidToken = errors.New("invalid session token")

// Auth struct represents parsed jwt information.
type Auth struct {
	UID        string `json:"uid"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	InviteCode string `json:"invite_code"`

	jwt.StandardClaims
}

type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// IssueToken signs a session token for user with HS256.
func (i *Issuer) IssueToken(user *models.User) (string, time.Time, error) {
	now := i.now()
	expires_at := now.Add(i.ttl)

	claims := &Auth{
		UID:        user.UID,
		Email:      user.Email,
		Username:   user.Username,
		InviteCode: user.InviteCode,
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			Subject:   user.UID,
			IssuedAt:  now.Unix(),
			ExpiresAt: expires_at.Unix(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return token, expires_at, nil
}

// ParseToken verifies a token, with or without its "Bearer " prefix.
func (i *Issuer) ParseToken(token string) (*Auth, error) {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	if len(token) == 0 {
		return nil, ErrInvalidToken
	}

	var auth Auth
	_, err := jwt.ParseWithClaims(token, &auth, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}

		return i.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if len(auth.UID) == 0 {
		return nil, ErrInvalidToken
	}

	return &auth, nil
}
