package token

import (
	"errors"
	"time"

	"farmigo/models"

	"github.com/dgrijalva/jwt-go"
)

type SignedDetails struct {
	UserID uint
	Role   models.Role
	jwt.StandardClaims
}

// Manager issues and validates HS256 bearer tokens carrying the user id and
// role claims.
type Manager struct {
	secretKey  string
	expiration time.Duration
}

func NewManager(secretKey string, expirationMinutes int) *Manager {
	return &Manager{
		secretKey:  secretKey,
		expiration: time.Minute * time.Duration(expirationMinutes),
	}
}

func (m *Manager) Generate(user models.User) (string, error) {
	claims := &SignedDetails{
		UserID: user.ID,
		Role:   user.Role,

		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Local().Add(m.expiration).Unix(),
		},
	}

	signedToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(m.secretKey))
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

func (m *Manager) Validate(signedToken string) (claims *SignedDetails, err error) {
	token, err := jwt.ParseWithClaims(
		signedToken,
		&SignedDetails{},
		func(token *jwt.Token) (interface{}, error) {
			return []byte(m.secretKey), nil
		},
	)
	if err != nil {
		return
	}
	claims, ok := token.Claims.(*SignedDetails)
	if !ok {
		err = errors.New("the token is invalid")
		return
	}
	if claims.ExpiresAt < time.Now().Local().Unix() {
		err = errors.New("token is expired")
		return
	}
	return
}
