package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tracker/internal/shared/authorization"
	"tracker/internal/shared/biztime"
)

const issuer = "tracker"

// Claims identifies the actor behind a request.
type Claims struct {
	UserID uint                   `json:"uid"`
	Name   string                 `json:"name"`
	Role   authorization.UserRole `json:"role"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secret    []byte
	accessExp time.Duration
	clock     biztime.Clock
}

func NewJWTService(secret string, accessExpMinutes int, clock biztime.Clock) *JWTService {
	if accessExpMinutes <= 0 {
		accessExpMinutes = 60
	}
	if clock == nil {
		clock = biztime.SystemClock{}
	}
	return &JWTService{
		secret:    []byte(secret),
		accessExp: time.Duration(accessExpMinutes) * time.Minute,
		clock:     clock,
	}
}

// Issue signs an HS256 access token and returns it with its lifetime in seconds.
func (s *JWTService) Issue(userID uint, name string, role authorization.UserRole) (string, int64, error) {
	now := s.clock.Now()
	claims := &Claims{
		UserID: userID,
		Name:   name,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessExp)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, int64(s.accessExp / time.Second), nil
}

func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(s.clock.Now))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
