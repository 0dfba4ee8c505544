package services

import (
	"crypto/rsa"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/poofware/rental-service/internal/middleware"
	"github.com/poofware/rental-service/internal/models"
)

type JWTService interface {
	GenerateAccessToken(user *models.User, tokenExpiry time.Duration) (string, error)
}

type jwtService struct {
	privateKey *rsa.PrivateKey
}

func NewJWTService(privateKey *rsa.PrivateKey) JWTService {
	return &jwtService{privateKey: privateKey}
}

// GenerateAccessToken issues an RS256 token whose subject is the user id.
// Tokens are stateless; they stay valid until they expire.
func (j *jwtService) GenerateAccessToken(user *models.User, tokenExpiry time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":      middleware.TokenIssuer,
		"sub":      strconv.FormatInt(user.ID, 10),
		"exp":      now.Add(tokenExpiry).Unix(),
		"iat":      now.Unix(),
		"jti":      uuid.NewString(),
		"is_staff": user.IsStaff,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(j.privateKey)
}
