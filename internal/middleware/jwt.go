package middleware

import (
	"crypto/rsa"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/poofware/rental-service/internal/utils"
)

// TokenIssuer identifies the service that issues all access tokens.
const TokenIssuer = utils.OrganizationName

// Principal is the authenticated caller extracted from a valid token.
type Principal struct {
	UserID  int64
	IsStaff bool
}

// ValidateToken checks the signature, the expiry and the issuer, then
// returns the caller the token was issued to.
func ValidateToken(tokenString string, publicKey *rsa.PublicKey) (*Principal, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return publicKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, errors.New("missing expiration claim")
	}
	if time.Unix(int64(exp), 0).Before(time.Now()) {
		return nil, jwt.ErrTokenExpired
	}

	iss, ok := claims["iss"].(string)
	if !ok {
		return nil, errors.New("missing issuer claim")
	}
	if iss != TokenIssuer {
		return nil, errors.New("invalid token issuer")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, errors.New("missing subject")
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return nil, errors.New("malformed subject")
	}
	isStaff, _ := claims["is_staff"].(bool)

	return &Principal{UserID: userID, IsStaff: isStaff}, nil
}
