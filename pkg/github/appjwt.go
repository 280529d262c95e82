package github

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Assertion window: backdate issuance one minute to absorb clock skew with
// GitHub's verifier, expire after nine minutes to stay under the ten-minute
// maximum GitHub accepts.
const (
	assertionBackdate = time.Minute
	assertionLifetime = 9 * time.Minute
)

// NewAppJWT mints the signed app assertion used to bootstrap an installation
// token. One assertion is minted per invocation and never stored.
func NewAppJWT(appID int64, privateKeyPEM []byte, now time.Time) (string, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyPEM)
	if err != nil {
		return "", fmt.Errorf("parse app private key: %w", err)
	}

	claims := jwt.RegisteredClaims{
		Issuer:    strconv.FormatInt(appID, 10),
		IssuedAt:  jwt.NewNumericDate(now.Add(-assertionBackdate)),
		ExpiresAt: jwt.NewNumericDate(now.Add(assertionLifetime)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("sign app assertion: %w", err)
	}
	return signed, nil
}
