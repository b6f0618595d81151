package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/profleet/fleettrack/internal/pkg/models"
)

// GenerateToken generates a JWT token for the given user. Tokens are issued by the
// fleet application; this helper exists for tooling and tests.
func GenerateToken(userID, role string, cfg *models.Config) (string, int64, error) {
	expiresAt := time.Now().Add(time.Duration(cfg.JWT.Expiration) * time.Minute).Unix()

	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     expiresAt,
		"iss":     cfg.JWT.Issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(cfg.JWT.Secret))
	if err != nil {
		return "", 0, err
	}

	return tokenString, expiresAt, nil
}

// ValidateToken validates a JWT token and returns the claims
func ValidateToken(tokenString string, secret string) (*jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return &claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// CallerFromToken validates the token and returns the identity it carries.
// Both user_id and role claims must be non-empty strings.
func CallerFromToken(tokenString, secret string) (models.Caller, error) {
	claims, err := ValidateToken(tokenString, secret)
	if err != nil {
		return models.Caller{}, err
	}

	userID, _ := (*claims)["user_id"].(string)
	role, _ := (*claims)["role"].(string)
	if userID == "" || role == "" {
		return models.Caller{}, fmt.Errorf("missing user_id or role claim")
	}
	return models.Caller{UserID: userID, Role: role}, nil
}
