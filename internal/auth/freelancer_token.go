package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// FreelancerClaims is the signed token a freelancer uses to reach their task
// panel. Freelancers have no password account; the token is delivered inside
// the notification link.
type FreelancerClaims struct {
	FreelancerID string `json:"freelancer_id"`
	CompanyID    string `json:"company_id"`
	jwt.RegisteredClaims
}

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

func IssueFreelancerToken(freelancerID uuid.UUID, companyID uuid.UUID) (string, error) {
	claims := FreelancerClaims{
		FreelancerID: freelancerID.String(),
		CompanyID:    companyID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(7 * 24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jwtSecret())
	if err != nil {
		return "", fmt.Errorf("failed to sign freelancer token: %w", err)
	}
	return signed, nil
}

func ParseFreelancerToken(tokenString string) (*FreelancerClaims, error) {
	claims := &FreelancerClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse freelancer token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid freelancer token")
	}

	return claims, nil
}
