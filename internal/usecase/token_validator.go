package usecase

import (
	"resource-scheduler/internal/domain/user"
	"resource-scheduler/internal/pkg/errs"
	"resource-scheduler/internal/pkg/jwt"

	"github.com/google/uuid"
)

var ErrInvalidClaims = errs.New("token claims do not identify a requester")

// TokenValidator resolves the requester identity of a bearer token.
type TokenValidator interface {
	ValidateToken(tokenString string) (uuid.UUID, user.Role, error)
}

type jwtTokenValidator struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &jwtTokenValidator{jwtService: jwtService}
}

// ValidateToken rejects tokens whose subject disagrees with the user_id claim.
func (v *jwtTokenValidator) ValidateToken(tokenString string) (uuid.UUID, user.Role, error) {
	claims, err := v.jwtService.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, "", err
	}
	if claims.UserID == uuid.Nil || claims.Subject != claims.UserID.String() {
		return uuid.Nil, "", ErrInvalidClaims
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return uuid.Nil, "", errs.Mark(err, ErrInvalidClaims)
	}
	return claims.UserID, role, nil
}
