package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Temutjin2k/fare-estimator/internal/domain/models"
	"github.com/Temutjin2k/fare-estimator/internal/domain/types"
	wrap "github.com/Temutjin2k/fare-estimator/pkg/logger/wrapper"
)

const accessTokenType = "access"

// TokenService verifies HS256 bearer tokens issued by the ride platform.
type TokenService struct {
	secret    string
	AccessTTL time.Duration
}

func NewTokenService(secret string, accessTTL time.Duration) *TokenService {
	return &TokenService{
		secret:    secret,
		AccessTTL: accessTTL,
	}
}

func (s *TokenService) getSecret() string {
	return s.secret
}

// Issue signs an access token for the user. Used by the issue-token command and tests.
func (s *TokenService) Issue(user *models.User) (string, error) {
	if user == nil || user.ID == "" {
		return "", errors.New("user id is required")
	}
	return s.signClaims(NewAccessClaim(user, time.Now().UTC(), s.AccessTTL, uuid.New()))
}

// RoleCheck validates the token and returns the caller identity.
func (s *TokenService) RoleCheck(ctx context.Context, token string) (*models.User, error) {
	ctx = wrap.WithAction(ctx, "validate_token")

	parsedToken, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return []byte(s.getSecret()), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, wrap.Error(ctx, types.ErrExpToken)
	}
	if err != nil || !parsedToken.Valid {
		return nil, wrap.Error(ctx, types.ErrInvalidToken)
	}

	mc, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok {
		return nil, wrap.Error(ctx, types.ErrInvalidToken)
	}

	if typ, _ := mc["typ"].(string); typ != accessTokenType {
		return nil, wrap.Error(ctx, types.ErrInvalidToken)
	}

	userID, _ := mc["user_id"].(string)
	if userID == "" {
		return nil, wrap.Error(ctx, types.ErrInvalidToken)
	}

	role, _ := mc["role"].(string)
	switch types.UserRole(role) {
	case types.RolePassenger, types.RoleAdmin:
	default:
		return nil, wrap.Error(ctx, types.ErrInvalidToken)
	}

	return &models.User{ID: userID, Role: types.UserRole(role)}, nil
}

func (s *TokenService) signClaims(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.getSecret()))
}

func NewAccessClaim(user *models.User, issuedAt time.Time, accessTTL time.Duration, tokenID uuid.UUID) jwt.Claims {
	return jwt.MapClaims{
		"typ":     accessTokenType,
		"jti":     tokenID.String(),
		"user_id": user.ID,
		"role":    user.Role,
		"iat":     issuedAt.Unix(),
		"exp":     issuedAt.Add(accessTTL).Unix(),
	}
}
