package gotrue

import (
	"time"

	"internhub/internal/domain/entity"
	domainerrors "internhub/internal/domain/errors"

	"github.com/golang-jwt/jwt/v5"
)

// TokenVerifier turns a provider access token into the identity it asserts.
type TokenVerifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewTokenVerifier verifies HS256 tokens with secret. An empty secret
// accepts tokens without checking the signature.
func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}
}

// Verifies reports whether signatures are checked.
func (v *TokenVerifier) Verifies() bool {
	return len(v.secret) > 0
}

// Parse validates token and returns the identity plus the token expiry.
func (v *TokenVerifier) Parse(token string) (*entity.Identity, time.Time, error) {
	claims := jwt.MapClaims{}

	var err error
	if v.Verifies() {
		_, err = v.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
			return v.secret, nil
		})
	} else {
		_, _, err = v.parser.ParseUnverified(token, claims)
	}
	if err != nil {
		return nil, time.Time{}, domainerrors.ErrInvalidSessionToken.WrapMessage(err.Error())
	}

	subject, _ := claims.GetSubject()
	if subject == "" {
		return nil, time.Time{}, domainerrors.ErrInvalidSessionToken.WrapMessage("token has no subject")
	}

	var expiresAt time.Time
	if exp, _ := claims.GetExpirationTime(); exp != nil {
		expiresAt = exp.Time
	}

	return identityFromClaims(subject, claims), expiresAt, nil
}

func identityFromClaims(subject string, claims jwt.MapClaims) *entity.Identity {
	identity := &entity.Identity{
		SubjectID: subject,
		Claims:    make(map[string]any, len(claims)),
	}

	for key, value := range claims {
		identity.Claims[key] = value
	}

	identity.Email, _ = claims["email"].(string)
	identity.AppMetadata, _ = claims["app_metadata"].(map[string]any)
	identity.UserMetadata, _ = claims["user_metadata"].(map[string]any)

	return identity
}
