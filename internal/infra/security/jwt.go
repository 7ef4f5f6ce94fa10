package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/blstream/ShopMe-Backend/internal/core/domain"
)

const (
	claimName   = "name"
	claimEmail  = "email"
	claimScopes = "scopes"
)

var (
	// ErrTokenExpired indicates a structurally valid token past its expiry.
	ErrTokenExpired = errors.New("security: token expired")
	// ErrTokenInvalid indicates a token that failed signature or claim checks.
	ErrTokenInvalid = errors.New("security: token invalid")
)

// TokenManager issues and parses HMAC-signed access tokens.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager validates the signing secret and constructs a manager.
func NewTokenManager(secret, issuer string, ttl time.Duration) (*TokenManager, error) {
	if len(secret) < 32 {
		return nil, errors.New("security: jwt secret must be at least 32 bytes")
	}
	if ttl <= 0 {
		return nil, errors.New("security: token ttl must be positive")
	}

	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

// WithClock overrides the internal clock for deterministic tests.
func (m *TokenManager) WithClock(clock func() time.Time) {
	if clock != nil {
		m.now = clock
	}
}

// Issue signs an access token carrying the user's identity and scopes.
// The expiry is truncated to whole seconds so the value round-trips through
// the JWT exp claim and matches revocation records exactly.
func (m *TokenManager) Issue(user domain.User) (string, *domain.UserContext, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl).Truncate(time.Second)

	scopes := make([]string, 0, len(user.Roles))
	for _, role := range user.Roles {
		scopes = append(scopes, string(role))
	}

	claims := jwt.MapClaims{
		"sub":       user.ID.String(),
		"iss":       m.issuer,
		"iat":       now.Unix(),
		"exp":       expiresAt.Unix(),
		claimName:   user.Name,
		claimEmail:  user.Email,
		claimScopes: scopes,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign access token: %w", err)
	}

	return signed, &domain.UserContext{
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Scopes:    user.Roles,
		ExpiresAt: expiresAt,
	}, nil
}

// Parse validates the token's signature and expiry and extracts the caller
// context. Revocation is checked separately by the auth service.
func (m *TokenManager) Parse(raw string) (*domain.UserContext, error) {
	token, err := jwt.Parse(raw,
		func(t *jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	subject, err := claims.GetSubject()
	if err != nil {
		return nil, fmt.Errorf("%w: missing subject", ErrTokenInvalid)
	}
	userID, err := uuid.Parse(subject)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed subject", ErrTokenInvalid)
	}

	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return nil, fmt.Errorf("%w: missing expiry", ErrTokenInvalid)
	}

	name, _ := claims[claimName].(string)
	email, _ := claims[claimEmail].(string)

	var scopes []domain.Role
	if rawScopes, ok := claims[claimScopes].([]any); ok {
		for _, scope := range rawScopes {
			if s, ok := scope.(string); ok {
				scopes = append(scopes, domain.Role(s))
			}
		}
	}

	return &domain.UserContext{
		UserID:    userID,
		Name:      name,
		Email:     email,
		Scopes:    scopes,
		ExpiresAt: expiry.Time.UTC(),
	}, nil
}
