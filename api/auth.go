package api

import (
	"errors"
	"sync"
	"time"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"

	"todo-api/domain"
)

const defaultJWKSCacheTTL = 15 * time.Minute

// Auth validates bearer tokens and, in local mode, issues them. Local mode
// signs HS256 tokens with a shared secret; JWKS mode verifies RS256 tokens
// minted by an external identity provider.
type Auth struct {
	JWKS     *keyfunc.JWKS
	Audience string
	Issuer   string
	Secret   []byte
	TokenTTL time.Duration

	parser      *jwt.Parser
	keyCache    sync.Map
	keyCacheTTL time.Duration
}

type cachedKey struct {
	key       any
	expiresAt time.Time
}

// NewLocalAuth creates an Auth that both issues and verifies HS256 tokens.
func NewLocalAuth(secret []byte, issuer string, ttl time.Duration) *Auth {
	if len(secret) == 0 {
		panic("api.NewLocalAuth: empty secret")
	}
	return &Auth{
		Issuer:   issuer,
		Secret:   secret,
		TokenTTL: ttl,
		parser:   jwt.NewParser(jwt.WithValidMethods([]string{"HS256"})),
	}
}

// NewJWKSAuth creates a verify-only Auth backed by a remote JWKS.
func NewJWKSAuth(jwks *keyfunc.JWKS, audience, issuer string) *Auth {
	return &Auth{
		JWKS:        jwks,
		Audience:    audience,
		Issuer:      issuer,
		parser:      jwt.NewParser(jwt.WithValidMethods([]string{"RS256"})),
		keyCacheTTL: defaultJWKSCacheTTL,
	}
}

// IssueToken signs an access token for the user. Only available in local
// mode.
func (a *Auth) IssueToken(u domain.User) (string, error) {
	if len(a.Secret) == 0 {
		return "", errors.New("token issuance requires local auth mode")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   u.ID,
		"email": u.Email,
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
		"exp":   now.Add(a.TokenTTL).Unix(),
	}
	if a.Issuer != "" {
		claims["iss"] = a.Issuer
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.Secret)
}

// UserIDFromAuthHeader extracts the authenticated user id from an
// Authorization header value.
func (a *Auth) UserIDFromAuthHeader(h string) (string, error) {
	token, err := bearerTokenFromHeader(h)
	if err != nil {
		return "", err
	}

	var parsed *jwt.Token
	if len(a.Secret) > 0 {
		parsed, err = a.parser.Parse(token, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("invalid signing method")
			}
			return a.Secret, nil
		})
	} else {
		parsed, err = a.parser.Parse(token, func(t *jwt.Token) (any, error) {
			return a.keyForToken(t)
		})
	}
	if err != nil {
		return "", err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}

	now := time.Now().Unix()
	if !claims.VerifyExpiresAt(now, true) {
		return "", errors.New("token expired")
	}
	if !claims.VerifyNotBefore(now, false) {
		return "", errors.New("token not valid yet")
	}
	if !claims.VerifyIssuedAt(now, false) {
		return "", errors.New("token used before issued")
	}
	if a.Audience != "" && !claims.VerifyAudience(a.Audience, false) {
		return "", errors.New("invalid audience")
	}
	if a.Issuer != "" && !claims.VerifyIssuer(a.Issuer, false) {
		return "", errors.New("invalid issuer")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("missing sub")
	}
	return sub, nil
}

func (a *Auth) keyForToken(token *jwt.Token) (any, error) {
	if a.JWKS == nil {
		return nil, errors.New("jwks not configured")
	}

	kid, _ := token.Header["kid"].(string)
	if kid != "" && a.keyCacheTTL > 0 {
		if cached, ok := a.keyCache.Load(kid); ok {
			entry := cached.(cachedKey)
			if time.Now().Before(entry.expiresAt) {
				return entry.key, nil
			}
			a.keyCache.Delete(kid)
		}
	}

	key, err := a.JWKS.Keyfunc(token)
	if err != nil {
		return nil, err
	}

	if kid != "" && a.keyCacheTTL > 0 {
		a.keyCache.Store(kid, cachedKey{key: key, expiresAt: time.Now().Add(a.keyCacheTTL)})
	}
	return key, nil
}
