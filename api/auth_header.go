package api

import (
	"errors"
	"strings"
)

var (
	errMissingAuthorization = errors.New("missing authorization header")
	errBadAuthorization     = errors.New("bad auth header")
)

// bearerTokenFromHeader pulls the raw JWT out of an Authorization header
// value. The token must carry the Bearer scheme and look like a three-part
// JWT before it reaches the parser.
func bearerTokenFromHeader(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errMissingAuthorization
	}
	token, ok := strings.CutPrefix(raw, "Bearer ")
	if !ok || token == "" {
		return "", errBadAuthorization
	}
	if strings.Count(token, ".") != 2 {
		return "", errBadAuthorization
	}
	return token, nil
}
