package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"todo-api/user"
)

func registerUser(users UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req registerRequest
		if err := decodeBody(c, &req); err != nil {
			return jsonError(c, http.StatusBadRequest, "invalid body")
		}
		name := strings.TrimSpace(req.Name)
		email := normalizeEmail(req.Email)
		if msg := validateRegistration(name, email, req.Password); msg != "" {
			return jsonError(c, http.StatusUnprocessableEntity, msg)
		}

		u, err := users.Create(name, email, req.Password)
		if err != nil {
			if errors.Is(err, user.ErrEmailTaken) {
				return jsonError(c, http.StatusConflict, err.Error())
			}
			c.Logger().Error(err)
			return jsonError(c, http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusCreated, userResponse{User: u})
	}
}

func login(users UserService, issuer TokenIssuer) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req loginRequest
		if err := decodeBody(c, &req); err != nil {
			return jsonError(c, http.StatusBadRequest, "invalid body")
		}
		u, err := users.Authenticate(normalizeEmail(req.Email), req.Password)
		if err != nil {
			return jsonError(c, http.StatusBadRequest, "invalid credentials")
		}
		token, err := issuer.IssueToken(u)
		if err != nil {
			c.Logger().Error(err)
			return jsonError(c, http.StatusInternalServerError, "failed to issue token")
		}
		return c.JSON(http.StatusOK, tokenResponse{AccessToken: token, User: u})
	}
}

// refresh re-issues a token for an already authenticated user.
func refresh(users UserService, auth Authenticator, issuer TokenIssuer) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := authenticated(c, auth)
		if err != nil {
			return jsonError(c, http.StatusUnauthorized, err.Error())
		}
		u, ok := users.FindByID(userID)
		if !ok {
			return jsonError(c, http.StatusUnauthorized, "unknown account")
		}
		token, err := issuer.IssueToken(u)
		if err != nil {
			c.Logger().Error(err)
			return jsonError(c, http.StatusInternalServerError, "failed to issue token")
		}
		return c.JSON(http.StatusOK, tokenResponse{AccessToken: token, User: u})
	}
}

// logout exists for API parity; tokens are stateless so the client simply
// discards its copy.
func logout(auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, err := authenticated(c, auth); err != nil {
			return jsonError(c, http.StatusUnauthorized, err.Error())
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func profile(users UserService, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := authenticated(c, auth)
		if err != nil {
			return jsonError(c, http.StatusUnauthorized, err.Error())
		}
		u, ok := users.FindByID(userID)
		if !ok {
			return jsonError(c, http.StatusNotFound, "resource not found")
		}
		return c.JSON(http.StatusOK, userResponse{User: u})
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateRegistration(name, email, password string) string {
	switch {
	case name == "":
		return "name is required"
	case len(name) > nameMaxLength:
		return "name cannot exceed 125 characters"
	case email == "":
		return "email is required"
	case len(email) > emailMaxLength:
		return "email cannot exceed 220 characters"
	case !strings.Contains(email, "@"):
		return "invalid email address"
	case password == "":
		return "password is required"
	case len(password) > passwordMaxLength:
		return "password cannot exceed 220 characters"
	}
	return ""
}
