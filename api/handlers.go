package api

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"todo-api/domain"
	"todo-api/todo"
)

// Register wires up all API routes on the provided Echo instance.
func Register(e *echo.Echo, todos TodoService, users UserService, auth Authenticator, issuer TokenIssuer, logger *log.Logger) {
	e.POST("/api/auth/register", registerUser(users))
	e.POST("/api/auth/login", login(users, issuer))
	e.POST("/api/auth/refresh", refresh(users, auth, issuer))
	e.POST("/api/auth/logout", logout(auth))
	e.GET("/api/auth/profile", profile(users, auth))

	e.POST("/api/todos", createTodo(todos, auth))
	e.GET("/api/todos", listTodos(todos, auth, logger))
	e.GET("/api/todos/stats", todoStats(todos, auth))
	e.GET("/api/todos/:id", findTodo(todos, auth))
	e.PATCH("/api/todos", reorderTodos(todos, auth))
	e.PATCH("/api/todos/:id", updateTodo(todos, auth))
	e.PATCH("/api/todos/:id/completed", toggleTodo(todos, auth))
	e.DELETE("/api/todos", deleteTodos(todos, auth))
	e.DELETE("/api/todos/:id", deleteTodo(todos, auth))

	e.GET("/healthz", healthz())
}

func healthz() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
}

// decodeBody reads a size-limited JSON request body, rejecting unknown
// fields.
func decodeBody(c echo.Context, v any) error {
	lr := io.LimitReader(c.Request().Body, requestBodyMaxSize)
	dec := sonic.ConfigStd.NewDecoder(lr)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func authenticated(c echo.Context, auth Authenticator) (string, error) {
	return auth.UserIDFromAuthHeader(c.Request().Header.Get(echo.HeaderAuthorization))
}

func jsonError(c echo.Context, status int, msg string) error {
	return c.JSON(status, errorResponse{Error: msg})
}

func validateTitle(title string) (string, string) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", "title is required"
	}
	if len(title) > titleMaxLength {
		return "", "title cannot exceed 225 characters"
	}
	return title, ""
}

func createTodo(todos TodoService, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := authenticated(c, auth)
		if err != nil {
			return jsonError(c, http.StatusUnauthorized, err.Error())
		}
		var req createTodoRequest
		if err := decodeBody(c, &req); err != nil {
			return jsonError(c, http.StatusBadRequest, "invalid body")
		}
		title, msg := validateTitle(req.Title)
		if msg != "" {
			return jsonError(c, http.StatusUnprocessableEntity, msg)
		}
		item := todos.Create(userID, title)
		return c.JSON(http.StatusCreated, itemResponse{Item: item})
	}
}

func listTodos(todos TodoService, auth Authenticator, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		metrics := newListRequestMetrics(logger)
		defer func() {
			metrics.Log(c.Response().Status, err)
		}()

		authStart := time.Now()
		userID, authErr := authenticated(c, auth)
		metrics.ObserveAuth(time.Since(authStart))
		if authErr != nil {
			metrics.SetErrorStage("auth")
			err = jsonError(c, http.StatusUnauthorized, authErr.Error())
			return err
		}

		q, msg := listQueryFromParams(c)
		if msg != "" {
			metrics.SetErrorStage("invalid_query")
			err = jsonError(c, http.StatusUnprocessableEntity, msg)
			return err
		}
		metrics.SetSearchProvided(q.Search != "")

		queryStart := time.Now()
		items := todos.List(userID, q)
		metrics.ObserveQuery(time.Since(queryStart))
		metrics.SetItemsReturned(len(items))

		encodeStart := time.Now()
		err = c.JSON(http.StatusOK, listResponse{Items: items})
		metrics.ObserveEncode(time.Since(encodeStart))
		if err != nil {
			metrics.SetErrorStage("encode_response")
		}
		return err
	}
}

func listQueryFromParams(c echo.Context) (domain.ListQuery, string) {
	q := domain.ListQuery{
		Search:    c.QueryParam("query"),
		Filter:    domain.StatusFilter(c.QueryParam("filter")),
		SortBy:    domain.SortKey(c.QueryParam("sortBy")),
		Direction: domain.SortDirection(c.QueryParam("order")),
	}
	if len(q.Search) > searchMaxLength {
		return q, "query cannot exceed 225 characters"
	}
	if q.Filter != "" && !q.Filter.Valid() {
		return q, `filter must be only "all", "active" or "completed"`
	}
	if q.SortBy != "" && !q.SortBy.Valid() {
		return q, `sortBy must be only "title", "order", "createdAt" or "updatedAt"`
	}
	if q.Direction != "" && !q.Direction.Valid() {
		return q, `order must be only "asc" or "desc"`
	}
	return q, ""
}

func findTodo(todos TodoService, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := authenticated(c, auth)
		if err != nil {
			return jsonError(c, http.StatusUnauthorized, err.Error())
		}
		item, ok := todos.Find(c.Param("id"), userID)
		if !ok {
			return jsonError(c, http.StatusNotFound, "resource not found")
		}
		return c.JSON(http.StatusOK, itemResponse{Item: item})
	}
}

func updateTodo(todos TodoService, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := authenticated(c, auth)
		if err != nil {
			return jsonError(c, http.StatusUnauthorized, err.Error())
		}
		var req updateTodoRequest
		if err := decodeBody(c, &req); err != nil {
			return jsonError(c, http.StatusBadRequest, "invalid body")
		}
		title, msg := validateTitle(req.Title)
		if msg != "" {
			return jsonError(c, http.StatusUnprocessableEntity, msg)
		}
		if req.Order != nil && *req.Order < 0 {
			return jsonError(c, http.StatusUnprocessableEntity, "order must be at least 0")
		}

		item, err := todos.Update(c.Param("id"), userID, title, req.Order)
		if err != nil {
			return todoErrorResponse(c, err)
		}
		return c.JSON(http.StatusOK, itemResponse{Item: item})
	}
}

func toggleTodo(todos TodoService, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := authenticated(c, auth)
		if err != nil {
			return jsonError(c, http.StatusUnauthorized, err.Error())
		}
		item, ok := todos.Toggle(c.Param("id"), userID)
		if !ok {
			return jsonError(c, http.StatusNotFound, "resource not found")
		}
		return c.JSON(http.StatusOK, itemResponse{Item: item})
	}
}

func reorderTodos(todos TodoService, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := authenticated(c, auth)
		if err != nil {
			return jsonError(c, http.StatusUnauthorized, err.Error())
		}
		var req reorderRequest
		if err := decodeBody(c, &req); err != nil {
			return jsonError(c, http.StatusBadRequest, "invalid body")
		}
		for _, m := range req.Todos {
			if m.TodoID == "" {
				return jsonError(c, http.StatusUnprocessableEntity, "todoId is required")
			}
			if m.Order < 0 {
				return jsonError(c, http.StatusUnprocessableEntity, "order must be at least 0")
			}
		}
		if err := todos.Reorder(userID, req.Todos); err != nil {
			return todoErrorResponse(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func deleteTodo(todos TodoService, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := authenticated(c, auth)
		if err != nil {
			return jsonError(c, http.StatusUnauthorized, err.Error())
		}
		if _, ok := todos.Delete(c.Param("id"), userID); !ok {
			return jsonError(c, http.StatusNotFound, "resource not found")
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func deleteTodos(todos TodoService, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := authenticated(c, auth)
		if err != nil {
			return jsonError(c, http.StatusUnauthorized, err.Error())
		}
		// Bulk deletion defaults to clearing completed items.
		filter := domain.FilterCompleted
		if raw := c.QueryParam("filter"); raw != "" {
			filter = domain.StatusFilter(raw)
			if !filter.Valid() {
				return jsonError(c, http.StatusUnprocessableEntity, `filter must be only "all", "active" or "completed"`)
			}
		}
		todos.DeleteWhere(userID, filter)
		return c.NoContent(http.StatusNoContent)
	}
}

func todoStats(todos TodoService, auth Authenticator) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := authenticated(c, auth)
		if err != nil {
			return jsonError(c, http.StatusUnauthorized, err.Error())
		}
		return c.JSON(http.StatusOK, statsResponse{Stats: todos.Stats(userID)})
	}
}

// todoErrorResponse maps core errors onto HTTP statuses: missing records to
// 404, position conflicts to 409.
func todoErrorResponse(c echo.Context, err error) error {
	var conflict *todo.OrderConflictError
	switch {
	case errors.Is(err, todo.ErrNotFound):
		return jsonError(c, http.StatusNotFound, "resource not found")
	case errors.As(err, &conflict):
		return jsonError(c, http.StatusConflict, conflict.Error())
	default:
		c.Logger().Error(err)
		return jsonError(c, http.StatusInternalServerError, err.Error())
	}
}
