package api

import "todo-api/domain"

const requestBodyMaxSize = 64 * 1024 // 64 KiB

// Validation limits mirror the web client's form constraints.
const (
	titleMaxLength    = 225
	searchMaxLength   = 225
	nameMaxLength     = 125
	emailMaxLength    = 220
	passwordMaxLength = 220
)

type createTodoRequest struct {
	Title string `json:"title"`
}

type updateTodoRequest struct {
	Title string `json:"title"`
	Order *int   `json:"order"`
}

type reorderRequest struct {
	Todos []domain.ReorderItem `json:"todos"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type itemResponse struct {
	Item domain.Todo `json:"item"`
}

type listResponse struct {
	Items []domain.Todo `json:"items"`
}

type statsResponse struct {
	Stats domain.Stats `json:"stats"`
}

type userResponse struct {
	User domain.User `json:"user"`
}

type tokenResponse struct {
	AccessToken string      `json:"accessToken"`
	User        domain.User `json:"user"`
}

type errorResponse struct {
	Error string `json:"error"`
}
