package api

import "todo-api/domain"

// TodoService is the todo engine the handlers talk to. Implemented by
// todo.Store and by the caching wrapper in the storage package.
type TodoService interface {
	Create(userID, title string) domain.Todo
	Find(id, userID string) (domain.Todo, bool)
	List(userID string, q domain.ListQuery) []domain.Todo
	Update(id, userID, title string, order *int) (domain.Todo, error)
	Toggle(id, userID string) (domain.Todo, bool)
	Delete(id, userID string) (domain.Todo, bool)
	DeleteWhere(userID string, filter domain.StatusFilter)
	Reorder(userID string, moves []domain.ReorderItem) error
	Stats(userID string) domain.Stats
}

// UserService manages accounts for the auth routes.
type UserService interface {
	Create(name, email, password string) (domain.User, error)
	Authenticate(email, password string) (domain.User, error)
	FindByID(id string) (domain.User, bool)
}

// Authenticator is implemented by types able to extract user IDs from
// Authorization headers.
type Authenticator interface {
	UserIDFromAuthHeader(string) (string, error)
}

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	IssueToken(domain.User) (string, error)
}
