package user

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"todo-api/domain"
)

// bcryptCost keeps registration fast enough for interactive signup.
const bcryptCost = 6

// ErrEmailTaken is returned when registering an email that already has an
// account.
var ErrEmailTaken = errors.New("existing email")

// ErrInvalidCredentials is returned when an email/password pair does not
// match an account. Unknown email and wrong password are indistinguishable.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Store holds user accounts in memory.
type Store struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	now func() time.Time
}

// NewStore creates an empty account store.
func NewStore() *Store {
	return &Store{
		users: make(map[string]*domain.User),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Create registers an account with a bcrypt-hashed password. The email must
// be unique; it is expected lowercased by the boundary layer.
func (s *Store) Create(name, email, password string) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return domain.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findByEmailLocked(email) != nil {
		return domain.User{}, ErrEmailTaken
	}
	now := s.now()
	u := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.users[u.ID] = u
	return *u, nil
}

// Authenticate verifies the email/password pair and returns the account.
func (s *Store) Authenticate(email, password string) (domain.User, error) {
	s.mu.RLock()
	u := s.findByEmailLocked(email)
	s.mu.RUnlock()

	if u == nil {
		return domain.User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	return *u, nil
}

// FindByID returns the account by id.
func (s *Store) FindByID(id string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return domain.User{}, false
	}
	return *u, true
}

func (s *Store) findByEmailLocked(email string) *domain.User {
	for _, u := range s.users {
		if u.Email == email {
			return u
		}
	}
	return nil
}
