package user

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestCreateHashesPassword(t *testing.T) {
	s := NewStore()
	u, err := s.Create("Ada", "ada@example.com", "hunter2")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID == "" {
		t.Fatal("expected generated id")
	}
	if u.PasswordHash == "hunter2" || u.PasswordHash == "" {
		t.Fatal("password stored without hashing")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("hunter2")); err != nil {
		t.Fatalf("hash does not verify: %v", err)
	}
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	s := NewStore()
	if _, err := s.Create("Ada", "ada@example.com", "pw"); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := s.Create("Other Ada", "ada@example.com", "pw2")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	s := NewStore()
	created, err := s.Create("Ada", "ada@example.com", "hunter2")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	u, err := s.Authenticate("ada@example.com", "hunter2")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if u.ID != created.ID {
		t.Fatalf("unexpected account: %+v", u)
	}

	if _, err := s.Authenticate("ada@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if _, err := s.Authenticate("nobody@example.com", "hunter2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestFindByID(t *testing.T) {
	s := NewStore()
	created, _ := s.Create("Ada", "ada@example.com", "pw")

	u, ok := s.FindByID(created.ID)
	if !ok || u.Email != "ada@example.com" {
		t.Fatalf("lookup failed: %+v ok=%v", u, ok)
	}
	if _, ok := s.FindByID("missing"); ok {
		t.Fatal("unexpected hit for unknown id")
	}
}
