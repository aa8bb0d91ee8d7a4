package customer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"supplement-storefront/internal/domain"
)

type fakeRepo struct {
	byEmail map[string]*domain.Customer
	byID    map[string]*domain.Customer
	nextID  int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byEmail: make(map[string]*domain.Customer),
		byID:    make(map[string]*domain.Customer),
	}
}

func (f *fakeRepo) Create(_ context.Context, c domain.Customer) (*domain.Customer, error) {
	f.nextID++
	c.ID = fmt.Sprintf("cust-%d", f.nextID)
	f.byEmail[c.Email] = &c
	f.byID[c.ID] = &c
	return &c, nil
}

func (f *fakeRepo) GetByEmail(_ context.Context, email string) (*domain.Customer, error) {
	c, ok := f.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func TestSignupNormalizesEmailAndHashesPassword(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo)
	c, err := svc.Signup(context.Background(), SignupInput{
		Email:    "  Asha@Example.COM ",
		Password: "correct horse",
		FullName: "Asha Rao",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if c.Email != "asha@example.com" {
		t.Fatalf("email = %q, want normalized", c.Email)
	}
	if c.PasswordHash == "correct horse" || c.PasswordHash == "" {
		t.Fatalf("password stored unhashed")
	}
	if bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte("correct horse")) != nil {
		t.Fatalf("stored hash does not match password")
	}
}

func TestSignupRejectsBadInput(t *testing.T) {
	svc := New(newFakeRepo())
	if _, err := svc.Signup(context.Background(), SignupInput{Email: "nope", Password: "longenough"}); err == nil {
		t.Fatalf("expected error for invalid email")
	}
	if _, err := svc.Signup(context.Background(), SignupInput{Email: "a@b.com", Password: "short"}); err == nil {
		t.Fatalf("expected error for short password")
	}
}

func TestLoginWrongEmailAndWrongPasswordLookTheSame(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo)
	if _, err := svc.Signup(context.Background(), SignupInput{Email: "a@b.com", Password: "correct horse"}); err != nil {
		t.Fatalf("signup: %v", err)
	}

	_, errEmail := svc.Login(context.Background(), "unknown@b.com", "correct horse")
	_, errPass := svc.Login(context.Background(), "a@b.com", "wrong")
	if !errors.Is(errEmail, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong email: got %v", errEmail)
	}
	if !errors.Is(errPass, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v", errPass)
	}
}

func TestLoginSucceedsWithNormalizedEmail(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo)
	if _, err := svc.Signup(context.Background(), SignupInput{Email: "a@b.com", Password: "correct horse"}); err != nil {
		t.Fatalf("signup: %v", err)
	}
	c, err := svc.Login(context.Background(), " A@B.COM ", "correct horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if c.ID != "cust-1" {
		t.Fatalf("unexpected customer: %+v", c)
	}
}
