package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func newService() *Service {
	return &Service{Users: NewMemoryStore(), Secret: []byte("test-secret")}
}

func register(t *testing.T, svc *Service, email string, role Role) User {
	t.Helper()
	u, err := svc.Register(context.Background(), RegisterRequest{
		Name: "Test User", Email: email, Password: "hunter22", Role: role,
	})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return u
}

func TestRegisterLoginVerifyRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	u := register(t, svc, "buyer@example.com", RoleBuyer)
	if u.ID == "" {
		t.Fatal("id not assigned")
	}
	if u.PasswordHash == "hunter22" || strings.Contains(u.PasswordHash, "hunter22") {
		t.Fatal("password stored in the clear")
	}

	token, err := svc.Login(ctx, "buyer@example.com", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	id, err := svc.Verify(ctx, token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id.ID != u.ID || id.Email != u.Email || id.Role != RoleBuyer {
		t.Fatalf("identity mismatch: %+v vs %+v", id, u)
	}
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	tests := []struct {
		req   RegisterRequest
		field string
	}{
		{RegisterRequest{Email: "a@b.com", Password: "x", Role: RoleBuyer}, "name"},
		{RegisterRequest{Name: "A", Password: "x", Role: RoleBuyer}, "email"},
		{RegisterRequest{Name: "A", Email: "a@b.com", Role: RoleBuyer}, "password"},
		{RegisterRequest{Name: "A", Email: "a@b.com", Password: "x", Role: "admin"}, "role"},
	}
	for _, tc := range tests {
		_, err := svc.Register(ctx, tc.req)
		var verr ValidationError
		if !errors.As(err, &verr) || verr.Field != tc.field {
			t.Errorf("Register() = %v, want ValidationError on %s", err, tc.field)
		}
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	register(t, svc, "dup@example.com", RoleSeller)

	_, err := svc.Register(ctx, RegisterRequest{
		Name: "Other", Email: "dup@example.com", Password: "pw", Role: RoleBuyer,
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginFailuresAreUniform(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	register(t, svc, "user@example.com", RoleBuyer)

	if _, err := svc.Login(ctx, "nobody@example.com", "hunter22"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("unknown email: got %v", err)
	}
	if _, err := svc.Login(ctx, "user@example.com", "wrong"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("wrong password: got %v", err)
	}
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	register(t, svc, "user@example.com", RoleBuyer)
	token, err := svc.Login(ctx, "user@example.com", "hunter22")
	if err != nil {
		t.Fatal(err)
	}

	t.Run("garbage", func(t *testing.T) {
		if _, err := svc.Verify(ctx, "not.a.token"); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("got %v", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := &Service{Users: svc.Users, Secret: []byte("different")}
		if _, err := other.Verify(ctx, token); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("got %v", err)
		}
	})

	t.Run("tampered payload", func(t *testing.T) {
		parts := strings.Split(token, ".")
		parts[1] = "eyJmYWtlIjoidHJ1ZSJ9"
		if _, err := svc.Verify(ctx, strings.Join(parts, ".")); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("got %v", err)
		}
	})

	t.Run("user deleted after issue", func(t *testing.T) {
		fresh := &Service{Users: NewMemoryStore(), Secret: svc.Secret}
		if _, err := fresh.Verify(ctx, token); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("got %v", err)
		}
	})
}
