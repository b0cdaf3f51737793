package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/schoolhub/admin-dashboard/internal/core/domain"
)

func newAuthSvc(users *stubClient[domain.User]) *AuthService {
	return NewAuthService(users, "secret", time.Hour, zerolog.Nop())
}

func TestAuthService_Login_EmptyMakesNoRequest(t *testing.T) {
	users := newStubClient[domain.User]()
	svc := newAuthSvc(users)

	for _, in := range [][2]string{{"", ""}, {"a@b.co", ""}, {"", "pw"}} {
		if _, err := svc.Login(context.Background(), in[0], in[1]); err != domain.ErrLoginEmpty {
			t.Fatalf("Login(%q, %q): expected ErrLoginEmpty, got %v", in[0], in[1], err)
		}
	}
	if len(users.queries) != 0 {
		t.Fatalf("expected no request, got %d", len(users.queries))
	}
}

func TestAuthService_Login_PlainStoredPassword(t *testing.T) {
	users := newStubClient(domain.User{ID: "1", Email: "a@b.co", Password: "Abcdef1!"})
	svc := newAuthSvc(users)

	session, err := svc.Login(context.Background(), "a@b.co", "Abcdef1!")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if session.Redirect != "/" || session.Email != "a@b.co" {
		t.Fatalf("unexpected session %+v", session)
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(session.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !tkn.Valid {
		t.Fatalf("invalid token: %v", err)
	}
	if claims["email"] != "a@b.co" || claims["sub"] != "1" {
		t.Fatalf("unexpected claims %v", claims)
	}
	if jti, _ := claims["jti"].(string); jti == "" {
		t.Fatalf("expected jti claim")
	}
}

func TestAuthService_Login_HashedStoredPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Abcdef1!"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	users := newStubClient(domain.User{ID: "1", Email: "a@b.co", Password: string(hash)})
	svc := newAuthSvc(users)

	if _, err := svc.Login(context.Background(), "a@b.co", "Abcdef1!"); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "a@b.co", "wrong"); err != domain.ErrLoginUnsuccessful {
		t.Fatalf("expected ErrLoginUnsuccessful, got %v", err)
	}
}

func TestAuthService_Login_Unsuccessful(t *testing.T) {
	users := newStubClient(domain.User{Email: "a@b.co", Password: "Abcdef1!"})
	svc := newAuthSvc(users)

	if _, err := svc.Login(context.Background(), "ghost@b.co", "Abcdef1!"); err != domain.ErrLoginUnsuccessful {
		t.Fatalf("unknown email: got %v", err)
	}
	if _, err := svc.Login(context.Background(), "a@b.co", "nope"); err != domain.ErrLoginUnsuccessful {
		t.Fatalf("wrong password: got %v", err)
	}
}

func TestAuthService_Login_FetchFailure(t *testing.T) {
	users := newStubClient[domain.User]()
	users.getErr = domain.ErrRequestFailed
	svc := newAuthSvc(users)

	if _, err := svc.Login(context.Background(), "a@b.co", "pw"); err != domain.ErrFetchingData {
		t.Fatalf("expected ErrFetchingData, got %v", err)
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	users := newStubClient[domain.User]()
	users.created = domain.User{ID: "2", Email: "new@b.co", Password: "stored"}
	svc := newAuthSvc(users)

	user, err := svc.Register(context.Background(), domain.Registration{
		Email: "new@b.co", Password: "Abcdef1!", ConfirmPassword: "Abcdef1!",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID != "2" || user.Password != "" {
		t.Fatalf("unexpected user %+v", user)
	}

	if len(users.posted) != 1 {
		t.Fatalf("expected one POST, got %d", len(users.posted))
	}
	sent := users.posted[0]
	if sent.Email != "new@b.co" || sent.Password == "Abcdef1!" {
		t.Fatalf("password must be hashed before saving: %+v", sent)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(sent.Password), []byte("Abcdef1!")); err != nil {
		t.Fatalf("stored hash does not match: %v", err)
	}
}

func TestAuthService_Register_Order(t *testing.T) {
	existing := domain.User{Email: "taken@b.co", Password: "x"}

	tests := []struct {
		name   string
		reg    domain.Registration
		getErr error
		want   error
	}{
		{"empty", domain.Registration{Email: "a@b.co", Password: "x"}, nil, domain.ErrSignupEmpty},
		{"fetch", domain.Registration{Email: "a@b.co", Password: "x", ConfirmPassword: "x"}, domain.ErrRequestFailed, domain.ErrFetchingData},
		{"exists before mismatch", domain.Registration{Email: "taken@b.co", Password: "x", ConfirmPassword: "y"}, nil, domain.ErrEmailExists},
		{"mismatch", domain.Registration{Email: "a@b.co", Password: "x", ConfirmPassword: "y"}, nil, domain.ErrPasswordMismatch},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			users := newStubClient(existing)
			users.getErr = tc.getErr
			svc := newAuthSvc(users)

			if _, err := svc.Register(context.Background(), tc.reg); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if len(users.posted) != 0 {
				t.Fatalf("no POST expected")
			}
		})
	}
}

func TestAuthService_Register_SaveFailure(t *testing.T) {
	users := newStubClient[domain.User]()
	users.postErr = domain.ErrRequestFailed
	svc := newAuthSvc(users)

	_, err := svc.Register(context.Background(), domain.Registration{Email: "a@b.co", Password: "x", ConfirmPassword: "x"})
	if err != domain.ErrSavingData {
		t.Fatalf("expected ErrSavingData, got %v", err)
	}
}
