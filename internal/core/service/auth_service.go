package service

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/schoolhub/admin-dashboard/internal/core/domain"
	"github.com/schoolhub/admin-dashboard/internal/core/ports"
)

// HomePath is where a successful login lands.
const HomePath = "/"

// AuthService implements login and registration against the users resource.
type AuthService struct {
	users     ports.ResourceClient[domain.User]
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
	now       func() time.Time
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(users ports.ResourceClient[domain.User], jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log.With().Str("service", "auth").Logger(),
		now:       time.Now,
	}
}

// Login checks the credentials against the users list and issues a session
// token. Empty input fails before any request is made.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	if email == "" || password == "" {
		return nil, domain.ErrLoginEmpty
	}

	users, err := s.users.Get(ctx, "")
	if err != nil {
		s.log.Error().Err(err).Msg("Error fetching user data")
		return nil, domain.ErrFetchingData
	}

	user, ok := findByEmail(users, email)
	if !ok || !passwordMatches(user.Password, password) {
		return nil, domain.ErrLoginUnsuccessful
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("email", email).Msg(domain.MsgLoginSuccess)
	return &domain.Session{Token: token, Email: user.Email, Redirect: HomePath}, nil
}

// Register creates a user after checking, in order: all fields present, the
// users list loads, the email is free, the passwords match.
func (s *AuthService) Register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	if reg.Email == "" || reg.Password == "" || reg.ConfirmPassword == "" {
		return nil, domain.ErrSignupEmpty
	}

	users, err := s.users.Get(ctx, "")
	if err != nil {
		s.log.Error().Err(err).Msg("Error fetching user data")
		return nil, domain.ErrFetchingData
	}
	if _, exists := findByEmail(users, reg.Email); exists {
		return nil, domain.ErrEmailExists
	}
	if reg.Password != reg.ConfirmPassword {
		return nil, domain.ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	created, err := s.users.Post(ctx, domain.User{Email: reg.Email, Password: string(hash)})
	if err != nil {
		s.log.Error().Err(err).Msg("Error saving user data")
		return nil, domain.ErrSavingData
	}
	created.Password = ""
	return &created, nil
}

func findByEmail(users []domain.User, email string) (domain.User, bool) {
	for _, u := range users {
		if u.Email == email {
			return u, true
		}
	}
	return domain.User{}, false
}

// passwordMatches accepts bcrypt hashes and, for records created before
// hashing was introduced, the raw stored value.
func passwordMatches(stored, given string) bool {
	if stored == "" {
		return false
	}
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}

func (s *AuthService) generateToken(user domain.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"jti":   uuid.NewString(),
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
