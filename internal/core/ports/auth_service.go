package ports

import (
	"context"

	"github.com/schoolhub/admin-dashboard/internal/core/domain"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	Register(ctx context.Context, reg domain.Registration) (*domain.User, error)
}
