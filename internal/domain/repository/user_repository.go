package repository

import (
	"context"

	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/domain/entity"
)

// UserRepository puerto de persistencia de usuarios. Los métodos de búsqueda devuelven
// (nil, nil) cuando no hay coincidencia.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
