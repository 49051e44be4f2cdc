package repository

import (
	"context"

	"github.com/effitech/solar-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos Get* devuelven (nil, nil) cuando el registro no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	Count(ctx context.Context) (int, error)
	// UpdateRole devuelve domain.ErrUserNotFound si el usuario no existe.
	UpdateRole(ctx context.Context, id, role string) (*entity.User, error)
	// Delete devuelve domain.ErrUserNotFound si el usuario no existe.
	Delete(ctx context.Context, id string) error
}
