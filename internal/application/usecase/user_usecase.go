package usecase

import (
	"context"

	"github.com/effitech/solar-api/internal/application/dto"
	"github.com/effitech/solar-api/internal/domain"
	"github.com/effitech/solar-api/internal/domain/entity"
	"github.com/effitech/solar-api/internal/domain/repository"
	"github.com/effitech/solar-api/pkg/logger"
)

// UserUseCase aplica reglas de negocio para la gestión de usuarios (solo admin).
type UserUseCase struct {
	repo repository.UserRepository
	tx   repository.TxRunner
	log  *logger.Logger
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, tx repository.TxRunner, log *logger.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, tx: tx, log: log}
}

// GetByID obtiene un usuario por ID; (nil, nil) si no existe.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return uc.repo.GetByID(ctx, id)
}

// List lista todos los usuarios.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *entityToUserResponse(u))
	}
	return items, nil
}

// UpdateRole cambia el rol de un usuario. Un admin no puede quitarse su propio rol.
// Repetir el mismo rol no tiene efecto adicional.
func (uc *UserUseCase) UpdateRole(ctx context.Context, actorID, userID, role string) (*dto.UserResponse, error) {
	if !entity.ValidRole(role) {
		return nil, domain.Invalid("role", "Rol inválido: debe ser 'admin' o 'user'")
	}
	if userID == actorID && role != entity.RoleAdmin {
		return nil, domain.ErrSelfDemotion
	}
	user, err := uc.repo.UpdateRole(ctx, userID, role)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", userID).Str("role", role).Msg("rol de usuario actualizado")
	return entityToUserResponse(user), nil
}

// Delete elimina un usuario y desasigna sus paneles en la misma transacción.
func (uc *UserUseCase) Delete(ctx context.Context, actorID, userID string) error {
	if userID == actorID {
		return domain.ErrSelfDeletion
	}
	var released int
	err := uc.tx.Run(ctx, func(users repository.UserRepository, panels repository.PanelRepository) error {
		n, err := panels.UnassignAllFromUser(ctx, userID)
		if err != nil {
			return err
		}
		released = n
		return users.Delete(ctx, userID)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("user_id", userID).Int("paneles_liberados", released).Msg("usuario eliminado")
	return nil
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
