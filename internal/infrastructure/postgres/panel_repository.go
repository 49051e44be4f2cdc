package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/effitech/solar-api/internal/domain"
	"github.com/effitech/solar-api/internal/domain/entity"
	"github.com/effitech/solar-api/internal/domain/repository"
)

var _ repository.PanelRepository = (*PanelRepo)(nil)

// selectPanels resuelve el nombre del usuario asignado con un LEFT JOIN.
const selectPanels = `
	SELECT p.id, p.model, p.location, p.capacity, p.status,
	       COALESCE(p.user_id, ''), COALESCE(u.full_name, ''), p.created_at
	FROM panels p
	LEFT JOIN users u ON u.id = p.user_id`

// PanelRepo implementación del puerto PanelRepository sobre PostgreSQL (usable con pool o tx).
type PanelRepo struct {
	q Querier
}

// NewPanelRepository construye el adaptador.
func NewPanelRepository(q Querier) *PanelRepo {
	return &PanelRepo{q: q}
}

// Create persiste un panel.
func (r *PanelRepo) Create(ctx context.Context, p *entity.Panel) error {
	query := `
		INSERT INTO panels (id, model, location, capacity, status, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Model, p.Location, p.Capacity, p.Status, nullable(p.UserID), p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert panel: %w", err)
	}
	return nil
}

// GetByID obtiene un panel con su dueño.
func (r *PanelRepo) GetByID(ctx context.Context, id string) (*entity.PanelWithOwner, error) {
	row := r.q.QueryRow(ctx, selectPanels+` WHERE p.id = $1`, id)
	p, err := scanPanel(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get panel: %w", err)
	}
	return p, nil
}

// List lista todos los paneles en orden de creación.
func (r *PanelRepo) List(ctx context.Context) ([]*entity.PanelWithOwner, error) {
	return r.list(ctx, selectPanels+` ORDER BY p.created_at, p.id`)
}

// ListByUser lista los paneles asignados a userID.
func (r *PanelRepo) ListByUser(ctx context.Context, userID string) ([]*entity.PanelWithOwner, error) {
	return r.list(ctx, selectPanels+` WHERE p.user_id = $1 ORDER BY p.created_at, p.id`, userID)
}

func (r *PanelRepo) list(ctx context.Context, query string, args ...any) ([]*entity.PanelWithOwner, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list panels: %w", err)
	}
	defer rows.Close()
	var list []*entity.PanelWithOwner
	for rows.Next() {
		p, err := scanPanel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan panel: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanPanel(row pgx.Row) (*entity.PanelWithOwner, error) {
	var p entity.PanelWithOwner
	err := row.Scan(&p.ID, &p.Model, &p.Location, &p.Capacity, &p.Status, &p.UserID, &p.UserName, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update persiste los campos editables.
func (r *PanelRepo) Update(ctx context.Context, p *entity.Panel) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE panels SET model = $2, location = $3, capacity = $4, status = $5, user_id = $6
		WHERE id = $1`,
		p.ID, p.Model, p.Location, p.Capacity, p.Status, nullable(p.UserID),
	)
	if err != nil {
		return fmt.Errorf("update panel: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPanelNotFound
	}
	return nil
}

// SetOwner asigna o desasigna (userID vacío) el panel.
func (r *PanelRepo) SetOwner(ctx context.Context, id, userID string) error {
	tag, err := r.q.Exec(ctx, `UPDATE panels SET user_id = $2 WHERE id = $1`, id, nullable(userID))
	if err != nil {
		return fmt.Errorf("set panel owner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPanelNotFound
	}
	return nil
}

// UnassignAllFromUser desasigna todos los paneles del usuario.
func (r *PanelRepo) UnassignAllFromUser(ctx context.Context, userID string) (int, error) {
	tag, err := r.q.Exec(ctx, `UPDATE panels SET user_id = NULL WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("unassign panels: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// Delete elimina un panel.
func (r *PanelRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM panels WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete panel: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPanelNotFound
	}
	return nil
}
