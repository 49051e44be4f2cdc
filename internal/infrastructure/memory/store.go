// Package memory implementa los puertos de persistencia en memoria.
// Se usa con DB_DRIVER=memory (desarrollo local) y en los tests de integración.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/effitech/solar-api/internal/domain"
	"github.com/effitech/solar-api/internal/domain/entity"
	"github.com/effitech/solar-api/internal/domain/repository"
)

var (
	_ repository.UserRepository  = (*UserRepo)(nil)
	_ repository.PanelRepository = (*PanelRepo)(nil)
	_ repository.TxRunner        = (*TxRunner)(nil)
)

type userRow struct {
	seq  int64
	user entity.User
}

type panelRow struct {
	seq   int64
	panel entity.Panel
}

// Store contiene usuarios y paneles. Es seguro para uso concurrente.
type Store struct {
	mu     sync.RWMutex
	txMu   sync.Mutex
	seq    int64
	users  map[string]*userRow
	panels map[string]*panelRow
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{
		users:  make(map[string]*userRow),
		panels: make(map[string]*panelRow),
	}
}

// Ping siempre responde; existe para el health check.
func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

// ── Usuarios ──────────────────────────────────────────────────────────────────

// UserRepo adaptador UserRepository sobre Store.
type UserRepo struct {
	s    *Store
	undo *undoLog
}

// NewUserRepository construye el repositorio de usuarios.
func NewUserRepository(s *Store) *UserRepo { return &UserRepo{s: s} }

// Create persiste un usuario; el email es único sin distinguir mayúsculas.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, row := range r.s.users {
		if strings.EqualFold(row.user.Email, user.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.undo.user(r.s, user.ID)
	r.s.users[user.ID] = &userRow{seq: r.s.nextSeq(), user: *user}
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	row, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	u := row.user
	return &u, nil
}

// GetByEmail devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, row := range r.s.users {
		if strings.EqualFold(row.user.Email, email) {
			u := row.user
			return &u, nil
		}
	}
	return nil, nil
}

// List devuelve los usuarios en orden de creación.
func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rows := make([]*userRow, 0, len(r.s.users))
	for _, row := range r.s.users {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })
	list := make([]*entity.User, 0, len(rows))
	for _, row := range rows {
		u := row.user
		list = append(list, &u)
	}
	return list, nil
}

// Count devuelve el número de usuarios.
func (r *UserRepo) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.users), nil
}

// UpdateRole cambia el rol y devuelve el usuario actualizado.
func (r *UserRepo) UpdateRole(_ context.Context, id, role string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	r.undo.user(r.s, id)
	row.user.Role = role
	u := row.user
	return &u, nil
}

// Delete elimina el usuario.
func (r *UserRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	r.undo.user(r.s, id)
	delete(r.s.users, id)
	return nil
}

// ── Paneles ───────────────────────────────────────────────────────────────────

// PanelRepo adaptador PanelRepository sobre Store.
type PanelRepo struct {
	s    *Store
	undo *undoLog
}

// NewPanelRepository construye el repositorio de paneles.
func NewPanelRepository(s *Store) *PanelRepo { return &PanelRepo{s: s} }

// Create persiste un panel.
func (r *PanelRepo) Create(_ context.Context, panel *entity.Panel) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.undo.panel(r.s, panel.ID)
	r.s.panels[panel.ID] = &panelRow{seq: r.s.nextSeq(), panel: *panel}
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *PanelRepo) GetByID(_ context.Context, id string) (*entity.PanelWithOwner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	row, ok := r.s.panels[id]
	if !ok {
		return nil, nil
	}
	return r.withOwner(row.panel), nil
}

// List devuelve todos los paneles en orden de creación.
func (r *PanelRepo) List(_ context.Context) ([]*entity.PanelWithOwner, error) {
	return r.list(func(*entity.Panel) bool { return true }), nil
}

// ListByUser devuelve los paneles asignados a userID.
func (r *PanelRepo) ListByUser(_ context.Context, userID string) ([]*entity.PanelWithOwner, error) {
	return r.list(func(p *entity.Panel) bool { return p.UserID == userID }), nil
}

func (r *PanelRepo) list(keep func(*entity.Panel) bool) []*entity.PanelWithOwner {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rows := make([]*panelRow, 0, len(r.s.panels))
	for _, row := range r.s.panels {
		if keep(&row.panel) {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })
	list := make([]*entity.PanelWithOwner, 0, len(rows))
	for _, row := range rows {
		list = append(list, r.withOwner(row.panel))
	}
	return list
}

// withOwner requiere r.s.mu tomado.
func (r *PanelRepo) withOwner(p entity.Panel) *entity.PanelWithOwner {
	out := &entity.PanelWithOwner{Panel: p}
	if p.UserID != "" {
		if u, ok := r.s.users[p.UserID]; ok {
			out.UserName = u.user.FullName
		}
	}
	return out
}

// Update persiste los campos editables del panel.
func (r *PanelRepo) Update(_ context.Context, panel *entity.Panel) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.panels[panel.ID]
	if !ok {
		return domain.ErrPanelNotFound
	}
	r.undo.panel(r.s, panel.ID)
	row.panel.Model = panel.Model
	row.panel.Location = panel.Location
	row.panel.Capacity = panel.Capacity
	row.panel.Status = panel.Status
	row.panel.UserID = panel.UserID
	return nil
}

// SetOwner asigna o desasigna el panel.
func (r *PanelRepo) SetOwner(_ context.Context, id, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.panels[id]
	if !ok {
		return domain.ErrPanelNotFound
	}
	r.undo.panel(r.s, id)
	row.panel.UserID = userID
	return nil
}

// UnassignAllFromUser desasigna los paneles de userID.
func (r *PanelRepo) UnassignAllFromUser(_ context.Context, userID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for id, row := range r.s.panels {
		if row.panel.UserID == userID {
			r.undo.panel(r.s, id)
			row.panel.UserID = ""
			n++
		}
	}
	return n, nil
}

// Delete elimina el panel.
func (r *PanelRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.panels[id]; !ok {
		return domain.ErrPanelNotFound
	}
	r.undo.panel(r.s, id)
	delete(r.s.panels, id)
	return nil
}

// ── Transacciones ─────────────────────────────────────────────────────────────

// TxRunner serializa las transacciones. Si fn falla, deshace solo las filas que tocó:
// las escrituras concurrentes fuera de la transacción se conservan.
type TxRunner struct{ s *Store }

// NewTxRunner construye el runner.
func NewTxRunner(s *Store) *TxRunner { return &TxRunner{s: s} }

// Run ejecuta fn; si devuelve error, los cambios hechos dentro se descartan.
func (t *TxRunner) Run(_ context.Context, fn func(users repository.UserRepository, panels repository.PanelRepository) error) error {
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()

	undo := newUndoLog()
	if err := fn(&UserRepo{s: t.s, undo: undo}, &PanelRepo{s: t.s, undo: undo}); err != nil {
		t.s.rollback(undo)
		return err
	}
	return nil
}

// undoLog estado previo de cada fila escrita en una transacción; nil = la fila no existía.
// Un undoLog nil (repositorios fuera de transacción) no registra nada.
type undoLog struct {
	users  map[string]*userRow
	panels map[string]*panelRow
}

func newUndoLog() *undoLog {
	return &undoLog{users: make(map[string]*userRow), panels: make(map[string]*panelRow)}
}

// user requiere s.mu tomado. Solo guarda la primera versión de la fila.
func (u *undoLog) user(s *Store, id string) {
	if u == nil {
		return
	}
	if _, seen := u.users[id]; seen {
		return
	}
	if row, ok := s.users[id]; ok {
		cp := *row
		u.users[id] = &cp
		return
	}
	u.users[id] = nil
}

// panel requiere s.mu tomado.
func (u *undoLog) panel(s *Store, id string) {
	if u == nil {
		return
	}
	if _, seen := u.panels[id]; seen {
		return
	}
	if row, ok := s.panels[id]; ok {
		cp := *row
		u.panels[id] = &cp
		return
	}
	u.panels[id] = nil
}

func (s *Store) rollback(u *undoLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, row := range u.users {
		if row == nil {
			delete(s.users, id)
			continue
		}
		s.users[id] = row
	}
	for id, row := range u.panels {
		if row == nil {
			delete(s.panels, id)
			continue
		}
		s.panels[id] = row
	}
}
