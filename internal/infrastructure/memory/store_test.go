package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/effitech/solar-api/internal/domain"
	"github.com/effitech/solar-api/internal/domain/entity"
	"github.com/effitech/solar-api/internal/domain/repository"
)

func seedUser(t *testing.T, repo *UserRepo, id, email, name string) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &entity.User{
		ID: id, Email: email, FullName: name, Role: entity.RoleUser, CreatedAt: time.Now(),
	}))
}

func seedPanel(t *testing.T, repo *PanelRepo, id, owner string) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &entity.Panel{
		ID: id, Model: "Solar Pro " + id, Location: "Techo", Capacity: decimal.NewFromInt(3000),
		Status: entity.PanelStatusActive, UserID: owner, CreatedAt: time.Now(),
	}))
}

func TestUserRepo_EmailUnicoSinMayusculas(t *testing.T) {
	s := NewStore()
	users := NewUserRepository(s)
	seedUser(t, users, "u1", "ana@effitech.com", "Ana")

	err := users.Create(context.Background(), &entity.User{ID: "u2", Email: "ANA@effitech.com"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	got, err := users.GetByEmail(context.Background(), "Ana@Effitech.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.ID)
}

func TestUserRepo_ListEnOrdenDeCreacion(t *testing.T) {
	s := NewStore()
	users := NewUserRepository(s)
	seedUser(t, users, "b", "b@x.com", "B")
	seedUser(t, users, "a", "a@x.com", "A")
	seedUser(t, users, "c", "c@x.com", "C")

	list, err := users.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"b", "a", "c"}, []string{list[0].ID, list[1].ID, list[2].ID})
}

func TestUserRepo_DeleteDosVeces(t *testing.T) {
	s := NewStore()
	users := NewUserRepository(s)
	seedUser(t, users, "u1", "a@x.com", "A")

	require.NoError(t, users.Delete(context.Background(), "u1"))
	assert.ErrorIs(t, users.Delete(context.Background(), "u1"), domain.ErrUserNotFound)
}

func TestPanelRepo_ResuelveNombreDelDueno(t *testing.T) {
	s := NewStore()
	users := NewUserRepository(s)
	panels := NewPanelRepository(s)
	seedUser(t, users, "u1", "a@x.com", "Ana Pérez")
	seedPanel(t, panels, "p1", "u1")
	seedPanel(t, panels, "p2", "")

	p, err := panels.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Ana Pérez", p.UserName)

	mine, err := panels.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "p1", mine[0].ID)
}

func TestPanelRepo_UnassignAllFromUser(t *testing.T) {
	s := NewStore()
	panels := NewPanelRepository(s)
	seedPanel(t, panels, "p1", "u1")
	seedPanel(t, panels, "p2", "u1")
	seedPanel(t, panels, "p3", "u2")

	n, err := panels.UnassignAllFromUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	p3, _ := panels.GetByID(context.Background(), "p3")
	assert.Equal(t, "u2", p3.UserID)
}

func TestTxRunner_RollbackAlFallar(t *testing.T) {
	s := NewStore()
	users := NewUserRepository(s)
	panels := NewPanelRepository(s)
	seedUser(t, users, "u1", "a@x.com", "A")
	seedPanel(t, panels, "p1", "u1")

	boom := errors.New("boom")
	err := NewTxRunner(s).Run(context.Background(), func(ur repository.UserRepository, pr repository.PanelRepository) error {
		if _, err := pr.UnassignAllFromUser(context.Background(), "u1"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	p1, _ := panels.GetByID(context.Background(), "p1")
	assert.Equal(t, "u1", p1.UserID, "el cambio dentro de la transacción fallida se descarta")
}

func TestTxRunner_RollbackConservaEscriturasAjenas(t *testing.T) {
	s := NewStore()
	users := NewUserRepository(s)
	panels := NewPanelRepository(s)
	seedUser(t, users, "u1", "a@x.com", "A")
	seedPanel(t, panels, "p1", "u1")
	seedPanel(t, panels, "p2", "")

	boom := errors.New("boom")
	err := NewTxRunner(s).Run(context.Background(), func(ur repository.UserRepository, pr repository.PanelRepository) error {
		if _, err := pr.UnassignAllFromUser(context.Background(), "u1"); err != nil {
			return err
		}
		require.NoError(t, ur.Create(context.Background(), &entity.User{ID: "tx", Email: "tx@x.com"}))

		// Otra petición escribe fuera de la transacción mientras esta sigue abierta.
		seedUser(t, users, "u2", "b@x.com", "B")
		require.NoError(t, panels.SetOwner(context.Background(), "p2", "u2"))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	p1, _ := panels.GetByID(context.Background(), "p1")
	assert.Equal(t, "u1", p1.UserID, "la fila tocada por la transacción vuelve a su estado")
	tx, _ := users.GetByID(context.Background(), "tx")
	assert.Nil(t, tx, "lo creado dentro de la transacción desaparece")

	u2, _ := users.GetByID(context.Background(), "u2")
	assert.NotNil(t, u2, "la escritura concurrente se conserva")
	p2, _ := panels.GetByID(context.Background(), "p2")
	assert.Equal(t, "u2", p2.UserID)
	assert.Equal(t, "B", p2.UserName)
}
