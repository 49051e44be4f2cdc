package dashboard_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/effitech/solar-api/internal/client"
	"github.com/effitech/solar-api/internal/dashboard"
	"github.com/effitech/solar-api/internal/testserver"
)

func TestSession_InitSinToken(t *testing.T) {
	store := dashboard.NewSessionStore(client.New(testserver.Start(t)),
		dashboard.NewFileTokenStore(filepath.Join(t.TempDir(), "token")), nil)

	assert.True(t, store.Current().Loading, "la sesión nace cargando")
	assert.Equal(t, dashboard.Wait, dashboard.Guard(store.Current(), false))

	require.NoError(t, store.Init(context.Background()))
	s := store.Current()
	assert.False(t, s.Loading)
	assert.Nil(t, s.User)
	assert.Equal(t, dashboard.RedirectLogin, dashboard.Guard(s, false))
}

func TestSession_LoginPersisteYRestaura(t *testing.T) {
	url := testserver.Start(t)
	registerUser(t, url, "admin@effitech.com", "Admin")
	tokenPath := filepath.Join(t.TempDir(), "sub", "token")

	first := dashboard.NewSessionStore(client.New(url), dashboard.NewFileTokenStore(tokenPath), nil)
	require.NoError(t, first.Init(context.Background()))
	require.NoError(t, first.Login(context.Background(), "admin@effitech.com", "secreto123"))
	assert.True(t, first.Current().IsAdmin())

	info, err := os.Stat(tokenPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// Otra ejecución con el mismo archivo recupera la sesión vía /auth/me.
	second := dashboard.NewSessionStore(client.New(url), dashboard.NewFileTokenStore(tokenPath), nil)
	require.NoError(t, second.Init(context.Background()))
	require.NotNil(t, second.Current().User)
	assert.Equal(t, "admin@effitech.com", second.Current().User.Email)
	assert.Equal(t, dashboard.Allow, dashboard.Guard(second.Current(), true))

	require.NoError(t, second.Logout())
	assert.Nil(t, second.Current().User)
	_, err = os.Stat(tokenPath)
	assert.True(t, os.IsNotExist(err), "logout borra el token guardado")
}

func TestSession_TokenInvalidoSeDescarta(t *testing.T) {
	tokenPath := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(tokenPath, []byte("basura\n"), 0o600))

	c := client.New(testserver.Start(t))
	store := dashboard.NewSessionStore(c, dashboard.NewFileTokenStore(tokenPath), nil)
	require.NoError(t, store.Init(context.Background()))

	assert.False(t, store.Current().Loading)
	assert.Nil(t, store.Current().User)
	assert.Empty(t, c.Token())
	_, err := os.Stat(tokenPath)
	assert.True(t, os.IsNotExist(err))
}
