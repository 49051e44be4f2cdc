package dashboard_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/effitech/solar-api/internal/application/dto"
	"github.com/effitech/solar-api/internal/client"
	"github.com/effitech/solar-api/internal/testserver"
)

// toasts registra las notificaciones en orden.
type toasts struct {
	mu   sync.Mutex
	list []string
}

func (t *toasts) Success(msg string) { t.add("ok: " + msg) }
func (t *toasts) Error(msg string)   { t.add("error: " + msg) }

func (t *toasts) add(s string) {
	t.mu.Lock()
	t.list = append(t.list, s)
	t.mu.Unlock()
}

func (t *toasts) last() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.list) == 0 {
		return ""
	}
	return t.list[len(t.list)-1]
}

// confirmer responde siempre answer y guarda el último prompt.
type confirmer struct {
	answer bool
	prompt string
}

func (c *confirmer) Confirm(prompt string) bool {
	c.prompt = prompt
	return c.answer
}

// newAdmin levanta el servidor y devuelve un cliente autenticado como el primer usuario (admin).
func newAdmin(t *testing.T) (string, *client.Client, dto.UserResponse) {
	t.Helper()
	url := testserver.Start(t)
	c := client.New(url)
	out, err := c.Register(context.Background(), dto.RegisterRequest{
		Email: "admin@effitech.com", Password: "secreto123", FullName: "Admin",
	})
	require.NoError(t, err)
	c.SetToken(out.AccessToken)
	return url, c, out.User
}

// registerUser crea un usuario normal sin tocar el token de c.
func registerUser(t *testing.T, url, email, name string) dto.UserResponse {
	t.Helper()
	out, err := client.New(url).Register(context.Background(), dto.RegisterRequest{
		Email: email, Password: "secreto123", FullName: name,
	})
	require.NoError(t, err)
	return out.User
}
