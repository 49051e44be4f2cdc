package dashboard

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/effitech/solar-api/internal/application/dto"
	"github.com/effitech/solar-api/pkg/logger"
)

// Session estado de autenticación compartido por las pantallas.
type Session struct {
	User    *dto.UserResponse
	Token   string
	Loading bool
}

// IsAdmin indica si hay un usuario autenticado con rol admin.
func (s Session) IsAdmin() bool {
	return s.User != nil && s.User.Role == "admin"
}

// SessionStore dueño de la sesión. Se pasa explícitamente a quien la necesite.
// Nace en Loading hasta que Init resuelve.
type SessionStore struct {
	api    AuthAPI
	tokens TokenStore
	log    *logger.Logger

	mu      sync.RWMutex
	session Session
}

// NewSessionStore construye el store. tokens puede ser nil (sesión solo en memoria).
func NewSessionStore(api AuthAPI, tokens TokenStore, log *logger.Logger) *SessionStore {
	if log == nil {
		log = logger.Nop()
	}
	return &SessionStore{api: api, tokens: tokens, log: log, session: Session{Loading: true}}
}

// Current devuelve una copia de la sesión.
func (s *SessionStore) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Init verifica el token guardado contra /auth/me. Un token inválido se descarta.
// Siempre termina con Loading en false.
func (s *SessionStore) Init(ctx context.Context) error {
	defer s.setLoading(false)

	if s.tokens == nil {
		return nil
	}
	token, err := s.tokens.Load()
	if err != nil {
		return fmt.Errorf("dashboard: leer token: %w", err)
	}
	if token == "" {
		return nil
	}

	s.api.SetToken(token)
	user, err := s.api.Me(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("token guardado inválido, se descarta la sesión")
		s.clear()
		return nil
	}
	s.set(user, token)
	return nil
}

// Login autentica y guarda la sesión.
func (s *SessionStore) Login(ctx context.Context, email, password string) error {
	out, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return s.establish(out)
}

// Register crea la cuenta e inicia sesión con ella.
func (s *SessionStore) Register(ctx context.Context, in dto.RegisterRequest) error {
	out, err := s.api.Register(ctx, in)
	if err != nil {
		return err
	}
	return s.establish(out)
}

// Logout limpia usuario y token.
func (s *SessionStore) Logout() error {
	return s.clear()
}

func (s *SessionStore) establish(out *dto.TokenResponse) error {
	user := out.User
	s.api.SetToken(out.AccessToken)
	s.set(&user, out.AccessToken)
	if s.tokens != nil {
		if err := s.tokens.Save(out.AccessToken); err != nil {
			return fmt.Errorf("dashboard: guardar token: %w", err)
		}
	}
	return nil
}

func (s *SessionStore) set(user *dto.UserResponse, token string) {
	s.mu.Lock()
	s.session.User = user
	s.session.Token = token
	s.mu.Unlock()
}

func (s *SessionStore) setLoading(v bool) {
	s.mu.Lock()
	s.session.Loading = v
	s.mu.Unlock()
}

func (s *SessionStore) clear() error {
	s.api.SetToken("")
	s.set(nil, "")
	if s.tokens != nil {
		return s.tokens.Clear()
	}
	return nil
}

// FileTokenStore guarda el token en un archivo con permisos 0600.
type FileTokenStore struct {
	path string
}

// NewFileTokenStore construye el store sobre path.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Load devuelve "" si el archivo no existe.
func (f *FileTokenStore) Load() (string, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// Save escribe el token.
func (f *FileTokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(f.path, []byte(token+"\n"), 0o600)
}

// Clear elimina el archivo; no es error si no existe.
func (f *FileTokenStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
