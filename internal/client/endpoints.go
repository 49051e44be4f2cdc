package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/effitech/solar-api/internal/application/dto"
)

// ── Auth ──────────────────────────────────────────────────────────────────────

// Login POST /api/auth/login.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.TokenResponse, error) {
	var out dto.TokenResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Register POST /api/auth/register.
func (c *Client) Register(ctx context.Context, in dto.RegisterRequest) (*dto.TokenResponse, error) {
	var out dto.TokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me GET /api/auth/me.
func (c *Client) Me(ctx context.Context) (*dto.UserResponse, error) {
	var out dto.UserResponse
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health GET /api/health.
func (c *Client) Health(ctx context.Context) (*dto.HealthResponse, error) {
	var out dto.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Paneles ───────────────────────────────────────────────────────────────────

// ListPanels GET /api/panels.
func (c *Client) ListPanels(ctx context.Context) ([]dto.PanelResponse, error) {
	var out []dto.PanelResponse
	if err := c.do(ctx, http.MethodGet, "/api/panels", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPanel GET /api/panels/{id}.
func (c *Client) GetPanel(ctx context.Context, id string) (*dto.PanelResponse, error) {
	return c.panelCall(ctx, http.MethodGet, "/api/panels/"+url.PathEscape(id), nil)
}

// CreatePanel POST /api/panels.
func (c *Client) CreatePanel(ctx context.Context, in dto.CreatePanelRequest) (*dto.PanelResponse, error) {
	return c.panelCall(ctx, http.MethodPost, "/api/panels", in)
}

// UpdatePanel PUT /api/panels/{id}. Solo se envían los campos no nil.
func (c *Client) UpdatePanel(ctx context.Context, id string, in dto.UpdatePanelRequest) (*dto.PanelResponse, error) {
	return c.panelCall(ctx, http.MethodPut, "/api/panels/"+url.PathEscape(id), in)
}

// DeletePanel DELETE /api/panels/{id}.
func (c *Client) DeletePanel(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/panels/"+url.PathEscape(id), nil, nil)
}

// AssignPanel POST /api/panels/{id}/assign/{userId}.
func (c *Client) AssignPanel(ctx context.Context, id, userID string) (*dto.PanelResponse, error) {
	return c.panelCall(ctx, http.MethodPost, "/api/panels/"+url.PathEscape(id)+"/assign/"+url.PathEscape(userID), nil)
}

// UnassignPanel POST /api/panels/{id}/unassign.
func (c *Client) UnassignPanel(ctx context.Context, id string) (*dto.PanelResponse, error) {
	return c.panelCall(ctx, http.MethodPost, "/api/panels/"+url.PathEscape(id)+"/unassign", nil)
}

func (c *Client) panelCall(ctx context.Context, method, path string, in any) (*dto.PanelResponse, error) {
	var out dto.PanelResponse
	if err := c.do(ctx, method, path, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PanelSummary GET /api/panels/summary.
func (c *Client) PanelSummary(ctx context.Context) (*dto.PanelSummaryResponse, error) {
	var out dto.PanelSummaryResponse
	if err := c.do(ctx, http.MethodGet, "/api/panels/summary", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PanelReport GET /api/panels/report (bytes del PDF).
func (c *Client) PanelReport(ctx context.Context) ([]byte, error) {
	return c.raw(ctx, http.MethodGet, "/api/panels/report")
}

// ── Usuarios ──────────────────────────────────────────────────────────────────

// ListUsers GET /api/users.
func (c *Client) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	var out []dto.UserResponse
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateUserRole PUT /api/users/{id}/role.
func (c *Client) UpdateUserRole(ctx context.Context, id, role string) (*dto.UserResponse, error) {
	var out dto.UserResponse
	err := c.do(ctx, http.MethodPut, "/api/users/"+url.PathEscape(id)+"/role", dto.UpdateRoleRequest{Role: role}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser DELETE /api/users/{id}.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/users/"+url.PathEscape(id), nil, nil)
}

// ── Dashboard ─────────────────────────────────────────────────────────────────

// Overview GET /api/dashboard/overview.
func (c *Client) Overview(ctx context.Context) (*dto.OverviewResponse, error) {
	var out dto.OverviewResponse
	if err := c.do(ctx, http.MethodGet, "/api/dashboard/overview", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Energy GET /api/dashboard/energy.
func (c *Client) Energy(ctx context.Context) (*dto.EnergyResponse, error) {
	var out dto.EnergyResponse
	if err := c.do(ctx, http.MethodGet, "/api/dashboard/energy", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Analytics GET /api/dashboard/analytics.
func (c *Client) Analytics(ctx context.Context) (*dto.AnalyticsResponse, error) {
	var out dto.AnalyticsResponse
	if err := c.do(ctx, http.MethodGet, "/api/dashboard/analytics", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
