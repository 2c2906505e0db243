package views

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"roomdesk/internal/backend"
	"roomdesk/pkg/apperrors"
)

// Tenants manages the administrator's tenant listing and assignment form.
type Tenants struct {
	client *backend.Client
	logger *slog.Logger

	mu      sync.Mutex
	tenants []backend.Tenant
}

func NewTenants(client *backend.Client, logger *slog.Logger) *Tenants {
	return &Tenants{client: client, logger: logger}
}

// Refresh reloads the tenant list, keeping the previous one on failure.
func (v *Tenants) Refresh(ctx context.Context) error {
	tenants, err := v.client.ListTenants(ctx)
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.tenants = tenants
	v.mu.Unlock()
	return nil
}

// Tenants returns the last successfully fetched list.
func (v *Tenants) Tenants() []backend.Tenant {
	v.mu.Lock()
	defer v.mu.Unlock()
	tenants := make([]backend.Tenant, len(v.tenants))
	copy(tenants, v.tenants)
	return tenants
}

// Create validates and submits a tenant assignment, then re-fetches.
func (v *Tenants) Create(ctx context.Context, req backend.CreateTenantRequest) ([]Feedback, error) {
	if req.Name == "" || req.Email == "" || req.RoomID == "" {
		err := apperrors.New(apperrors.CodeValidation, "name, email and room are required")
		return []Feedback{failure(err)}, err
	}
	if !strings.Contains(req.Email, "@") {
		err := apperrors.New(apperrors.CodeValidation, "email address is not valid")
		return []Feedback{failure(err)}, err
	}

	feedback := []Feedback{info(MsgCreatingTenant)}
	if _, err := v.client.CreateTenant(ctx, req); err != nil {
		return append(feedback, failure(err)), err
	}

	if err := v.Refresh(ctx); err != nil {
		v.logger.Warn("tenant list refresh after create failed", "error", err)
	}
	return append(feedback, success(MsgTenantCreated)), nil
}
