package backend

import (
	"context"
	"net/http"
)

// ListTenants returns all tenants. Admin only.
func (c *Client) ListTenants(ctx context.Context) ([]Tenant, error) {
	var tenants []Tenant
	err := c.do(ctx, call{
		resource: "tenants",
		method:   http.MethodGet,
		path:     "/tenants",
		out:      &tenants,
	})
	if err != nil {
		return nil, err
	}
	return tenants, nil
}

// CreateTenant assigns a person to a room. Admin only.
func (c *Client) CreateTenant(ctx context.Context, req CreateTenantRequest) (*Tenant, error) {
	var tenant Tenant
	err := c.do(ctx, call{
		resource: "tenants",
		method:   http.MethodPost,
		path:     "/tenants",
		json:     req,
		out:      &tenant,
	})
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}
