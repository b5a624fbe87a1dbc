// Package permission talks to the backend permission endpoints: the owner
// (sidebar) list used by clinic and doctor accounts, and the module-scoped
// lookups used by agents and doctor staff.
package permission

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"clinic-portal/internal/model"
	"clinic-portal/pkg/transport"
)

var (
	// ErrNotFound means the endpoint has no permission object for the module
	ErrNotFound = errors.New("permission not found")
	// ErrForbidden means the endpoint refused the token
	ErrForbidden       = errors.New("permission lookup forbidden")
	ErrUnsupportedRole = errors.New("role has no module permission endpoint")
)

// Paths are the endpoint paths relative to the base URL
type Paths struct {
	Owner       string
	Agent       string
	DoctorStaff string
}

type Client struct {
	baseURL string
	paths   Paths
	http    *http.Client
}

// NewClient builds a client; a zero timeout leaves requests bounded only by ctx
func NewClient(baseURL string, paths Paths, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		paths:   paths,
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport.NewLoggingRoundTripper(http.DefaultTransport),
		},
	}
}

type ownerResponse struct {
	Success     bool                     `json:"success"`
	Permissions []model.ModulePermission `json:"permissions"`
}

type moduleResponse struct {
	Success     bool                    `json:"success"`
	Permissions *model.ModulePermission `json:"permissions"`
}

// OwnerPermissions returns every module record configured for the account.
// A nil slice means no restriction has ever been configured.
func (c *Client) OwnerPermissions(ctx context.Context, token string) ([]model.ModulePermission, error) {
	var data ownerResponse
	if err := c.get(ctx, c.paths.Owner, token, &data); err != nil {
		return nil, err
	}
	return data.Permissions, nil
}

// ModulePermission returns the record of one module for a scoped account
func (c *Client) ModulePermission(ctx context.Context, role model.Role, token, moduleKey string) (model.ModulePermission, error) {
	var path string
	switch role {
	case model.RoleAgent:
		path = c.paths.Agent
	case model.RoleDoctorStaff:
		path = c.paths.DoctorStaff
	default:
		return model.ModulePermission{}, fmt.Errorf("%w: %s", ErrUnsupportedRole, role)
	}

	var data moduleResponse
	if err := c.get(ctx, path+"/"+url.PathEscape(moduleKey), token, &data); err != nil {
		return model.ModulePermission{}, err
	}
	if data.Permissions == nil {
		return model.ModulePermission{}, ErrNotFound
	}
	return *data.Permissions, nil
}

func (c *Client) get(ctx context.Context, path, token string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}

	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusForbidden:
		return ErrForbidden
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status code: %d\nbody: %s", resp.StatusCode, body)
	}

	err = json.NewDecoder(resp.Body).Decode(dst)
	if err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
