package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/stretchr/testify/require"

	"clinic-portal/internal/handler"
	"clinic-portal/internal/layout"
	"clinic-portal/internal/middleware"
	"clinic-portal/internal/model"
	"clinic-portal/internal/service"
	"clinic-portal/internal/storage"
)

type stubStats struct{}

func (stubStats) GetDashboardStats(context.Context) (model.DashboardStats, error) {
	return model.DashboardStats{TotalJobs: 4, TotalApplicants: 9}, nil
}

type stores struct{ store *storage.MemoryStore }

func (s stores) Scoped(string) storage.Store { return s.store }

type stubResolver struct {
	got service.PermissionQuery
	out model.CapabilitySet
}

func (r *stubResolver) Resolve(_ context.Context, q service.PermissionQuery) model.CapabilitySet {
	r.got = q
	return r.out
}

func newApp(t *testing.T) (*fiber.App, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	dash := service.NewDashboardService(stubStats{}, stores{store}, nil, 0)
	layoutHandler := handler.NewLayoutHandler(dash)
	dashHandler := handler.NewDashboardHandler(dash)

	app := fiber.New()
	app.Use(middleware.DeviceCookie("clinic_device"))
	app.Get("/dashboard/stats", dashHandler.GetDashboardStats)

	l := app.Group("/layout")
	l.Get("/", layoutHandler.GetLayout)
	l.Post("/edit", layoutHandler.EnterEdit)
	l.Post("/save", layoutHandler.Save)
	l.Post("/cancel", layoutHandler.Cancel)
	l.Post("/drag-start", layoutHandler.DragStart)
	l.Post("/drag-end", layoutHandler.DragEnd)
	l.Post("/visibility", layoutHandler.ToggleVisibility)
	l.Post("/undo", layoutHandler.Undo)
	l.Post("/redo", layoutHandler.Redo)
	l.Post("/keys", layoutHandler.KeyStroke)
	l.Put("/grid-size", layoutHandler.SetGridSize)
	l.Get("/export", layoutHandler.Export)
	l.Post("/import", layoutHandler.Import)
	l.Post("/reset", layoutHandler.Reset)
	return app, store
}

const device = "0b8f4f0e-7c1c-4b7e-9d5e-2f4d7f3b9a11"

func do(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "clinic_device", Value: device})

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, b
}

type changedBody struct {
	Changed bool               `json:"changed"`
	Layout  service.LayoutView `json:"layout"`
}

func TestLayoutDragFlow(t *testing.T) {
	t.Parallel()
	app, store := newApp(t)

	resp, raw := do(t, app, http.MethodGet, "/layout", "")
	require.Equal(t, 200, resp.StatusCode)
	var view service.LayoutView
	require.NoError(t, json.Unmarshal(raw, &view))
	require.Equal(t, layout.ModeView, view.Mode)
	require.Equal(t, int64(4), view.StatCards.Primary[0].Value)

	resp, _ = do(t, app, http.MethodPost, "/layout/edit", "")
	require.Equal(t, 200, resp.StatusCode)

	resp, _ = do(t, app, http.MethodPost, "/layout/drag-start", `{"id":"stat-total-jobs"}`)
	require.Equal(t, 200, resp.StatusCode)

	resp, raw = do(t, app, http.MethodPost, "/layout/drag-end", `{"overId":"stat-total-offers"}`)
	require.Equal(t, 200, resp.StatusCode)
	var dropped changedBody
	require.NoError(t, json.Unmarshal(raw, &dropped))
	require.True(t, dropped.Changed)
	require.Equal(t, "stat-total-offers", dropped.Layout.StatCards.Primary[0].ID)
	require.Equal(t, model.GridPrimary, dropped.Layout.StatCards.Primary[0].GridType)
	require.True(t, dropped.Layout.CanUndo)

	resp, raw = do(t, app, http.MethodPost, "/layout/drag-end", `{"activeId":"stat-total-jobs"}`)
	require.Equal(t, 200, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &dropped))
	require.False(t, dropped.Changed)

	resp, raw = do(t, app, http.MethodPost, "/layout/keys", `{"key":"z","ctrl":true}`)
	require.Equal(t, 200, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &dropped))
	require.True(t, dropped.Changed)
	require.Equal(t, "stat-total-jobs", dropped.Layout.StatCards.Primary[0].ID)

	resp, _ = do(t, app, http.MethodPost, "/layout/redo", "")
	require.Equal(t, 200, resp.StatusCode)
	resp, _ = do(t, app, http.MethodPut, "/layout/grid-size", `{"gridSize":"compact"}`)
	require.Equal(t, 200, resp.StatusCode)

	require.Empty(t, store.Keys())
	resp, raw = do(t, app, http.MethodPost, "/layout/save", "")
	require.Equal(t, 200, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &view))
	require.Equal(t, layout.ModeView, view.Mode)
	require.Equal(t, model.GridSizeCompact, view.GridSize)
	require.Len(t, store.Keys(), len(layout.StorageKeys))
}

func TestLayoutValidation(t *testing.T) {
	t.Parallel()
	app, _ := newApp(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"bad json", http.MethodPost, "/layout/drag-start", `{`, 400},
		{"missing id", http.MethodPost, "/layout/visibility", `{}`, 400},
		{"unknown item", http.MethodPost, "/layout/visibility", `{"id":"nope"}`, 404},
		{"bad grid size", http.MethodPut, "/layout/grid-size", `{"gridSize":"huge"}`, 400},
		{"missing key", http.MethodPost, "/layout/keys", `{"ctrl":true}`, 400},
		{"invalid import", http.MethodPost, "/layout/import", `{"widgets":[]}`, 400},
	}

	for _, tt := range tests {
		resp, _ := do(t, app, tt.method, tt.path, tt.body)
		require.Equal(t, tt.status, resp.StatusCode, tt.name)
	}
}

func TestLayoutExportImportReset(t *testing.T) {
	t.Parallel()
	app, store := newApp(t)

	resp, _ := do(t, app, http.MethodPost, "/layout/visibility", `{"id":"widget-recent-leads"}`)
	require.Equal(t, 200, resp.StatusCode)

	resp, exported := do(t, app, http.MethodGet, "/layout/export", "")
	require.Equal(t, 200, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Disposition"), "dashboard-layout-")

	resp, _ = do(t, app, http.MethodPost, "/layout/reset", "")
	require.Equal(t, 200, resp.StatusCode)
	require.Empty(t, store.Keys())

	resp, raw := do(t, app, http.MethodPost, "/layout/import", string(exported))
	require.Equal(t, 200, resp.StatusCode)
	var view service.LayoutView
	require.NoError(t, json.Unmarshal(raw, &view))
	require.False(t, view.Widgets[6].Visible)
	require.ElementsMatch(t, []string{layout.KeyWidgetOrder, layout.KeyStatCards, layout.KeyGridSize}, store.Keys())
}

func TestDashboardStats(t *testing.T) {
	t.Parallel()
	app, _ := newApp(t)

	resp, raw := do(t, app, http.MethodGet, "/dashboard/stats", "")
	require.Equal(t, 200, resp.StatusCode)
	require.JSONEq(t, `{"total_jobs":4,"total_applicants":9,"total_leads":0,"total_packages":0,"total_offers":0}`, string(raw))
}

func TestGetPermissions(t *testing.T) {
	t.Parallel()

	resolver := &stubResolver{out: model.ReadOnly()}
	h := handler.NewPermissionHandler(resolver)

	app := fiber.New()
	app.Use(middleware.Identity(session.New()))
	app.Get("/permissions/:module", h.GetPermissions)

	req := httptest.NewRequest(http.MethodGet, "/permissions/clinic_lead", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var out struct {
		Module      string          `json:"module"`
		Role        model.Role      `json:"role"`
		Permissions map[string]bool `json:"permissions"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, "clinic_lead", out.Module)
	require.Equal(t, model.RoleUnknown, out.Role)
	require.True(t, out.Permissions["canRead"])
	require.True(t, out.Permissions["canReadApplicants"])
	require.False(t, out.Permissions["canCreate"])

	require.Equal(t, "clinic_lead", resolver.got.ModuleKey)
	require.Equal(t, "garbage", resolver.got.Token)

	req = httptest.NewRequest(http.MethodGet, "/permissions/1bad", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 400, resp.StatusCode)
}

func TestSessionTokens(t *testing.T) {
	t.Parallel()

	sessions := session.New()
	h := handler.NewSessionHandler(sessions)
	app := fiber.New()
	app.Post("/session/token", h.StoreToken)
	app.Delete("/session/token/:key", h.RemoveToken)

	req := httptest.NewRequest(http.MethodPost, "/session/token", strings.NewReader(`{"key":"agentToken","token":"abc"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 201, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/session/token", strings.NewReader(`{"key":"password","token":"abc"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 400, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/session/token/agentToken", nil))
	require.NoError(t, err)
	require.Equal(t, 204, resp.StatusCode)
}
