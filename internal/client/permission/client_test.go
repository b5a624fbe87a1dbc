package permission_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"clinic-portal/internal/client/permission"
	"clinic-portal/internal/model"
)

var paths = permission.Paths{
	Owner:       "/sidebar/permissions",
	Agent:       "/agent/permissions",
	DoctorStaff: "/doctor-staff/permissions",
}

func newServer(t *testing.T, handler http.HandlerFunc) *permission.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return permission.NewClient(server.URL+"/", paths, 0)
}

func TestOwnerPermissions(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var path, auth string
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		path, auth = r.URL.Path, r.Header.Get("Authorization")
		mu.Unlock()
		_, _ = w.Write([]byte(`{"success":true,"permissions":[{"module":"clinic_jobs","actions":{"read":"yes","all":false}}]}`))
	})

	perms, err := client.OwnerPermissions(context.Background(), "tok")
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, "/sidebar/permissions", path)
	require.Equal(t, "Bearer tok", auth)
	require.Len(t, perms, 1)
	require.Equal(t, "clinic_jobs", perms[0].Module)
	require.Equal(t, model.Actions{Read: true}, perms[0].Actions)
}

func TestOwnerPermissionsNull(t *testing.T) {
	t.Parallel()

	client := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"permissions":null}`))
	})

	perms, err := client.OwnerPermissions(context.Background(), "tok")
	require.NoError(t, err)
	require.Nil(t, perms)
}

func TestModulePermissionRoutesByRole(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var got []string
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		got = append(got, r.URL.Path)
		mu.Unlock()
		_, _ = w.Write([]byte(`{"success":true,"permissions":{"module":"clinic_lead","actions":{"create":true}}}`))
	})

	ctx := context.Background()
	p, err := client.ModulePermission(ctx, model.RoleAgent, "tok", "clinic_lead")
	require.NoError(t, err)
	require.Equal(t, model.Actions{Create: true}, p.Actions)

	_, err = client.ModulePermission(ctx, model.RoleDoctorStaff, "tok", "clinic_lead")
	require.NoError(t, err)

	_, err = client.ModulePermission(ctx, model.RoleClinic, "tok", "clinic_lead")
	require.ErrorIs(t, err, permission.ErrUnsupportedRole)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"/agent/permissions/clinic_lead", "/doctor-staff/permissions/clinic_lead"}, got)
}

func TestModulePermissionStatuses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"not found", http.StatusNotFound, `{"success":false}`, permission.ErrNotFound},
		{"no permission object", http.StatusOK, `{"success":true,"permissions":null}`, permission.ErrNotFound},
		{"forbidden", http.StatusForbidden, `{"success":false}`, permission.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.ModulePermission(context.Background(), model.RoleAgent, "tok", "clinic_jobs")
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestServerErrorIsReported(t *testing.T) {
	t.Parallel()

	client := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.OwnerPermissions(context.Background(), "tok")
	require.ErrorContains(t, err, "unexpected status code: 502")
}
