package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"clinic-portal/internal/model"
)

func TestParseTruthy(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"true", "True", "TRUE", "1", "yes", "Yes"} {
		require.True(t, model.ParseTruthy(s), s)
	}
	for _, s := range []string{"false", "", "0", "no", "on", "y", " yes ", "true "} {
		require.False(t, model.ParseTruthy(s), s)
	}
}

func TestActionsDecodeLeniently(t *testing.T) {
	t.Parallel()

	var a model.Actions
	err := json.Unmarshal([]byte(`{"all":"false","create":"TRUE","read":true,"update":1,"delete":null}`), &a)
	require.NoError(t, err)
	require.Equal(t, model.Actions{Create: true, Read: true}, a)
}

func TestCapabilitiesFromActions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		actions model.Actions
		want    model.CapabilitySet
	}{
		{"all forces every flag", model.Actions{All: true}, model.AllowAll()},
		{"all with explicit false", model.Actions{All: true, Delete: false}, model.AllowAll()},
		{"read only", model.Actions{Read: true}, model.ReadOnly()},
		{"nothing", model.Actions{}, model.DenyAll()},
		{"create and update", model.Actions{Create: true, Update: true}, model.CapabilitySet{CanCreate: true, CanUpdate: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, model.CapabilitiesFromActions(tt.actions))
		})
	}
}

func TestCapabilitySetAliases(t *testing.T) {
	t.Parallel()

	c := model.CapabilitySet{CanRead: true, CanUpdate: true}
	require.True(t, c.CanAssign())
	require.True(t, c.CanReadApplicants())
	require.True(t, c.Allows(model.ActionRead))
	require.False(t, c.Allows(model.ActionDelete))
	require.False(t, c.Allows("publish"))

	raw, err := json.Marshal(c)
	require.NoError(t, err)
	require.JSONEq(t, `{"canCreate":false,"canRead":true,"canUpdate":true,"canDelete":false,"canAssign":true,"canReadApplicants":true}`, string(raw))
}

func TestParseRole(t *testing.T) {
	t.Parallel()

	tests := map[string]model.Role{
		"clinic":       model.RoleClinic,
		"Doctor":       model.RoleDoctor,
		"hospital":     model.RoleHospital,
		"ADMIN":        model.RoleAdmin,
		"agent":        model.RoleAgent,
		"doctorStaff":  model.RoleDoctorStaff,
		"doctor_staff": model.RoleDoctorStaff,
		"":             model.RoleUnknown,
		"superuser":    model.RoleUnknown,
	}
	for raw, want := range tests {
		require.Equal(t, want, model.ParseRole(raw), raw)
	}

	require.True(t, model.RoleClinic.IsOwner())
	require.False(t, model.RoleHospital.IsOwner())
	require.True(t, model.RoleDoctorStaff.IsScoped())
	require.False(t, model.RoleAdmin.IsScoped())
}
