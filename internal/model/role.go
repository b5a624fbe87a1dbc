package model

import "strings"

// Role is the account kind carried in the token's role claim
type Role string

const (
	RoleClinic      Role = "clinic"
	RoleDoctor      Role = "doctor"
	RoleHospital    Role = "hospital"
	RoleAdmin       Role = "admin"
	RoleAgent       Role = "agent"
	RoleDoctorStaff Role = "doctorStaff"
	RoleUnknown     Role = "unknown"
)

// ParseRole maps a raw claim onto the closed role set. Unrecognized values become RoleUnknown.
func ParseRole(raw string) Role {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "clinic":
		return RoleClinic
	case "doctor":
		return RoleDoctor
	case "hospital":
		return RoleHospital
	case "admin":
		return RoleAdmin
	case "agent":
		return RoleAgent
	case "doctorstaff", "doctor_staff", "doctor-staff", "staff":
		return RoleDoctorStaff
	default:
		return RoleUnknown
	}
}

// IsOwner reports whether the role belongs to the legacy account kinds
// that manage their own data through the sidebar permission endpoint.
func (r Role) IsOwner() bool {
	return r == RoleClinic || r == RoleDoctor
}

// IsScoped reports whether the role is a sub-account limited to granted modules.
func (r Role) IsScoped() bool {
	return r == RoleAgent || r == RoleDoctorStaff
}
