package model

import (
	"encoding/json"
	"strings"
)

// Action is one of the CRUD verbs a module permission can grant
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Flag is a permission toggle decoded leniently from the permission API.
// Only boolean true and the strings "true", "1", "yes" (any case) count as set.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		*f = false
		return nil
	}
	*f = Flag(Truthy(v))
	return nil
}

// Truthy applies the permission truthiness rule to an arbitrary decoded JSON value
func Truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return ParseTruthy(t)
	default:
		return false
	}
}

// ParseTruthy reports whether s is one of the accepted truthy spellings
func ParseTruthy(s string) bool {
	switch strings.ToLower(s) {
	case "true", "1", "yes":
		return true
	}
	return false
}

// Actions is the action map of a module permission record
type Actions struct {
	All    Flag `json:"all"`
	Create Flag `json:"create"`
	Read   Flag `json:"read"`
	Update Flag `json:"update"`
	Delete Flag `json:"delete"`
}

// SubModulePermission grants actions on a named part of a module
type SubModulePermission struct {
	Name    string  `json:"name"`
	Actions Actions `json:"actions"`
}

// ModulePermission is a server-owned policy record for one module
type ModulePermission struct {
	Module     string                `json:"module"`
	Actions    Actions               `json:"actions"`
	SubModules []SubModulePermission `json:"subModules,omitempty"`
}

// CapabilitySet gates the create/read/update/delete affordances of a module
type CapabilitySet struct {
	CanCreate bool `json:"canCreate"`
	CanRead   bool `json:"canRead"`
	CanUpdate bool `json:"canUpdate"`
	CanDelete bool `json:"canDelete"`
}

// AllowAll grants every capability
func AllowAll() CapabilitySet {
	return CapabilitySet{CanCreate: true, CanRead: true, CanUpdate: true, CanDelete: true}
}

// DenyAll grants nothing
func DenyAll() CapabilitySet {
	return CapabilitySet{}
}

// ReadOnly grants read and nothing else
func ReadOnly() CapabilitySet {
	return CapabilitySet{CanRead: true}
}

// CapabilitiesFromActions derives capabilities from an action map; "all" forces every flag on.
func CapabilitiesFromActions(a Actions) CapabilitySet {
	all := bool(a.All)
	return CapabilitySet{
		CanCreate: all || bool(a.Create),
		CanRead:   all || bool(a.Read),
		CanUpdate: all || bool(a.Update),
		CanDelete: all || bool(a.Delete),
	}
}

// CanAssign is the assignment alias used by the jobs and leads modules
func (c CapabilitySet) CanAssign() bool {
	return c.CanUpdate
}

// CanReadApplicants is the applicant listing alias used by the jobs module
func (c CapabilitySet) CanReadApplicants() bool {
	return c.CanRead
}

// Allows reports whether the action is granted
func (c CapabilitySet) Allows(action Action) bool {
	switch action {
	case ActionCreate:
		return c.CanCreate
	case ActionRead:
		return c.CanRead
	case ActionUpdate:
		return c.CanUpdate
	case ActionDelete:
		return c.CanDelete
	default:
		return false
	}
}

// MarshalJSON adds the alias flags next to the four core capabilities
func (c CapabilitySet) MarshalJSON() ([]byte, error) {
	type plain CapabilitySet
	return json.Marshal(struct {
		plain
		CanAssign         bool `json:"canAssign"`
		CanReadApplicants bool `json:"canReadApplicants"`
	}{
		plain:             plain(c),
		CanAssign:         c.CanAssign(),
		CanReadApplicants: c.CanReadApplicants(),
	})
}
