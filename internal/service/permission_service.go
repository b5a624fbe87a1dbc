package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"clinic-portal/internal/client/permission"
	"clinic-portal/internal/model"
)

// PermissionClient is the subset of the permission API the resolver needs
type PermissionClient interface {
	OwnerPermissions(ctx context.Context, token string) ([]model.ModulePermission, error)
	ModulePermission(ctx context.Context, role model.Role, token, moduleKey string) (model.ModulePermission, error)
}

// PermissionQuery asks for the capabilities of Role on ModuleKey.
// Token is the caller's own token; Tokens supplies role-specific tokens from storage.
type PermissionQuery struct {
	Role      model.Role
	ModuleKey string
	Token     string
	Tokens    TokenSource
}

type PermissionService interface {
	// Resolve never fails: lookup errors map to the safe default of the role's branch
	Resolve(ctx context.Context, q PermissionQuery) model.CapabilitySet
}

type permissionService struct {
	client PermissionClient
}

func NewPermissionService(client PermissionClient) PermissionService {
	return &permissionService{client: client}
}

func (s *permissionService) Resolve(ctx context.Context, q PermissionQuery) model.CapabilitySet {
	log := slog.With("role", string(q.Role), "module", q.ModuleKey)

	switch {
	case q.Role == model.RoleAdmin:
		return model.AllowAll()
	case q.Role.IsOwner():
		return s.resolveOwner(ctx, log, q)
	case q.Role.IsScoped():
		return s.resolveScoped(ctx, log, q)
	default:
		log.InfoContext(ctx, "no permission branch for role, denying")
		return model.DenyAll()
	}
}

func (s *permissionService) resolveOwner(ctx context.Context, log *slog.Logger, q PermissionQuery) model.CapabilitySet {
	token := q.Token
	if token == "" && q.Tokens != nil {
		token = q.Tokens.Lookup(ctx, ClinicTokenKeys)
	}

	perms, err := s.client.OwnerPermissions(ctx, token)
	if errors.Is(err, permission.ErrForbidden) {
		log.WarnContext(ctx, "owner permissions forbidden, denying")
		return model.DenyAll()
	}
	if err != nil {
		log.WarnContext(ctx, "owner permissions unavailable, allowing", "error", err)
		return model.AllowAll()
	}

	// no policy configured yet
	if len(perms) == 0 {
		return model.AllowAll()
	}

	if actions, ok := FindActions(perms, q.ModuleKey); ok {
		return model.CapabilitiesFromActions(actions)
	}

	log.InfoContext(ctx, "module not in owner policy, read only")
	return model.ReadOnly()
}

func (s *permissionService) resolveScoped(ctx context.Context, log *slog.Logger, q PermissionQuery) model.CapabilitySet {
	keys := AgentTokenKeys
	if q.Role == model.RoleDoctorStaff {
		keys = DoctorStaffTokenKeys
	}

	var token string
	if q.Tokens != nil {
		token = q.Tokens.Lookup(ctx, keys)
	}
	if token == "" {
		token = q.Token
	}
	if token == "" {
		log.InfoContext(ctx, "no token for scoped role, denying")
		return model.DenyAll()
	}

	p, err := s.client.ModulePermission(ctx, q.Role, token, q.ModuleKey)
	if errors.Is(err, permission.ErrNotFound) {
		if alt := FallbackKey(q.ModuleKey); alt != "" {
			log.DebugContext(ctx, "module permission not found, retrying", "fallback", alt)
			p, err = s.client.ModulePermission(ctx, q.Role, token, alt)
		}
	}
	if err != nil {
		log.WarnContext(ctx, "module permission unavailable, denying", "error", err)
		return model.DenyAll()
	}

	return model.CapabilitiesFromActions(p.Actions)
}

var modulePrefixes = []string{"admin_", "clinic_", "doctor_", "agent_"}

// moduleAliases maps every known spelling of a module onto one name
var moduleAliases = map[string]string{
	"lead":             "lead",
	"leads":            "lead",
	"create_lead":      "lead",
	"job":              "jobs",
	"jobs":             "jobs",
	"create_job":       "jobs",
	"applicant":        "applicants",
	"applicants":       "applicants",
	"package":          "packages",
	"packages":         "packages",
	"offer":            "offers",
	"offers":           "offers",
	"dashboard":        "dashboard",
	"dashboard_layout": "dashboard",
}

// NormalizeModule lowercases key, strips one account prefix and resolves aliases
func NormalizeModule(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, prefix := range modulePrefixes {
		if strings.HasPrefix(key, prefix) {
			key = strings.TrimPrefix(key, prefix)
			break
		}
	}
	if canonical, ok := moduleAliases[key]; ok {
		return canonical
	}
	return key
}

// FindActions looks moduleKey up among top-level records first and sub-modules second
func FindActions(perms []model.ModulePermission, moduleKey string) (model.Actions, bool) {
	want := NormalizeModule(moduleKey)
	if want == "" {
		return model.Actions{}, false
	}

	for _, p := range perms {
		if NormalizeModule(p.Module) == want {
			return p.Actions, true
		}
	}
	for _, p := range perms {
		for _, sub := range p.SubModules {
			if NormalizeModule(sub.Name) == want {
				return sub.Actions, true
			}
		}
	}
	return model.Actions{}, false
}

// FallbackKey is the single alias retried when a scoped lookup finds nothing:
// "clinic_create_lead" becomes "clinic_lead". Keys without an alias return "".
func FallbackKey(moduleKey string) string {
	if !strings.Contains(moduleKey, "create_") {
		return ""
	}
	return strings.Replace(moduleKey, "create_", "", 1)
}
