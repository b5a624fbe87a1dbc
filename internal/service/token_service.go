package service

import (
	"context"
	"strings"

	"clinic-portal/internal/storage"
)

// Storage keys holding the tokens of each account kind, in lookup order
var (
	ClinicTokenKeys      = []string{"clinicToken", "agentToken", "userToken", "doctorToken", "adminToken"}
	AgentTokenKeys       = []string{"agentToken"}
	DoctorStaffTokenKeys = []string{"doctorStaffToken"}
)

// TokenSource finds the token to present for a set of storage keys
type TokenSource interface {
	Lookup(ctx context.Context, keys []string) string
}

// ScopedTokens looks keys up in the persistent store first and the session store second
type ScopedTokens struct {
	Persistent storage.Store
	Session    storage.Store
}

// Lookup returns the first non-empty value, checking both scopes for each key before
// moving to the next key. Read errors count as absent.
func (s ScopedTokens) Lookup(ctx context.Context, keys []string) string {
	for _, key := range keys {
		for _, store := range []storage.Store{s.Persistent, s.Session} {
			if store == nil {
				continue
			}
			v, err := store.Get(ctx, key)
			if err == nil && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		}
	}
	return ""
}

// StaticToken always answers with the same token
type StaticToken string

func (t StaticToken) Lookup(context.Context, []string) string {
	return string(t)
}
